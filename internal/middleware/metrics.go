package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"Lee_Blog/internal/metrics"
)

// Metrics 按路由模板打点，未匹配的路由归到 "unmatched" 避免标签爆炸
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		metrics.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
