package router

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"Lee_Blog/internal/handler"
	"Lee_Blog/internal/middleware"
	"Lee_Blog/internal/service"
)

const ServiceName = "lee-blog"

type Deps struct {
	Posts     *service.PostService
	Comments  *service.CommentService
	Reactions *service.ReactionService
	Logger    *slog.Logger
	// StaticDir 非空时，未匹配的 GET 请求按静态文件处理
	StaticDir string
}

func InitRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		otelgin.Middleware(ServiceName),
		middleware.Metrics(),
		middleware.AccessLog(deps.Logger),
	)

	post := handler.NewPostHandler(deps.Posts)
	comment := handler.NewCommentHandler(deps.Comments)
	reaction := handler.NewReactionHandler(deps.Reactions)

	r.GET("/healthz", handler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 帖子相关接口
	postGroup := r.Group("/api/posts")
	{
		postGroup.GET("", post.List)
		postGroup.POST("", post.Create)
		postGroup.DELETE("/:id", post.Delete)
		postGroup.POST("/:id/like", reaction.LikePost)
		postGroup.POST("/:id/dislike", reaction.DislikePost)
		postGroup.GET("/:id/comments", comment.List)
		postGroup.POST("/:id/comments", comment.Create)
	}

	// 评论相关接口
	commentGroup := r.Group("/api/comments")
	{
		commentGroup.POST("/:id/like", reaction.LikeComment)
		commentGroup.POST("/:id/dislike", reaction.DislikeComment)
	}

	r.NoRoute(noRoute(deps.StaticDir))
	return r
}

func noRoute(staticDir string) gin.HandlerFunc {
	var files http.Handler
	if staticDir != "" {
		files = http.FileServer(http.Dir(staticDir))
	}
	return func(c *gin.Context) {
		method := c.Request.Method
		if files == nil || strings.HasPrefix(c.Request.URL.Path, "/api/") ||
			(method != http.MethodGet && method != http.MethodHead) {
			c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
			return
		}
		files.ServeHTTP(c.Writer, c.Request)
	}
}
