// Package metrics Prometheus 指标，/metrics 暴露
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blog"

var (
	// HTTPRequestsTotal labels: method, route, status
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route and status code.",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration labels: method, route
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// MutationsTotal labels: op (post_create, post_delete, comment_create, react), result
	MutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_total",
		Help:      "Mutation service operations by outcome.",
	}, []string{"op", "result"})

	// ReactionsTotal labels: target (post, comment), kind (like, dislike)
	ReactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reactions_total",
		Help:      "Likes and dislikes applied.",
	}, []string{"target", "kind"})

	CascadedCommentsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cascaded_comments_deleted_total",
		Help:      "Comments removed because their post was deleted.",
	})

	// StoreReadFailuresTotal 读失败被当作空集合处理的次数。labels: collection
	StoreReadFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "read_failures_total",
		Help:      "Store reads that failed and degraded to an empty collection.",
	}, []string{"collection"})

	// EventPublishFailuresTotal labels: type
	EventPublishFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "events",
		Name:      "publish_failures_total",
		Help:      "Domain events that could not be published.",
	}, []string{"type"})
)
