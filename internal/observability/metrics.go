package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PostsCreated counts successfully created posts.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "socialposts_posts_created_total",
		Help: "Total number of posts created",
	})

	// LikesToggled counts like toggles by resulting action (added, removed).
	LikesToggled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialposts_likes_toggled_total",
		Help: "Total number of like toggles by action",
	}, []string{"action"})

	// AnalyticsQueries counts like analytics queries by outcome (ok, invalid, error).
	AnalyticsQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialposts_analytics_queries_total",
		Help: "Total number of like analytics queries by outcome",
	}, []string{"outcome"})

	// RedisErrors counts Redis command errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialposts_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})
)
