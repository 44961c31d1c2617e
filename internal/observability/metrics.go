// Package observability provides Prometheus metrics and OpenTelemetry tracing.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vibecheck_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// AuthAttempts counts signup/login attempts by outcome.
	AuthAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vibecheck_auth_attempts_total",
		Help: "Total signup and login attempts by action and outcome",
	}, []string{"action", "outcome"})

	// QuizSubmissions counts quiz submissions by resulting vibe label.
	QuizSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vibecheck_quiz_submissions_total",
		Help: "Total number of quiz submissions by vibe label",
	}, []string{"vibe"})

	// StarToggles counts star toggles by outcome ("starred" or "unstarred").
	StarToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vibecheck_star_toggles_total",
		Help: "Total number of star toggles by outcome",
	}, []string{"outcome"})

	// PlaylistFallbacks counts activations of the local playlist store when
	// the loved_playlists table is unavailable.
	PlaylistFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vibecheck_playlist_fallback_activations_total",
		Help: "Times the local playlist store was selected over the row store",
	})

	// WebSocketConnections is the gauge of active feed connections.
	WebSocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vibecheck_websocket_connections",
		Help: "Number of active vibe feed WebSocket connections",
	})

	// FeedEvents counts vibe feed events by type.
	FeedEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vibecheck_feed_events_total",
		Help: "Total vibe feed events published by type",
	}, []string{"event_type"})

	// WebSocketBackpressureDrops counts feed messages dropped because a
	// client's send buffer was full or its channel already closed.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vibecheck_websocket_backpressure_drops_total",
		Help: "Feed messages dropped due to client backpressure",
	}, []string{"reason"})
)
