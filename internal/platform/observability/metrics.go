package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result label values for AI calls.
const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
	ResultError    = "error"
)

var (
	TurnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "seva_turns_total",
		Help: "The total number of handled conversation turns by outcome",
	}, []string{"outcome"})

	TurnDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "seva_turn_duration_seconds",
		Help:    "Duration of a conversation turn",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
	})

	AICallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "seva_ai_calls_total",
		Help: "The total number of augmentation calls by stage and result",
	}, []string{"stage", "result"})

	AICallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "seva_ai_call_duration_seconds",
		Help:    "Duration of augmentation calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	FallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "seva_fallbacks_total",
		Help: "The total number of stages answered by local heuristics",
	}, []string{"stage"})

	RequestsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "seva_requests_created_total",
		Help: "The total number of created service requests by type",
	}, []string{"type"})

	PersistenceErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "seva_persistence_errors_total",
		Help: "The total number of persistence failures by operation",
	}, []string{"op"})

	ConversationLogDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "seva_conversation_log_dropped_total",
		Help: "Conversation log entries dropped because the write queue was full",
	})

	ConversationLogQueue = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "seva_conversation_log_queue_size",
		Help: "Number of conversation log entries waiting to be written",
	})

	VoiceRateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "seva_voice_rate_limited_total",
		Help: "Voice uploads rejected by the per-user rate limit",
	})

	TelegramUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "seva_telegram_updates_total",
		Help: "Telegram updates processed by status",
	}, []string{"status"})
)
