package assistant

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/lueurxax/seva-desk/internal/core/domain"
	"github.com/lueurxax/seva-desk/internal/core/ports"
	"github.com/lueurxax/seva-desk/internal/platform/observability"
	"github.com/lueurxax/seva-desk/internal/platform/worker"
)

const (
	defaultLogQueueSize     = 256
	defaultLogFlushInterval = time.Second
	logDrainTimeout         = 5 * time.Second
)

// LogWriter stores conversation logs off the request path. Entries are
// queued in memory and written by Run; a full queue drops the entry.
type LogWriter struct {
	store    ports.ConversationLogStore
	queue    chan domain.ConversationLog
	interval time.Duration
	logger   *zerolog.Logger
}

// NewLogWriter creates a writer with a queue of the given size.
func NewLogWriter(store ports.ConversationLogStore, size int, interval time.Duration, logger *zerolog.Logger) *LogWriter {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	if size <= 0 {
		size = defaultLogQueueSize
	}

	if interval <= 0 {
		interval = defaultLogFlushInterval
	}

	return &LogWriter{
		store:    store,
		queue:    make(chan domain.ConversationLog, size),
		interval: interval,
		logger:   logger,
	}
}

// Enqueue adds an entry without blocking.
func (w *LogWriter) Enqueue(entry domain.ConversationLog) {
	select {
	case w.queue <- entry:
		observability.ConversationLogQueue.Set(float64(len(w.queue)))
	default:
		observability.ConversationLogDropped.Inc()
		w.logger.Warn().Str(logFieldUserID, entry.UserID).Msg("conversation log queue full, entry dropped")
	}
}

// Run writes queued entries until ctx is canceled, then drains what is left.
func (w *LogWriter) Run(ctx context.Context) error {
	return worker.Loop(ctx, worker.Config{
		Name:         "conversation-log",
		PollInterval: w.interval,
		Process: func(ctx context.Context) error {
			w.Flush(ctx)
			return nil
		},
		OnStop: func() {
			drainCtx, cancel := context.WithTimeout(context.Background(), logDrainTimeout)
			defer cancel()

			w.Flush(drainCtx)
		},
		Logger: w.logger,
	})
}

// Flush writes every entry currently queued. Failed writes are logged and
// not retried.
func (w *LogWriter) Flush(ctx context.Context) {
	for {
		select {
		case entry := <-w.queue:
			if err := w.store.SaveConversationLog(ctx, &entry); err != nil {
				observability.PersistenceErrors.WithLabelValues("conversation_log").Inc()
				w.logger.Error().Err(err).Str(logFieldUserID, entry.UserID).Msg("failed to save conversation log")
			}
		default:
			observability.ConversationLogQueue.Set(0)
			return
		}
	}
}
