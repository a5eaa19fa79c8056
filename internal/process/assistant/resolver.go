package assistant

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	coreerrors "github.com/lueurxax/seva-desk/internal/core/errors"
	"github.com/lueurxax/seva-desk/internal/platform/observability"
)

const (
	stageClassify     = "classify"
	stageExtract      = "extract"
	stageFollowUp     = "follow_up"
	stageConfirmation = "confirmation"
	stageReply        = "reply"
)

// resolved is a stage result tagged with its provenance.
type resolved[T any] struct {
	Value         T
	UsingFallback bool
}

// stage describes one augmentation point: the remote call, the rule that
// decides whether its answer can be trusted, and the local substitute.
type stage[T any] struct {
	name     string
	call     func(ctx context.Context) (T, error)
	accept   func(T) bool
	fallback func() T
}

// resolver runs stages with a bounded wait on the remote side.
type resolver struct {
	timeout time.Duration
	logger  *zerolog.Logger
}

func resolve[T any](ctx context.Context, r resolver, s stage[T]) resolved[T] {
	if s.call == nil {
		return useFallback(s)
	}

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	value, err := s.call(callCtx)
	observability.AICallDuration.WithLabelValues(s.name).Observe(time.Since(start).Seconds())

	if err != nil {
		observability.AICallsTotal.WithLabelValues(s.name, observability.ResultError).Inc()

		event := r.logger.Warn()
		if errors.Is(err, coreerrors.ErrClientDisabled) {
			event = r.logger.Debug()
		}

		event.Err(err).Str(logFieldStage, s.name).Msg("augmentation failed, using local rules")

		return useFallback(s)
	}

	if s.accept != nil && !s.accept(value) {
		observability.AICallsTotal.WithLabelValues(s.name, observability.ResultRejected).Inc()
		r.logger.Warn().Str(logFieldStage, s.name).Msg("augmentation answer rejected, using local rules")

		return useFallback(s)
	}

	observability.AICallsTotal.WithLabelValues(s.name, observability.ResultAccepted).Inc()

	return resolved[T]{Value: value}
}

func useFallback[T any](s stage[T]) resolved[T] {
	observability.FallbacksTotal.WithLabelValues(s.name).Inc()

	return resolved[T]{Value: s.fallback(), UsingFallback: true}
}
