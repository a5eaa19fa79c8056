package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopStopsOnCancelAndRunsOnStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var (
		steps   atomic.Int32
		stopped atomic.Bool
	)

	done := make(chan error, 1)

	go func() {
		done <- Loop(ctx, Config{
			Name:         "test",
			PollInterval: time.Millisecond,
			Process: func(context.Context) error {
				if steps.Add(1) == 3 {
					cancel()
				}

				return nil
			},
			OnStop: func() { stopped.Store(true) },
		})
	}()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop")
	}

	assert.GreaterOrEqual(t, steps.Load(), int32(3))
	assert.True(t, stopped.Load())
}

func TestLoopOnErrorDecides(t *testing.T) {
	errFatal := errors.New("fatal")

	var seen int

	err := Loop(context.Background(), Config{
		Name: "test",
		Process: func(context.Context) error {
			seen++
			if seen < 3 {
				return errors.New("transient")
			}

			return errFatal
		},
		OnError: func(err error) bool { return !errors.Is(err, errFatal) },
	})

	require.ErrorIs(t, err, errFatal)
	assert.Equal(t, 3, seen)
}

func TestLoopRunsPeriodicTaskOncePerInterval(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		steps int
		runs  int
	)

	_ = Loop(ctx, Config{
		Name: "test",
		PeriodicTasks: []PeriodicTask{{
			Name:     "gauge",
			Interval: time.Hour,
			Run:      func(context.Context) { runs++ },
		}},
		Process: func(context.Context) error {
			steps++
			if steps == 5 {
				cancel()
			}

			return nil
		},
	})

	assert.Equal(t, 5, steps)
	assert.Equal(t, 1, runs)
}

func TestWait(t *testing.T) {
	require.NoError(t, Wait(context.Background(), 0))
	require.NoError(t, Wait(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, Wait(ctx, time.Hour), context.Canceled)
}

func TestRecoverPanic(t *testing.T) {
	logger := zerolog.Nop()

	assert.NotPanics(t, func() {
		defer RecoverPanic(&logger, "test")

		panic("boom")
	})
}
