package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lueurxax/seva-desk/internal/core/domain"
	"github.com/lueurxax/seva-desk/internal/core/ports/mocks"
)

func TestLogWriterFlush(t *testing.T) {
	store := mocks.NewConversationLogStore()
	w := NewLogWriter(store, 4, time.Millisecond, nil)

	w.Enqueue(domain.ConversationLog{UserID: "a"})
	w.Enqueue(domain.ConversationLog{UserID: "b"})
	w.Flush(context.Background())

	entries := store.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].UserID)
	assert.Equal(t, "b", entries[1].UserID)
}

func TestLogWriterDropsWhenFull(t *testing.T) {
	store := mocks.NewConversationLogStore()
	w := NewLogWriter(store, 1, time.Millisecond, nil)

	w.Enqueue(domain.ConversationLog{UserID: "kept"})
	w.Enqueue(domain.ConversationLog{UserID: "dropped"})
	w.Flush(context.Background())

	entries := store.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0].UserID)
}

func TestLogWriterSurvivesStoreErrors(t *testing.T) {
	store := mocks.NewConversationLogStore()
	calls := 0
	store.SaveConversationLogFn = func(context.Context, *domain.ConversationLog) error {
		calls++
		return errors.New("db down")
	}

	w := NewLogWriter(store, 4, time.Millisecond, nil)
	w.Enqueue(domain.ConversationLog{UserID: "a"})
	w.Enqueue(domain.ConversationLog{UserID: "b"})
	w.Flush(context.Background())

	assert.Equal(t, 2, calls)
}

func TestLogWriterRunDrainsOnStop(t *testing.T) {
	store := mocks.NewConversationLogStore()
	w := NewLogWriter(store, 8, time.Hour, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- w.Run(ctx) }()

	w.Enqueue(domain.ConversationLog{UserID: "late"})
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("writer did not stop")
	}

	assert.Equal(t, 1, store.Len())
}
