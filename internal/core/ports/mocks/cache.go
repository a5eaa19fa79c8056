package mocks

import (
	"context"
	"sync"

	"github.com/lueurxax/seva-desk/internal/core/domain"
)

// ContextStore is a thread-safe in-memory implementation of ports.ContextStore.
type ContextStore struct {
	mu       sync.RWMutex
	contexts map[string]*domain.ConversationContext

	// GetContextFn allows overriding GetContext behavior.
	GetContextFn func(ctx context.Context, key string) (*domain.ConversationContext, error)

	// PutContextFn allows overriding PutContext behavior.
	PutContextFn func(ctx context.Context, key string, convCtx *domain.ConversationContext) error
}

// NewContextStore creates a new mock context store.
func NewContextStore() *ContextStore {
	return &ContextStore{contexts: make(map[string]*domain.ConversationContext)}
}

// GetContext returns a copy of the stored context, or nil when none is stored.
func (s *ContextStore) GetContext(ctx context.Context, key string) (*domain.ConversationContext, error) {
	if s.GetContextFn != nil {
		return s.GetContextFn(ctx, key)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.contexts[key].Clone(), nil
}

// PutContext stores a copy of convCtx. A nil context deletes the key.
func (s *ContextStore) PutContext(ctx context.Context, key string, convCtx *domain.ConversationContext) error {
	if s.PutContextFn != nil {
		return s.PutContextFn(ctx, key, convCtx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if convCtx == nil {
		delete(s.contexts, key)
		return nil
	}

	s.contexts[key] = convCtx.Clone()

	return nil
}

// DeleteContext removes the stored context.
func (s *ContextStore) DeleteContext(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.contexts, key)

	return nil
}

// Len returns the number of stored contexts.
func (s *ContextStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.contexts)
}
