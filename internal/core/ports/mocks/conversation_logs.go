package mocks

import (
	"context"
	"sync"

	"github.com/lueurxax/seva-desk/internal/core/domain"
)

// ConversationLogStore is a thread-safe in-memory implementation of ports.ConversationLogStore.
type ConversationLogStore struct {
	mu      sync.Mutex
	entries []domain.ConversationLog

	// SaveConversationLogFn allows overriding SaveConversationLog behavior.
	SaveConversationLogFn func(ctx context.Context, entry *domain.ConversationLog) error
}

// NewConversationLogStore creates a new mock conversation log store.
func NewConversationLogStore() *ConversationLogStore {
	return &ConversationLogStore{}
}

// SaveConversationLog records a copy of the entry.
func (s *ConversationLogStore) SaveConversationLog(ctx context.Context, entry *domain.ConversationLog) error {
	if s.SaveConversationLogFn != nil {
		return s.SaveConversationLogFn(ctx, entry)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, *entry)

	return nil
}

// Entries returns the recorded entries.
func (s *ConversationLogStore) Entries() []domain.ConversationLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]domain.ConversationLog(nil), s.entries...)
}

// Len returns the number of recorded entries.
func (s *ConversationLogStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}
