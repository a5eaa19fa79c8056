package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/lueurxax/seva-desk/internal/core/domain"
)

// RequestStore is a thread-safe in-memory implementation of ports.RequestStore.
type RequestStore struct {
	mu       sync.Mutex
	requests []*domain.ServiceRequest
	byTurn   map[string]string

	// CreateServiceRequestFn allows overriding CreateServiceRequest behavior.
	CreateServiceRequestFn func(ctx context.Context, req *domain.ServiceRequest) (string, error)
}

// NewRequestStore creates a new mock request store.
func NewRequestStore() *RequestStore {
	return &RequestStore{byTurn: make(map[string]string)}
}

// CreateServiceRequest stores a copy of req. Replays of the same requester
// and turn return the first id.
func (s *RequestStore) CreateServiceRequest(ctx context.Context, req *domain.ServiceRequest) (string, error) {
	if s.CreateServiceRequestFn != nil {
		return s.CreateServiceRequestFn(ctx, req)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	turnKey := ""
	if req.TurnID != "" {
		turnKey = fmt.Sprintf("%s:%s", req.RequesterID, req.TurnID)
		if id, ok := s.byTurn[turnKey]; ok {
			return id, nil
		}
	}

	stored := *req
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}

	s.requests = append(s.requests, &stored)

	if turnKey != "" {
		s.byTurn[turnKey] = stored.ID
	}

	return stored.ID, nil
}

// Requests returns the stored requests in creation order.
func (s *RequestStore) Requests() []*domain.ServiceRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]*domain.ServiceRequest(nil), s.requests...)
}
