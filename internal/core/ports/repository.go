// Package ports provides domain-centric interfaces for external dependencies.
// These interfaces follow the ports and adapters (hexagonal) architecture pattern,
// allowing business logic to remain independent of infrastructure concerns.
package ports

import (
	"context"

	"github.com/lueurxax/seva-desk/internal/core/domain"
)

// RequestStore persists finalized service requests.
type RequestStore interface {
	// CreateServiceRequest stores req and returns its id. A request carrying
	// a TurnID that was already stored for the same requester returns the
	// existing id instead of creating a second row.
	CreateServiceRequest(ctx context.Context, req *domain.ServiceRequest) (string, error)
}

// UserDirectory resolves requester profiles.
type UserDirectory interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

// ConversationLogStore persists conversation turns.
type ConversationLogStore interface {
	SaveConversationLog(ctx context.Context, entry *domain.ConversationLog) error
}

// ContextStore keeps the conversation context of transports that cannot
// carry it themselves, keyed by conversation.
type ContextStore interface {
	GetContext(ctx context.Context, key string) (*domain.ConversationContext, error)
	PutContext(ctx context.Context, key string, convCtx *domain.ConversationContext) error
	DeleteContext(ctx context.Context, key string) error
}
