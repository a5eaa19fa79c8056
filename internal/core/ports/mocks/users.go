package mocks

import (
	"context"
	"sync"

	"github.com/lueurxax/seva-desk/internal/core/domain"
	coreerrors "github.com/lueurxax/seva-desk/internal/core/errors"
)

// UserDirectory is a thread-safe in-memory implementation of ports.UserDirectory.
type UserDirectory struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	// GetUserFn allows overriding GetUser behavior.
	GetUserFn func(ctx context.Context, id string) (*domain.User, error)
}

// NewUserDirectory creates a new mock user directory.
func NewUserDirectory() *UserDirectory {
	return &UserDirectory{users: make(map[string]*domain.User)}
}

// Add registers a user profile.
func (d *UserDirectory) Add(u *domain.User) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.users[u.ID] = u
}

// GetUser returns the profile or coreerrors.ErrUserNotFound.
func (d *UserDirectory) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if d.GetUserFn != nil {
		return d.GetUserFn(ctx, id)
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	u, ok := d.users[id]
	if !ok {
		return nil, coreerrors.ErrUserNotFound
	}

	clone := *u

	return &clone, nil
}
