// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/abhi1083/simple-crud-ops/internal/model"
)

// UserRepository persists account credentials.
type UserRepository interface {
	// Create inserts a new user. Email uniqueness is enforced by the store
	// itself, so concurrent duplicate registrations cannot both succeed.
	Create(ctx context.Context, u *model.User) error
	// GetByEmail loads a user by email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}
