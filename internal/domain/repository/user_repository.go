// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers
// and the infrastructure layer; route handlers and usecases never know which
// backend (Postgres, Firestore, in-memory fixtures) is behind them.
package repository

import (
	"context"
	"errors"

	"lamsa/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByUsername retrieves a single user by their unique username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// List retrieves every user. Admin surface only.
	List(ctx context.Context) ([]*entity.User, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error

	// AddLoyaltyPoints atomically increments the user's loyalty balance.
	AddLoyaltyPoints(ctx context.Context, id uuid.UUID, points int) error
}
