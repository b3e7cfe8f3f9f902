package repository

import (
	"context"

	"github.com/stavrosk/checkout-gate/internal/domain"
)

type UserRepository interface {
	// FindOrCreate resolves an email to a user, creating one if absent.
	// Concurrent calls for the same new email must yield the same single
	// row; the unique constraint on email is the arbiter.
	FindOrCreate(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
