package repository

import (
	"context"

	"github.com/ErlanBelekov/job-tracker/internal/domain"
)

type UserRepository interface {
	// Create persists a new user and returns it with its store-assigned ID.
	// Returns domain.ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
