package repository

import (
	"context"

	"github.com/nvtimofeev/ticketly/internal/domain"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user record
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by its ID
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListByRole retrieves all users with the given role
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
}
