package ports

import (
	"context"

	"github.com/lendly/rental-marketplace/internal/core/domain"
)

// AuthService implements registration and login.
type AuthService interface {
	// Register creates a user holding the given role names.
	Register(ctx context.Context, username, password, email string, roles []string) (*domain.User, error)
	// Login verifies credentials and returns a signed token carrying the
	// username and role names as claims.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
