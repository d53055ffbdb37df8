package ports

import (
	"context"

	"github.com/lendly/rental-marketplace/internal/core/domain"
)

// RoleRepository defines persistence operations for roles.
type RoleRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Role, error)
	// FindByName matches the exact (lowercased) role name.
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	FindAll(ctx context.Context) ([]*domain.Role, error)
	Save(ctx context.Context, role *domain.Role) (*domain.Role, error)
	Delete(ctx context.Context, id int64) error
}
