package ports

import (
	"context"

	"github.com/lendly/rental-marketplace/internal/core/domain"
)

// ItemRepository defines persistence operations for items.
type ItemRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Item, error)
	// FindByName matches the exact (lowercased) item name.
	FindByName(ctx context.Context, name string) (*domain.Item, error)
	// FindByNameContaining matches a case-insensitive substring of the item
	// name. No match returns an empty slice, not an error.
	FindByNameContaining(ctx context.Context, fragment string) ([]*domain.Item, error)
	FindAll(ctx context.Context) ([]*domain.Item, error)
	// Save upserts the item, allocating an id when it is 0.
	Save(ctx context.Context, item *domain.Item) (*domain.Item, error)
	Delete(ctx context.Context, id int64) error
}
