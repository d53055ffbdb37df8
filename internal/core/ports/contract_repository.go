package ports

import (
	"context"

	"github.com/lendly/rental-marketplace/internal/core/domain"
)

// ContractRepository defines persistence operations for contracts.
type ContractRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Contract, error)
	// FindAll returns every contract in storage iteration order.
	FindAll(ctx context.Context) ([]*domain.Contract, error)
	// Save upserts the contract. When the id is 0 a new id is allocated and
	// set on the returned contract.
	Save(ctx context.Context, c *domain.Contract) (*domain.Contract, error)
	Delete(ctx context.Context, id int64) error
}
