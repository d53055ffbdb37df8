package ports

import (
	"context"

	"github.com/lendly/rental-marketplace/internal/core/domain"
)

// SaveItemInput carries a full item payload for create-or-replace.
type SaveItemInput struct {
	ID             int64 // 0 = create with a fresh id
	Name           string
	Type           string
	Description    string
	Location       string
	Available      bool
	Rate           float64
	Image          string
	LenderUsername string
}

// UpdateItemInput carries a partial item update. Nil pointers mean "field
// not sent", so false and 0 remain settable.
type UpdateItemInput struct {
	ID             int64
	ActingUsername string
	Name           *string
	Type           *string
	Description    *string
	Location       *string
	Available      *bool
	Rate           *float64
	Image          *string
}

// ItemService defines the use-case operations for items.
type ItemService interface {
	Save(ctx context.Context, input SaveItemInput) (*domain.Item, error)
	Update(ctx context.Context, input UpdateItemInput) (*domain.Item, error)
	FindByID(ctx context.Context, id int64) (*domain.Item, error)
	FindByName(ctx context.Context, name string) (*domain.Item, error)
	FindByNameContaining(ctx context.Context, fragment string) ([]*domain.Item, error)
	FindAll(ctx context.Context) ([]*domain.Item, error)
	Delete(ctx context.Context, id int64) error
}
