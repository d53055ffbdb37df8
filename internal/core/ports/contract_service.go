package ports

import (
	"context"

	"github.com/lendly/rental-marketplace/internal/core/domain"
)

// SaveContractInput carries a full contract payload for create-or-replace.
// The four flags are taken as sent; a caller replacing an existing contract
// must resend the current flag values or they reset to false.
type SaveContractInput struct {
	ID             int64 // 0 = create with a fresh id
	Length         int
	RenteeUsername string
	ItemID         int64
	RenteeAccept   bool
	LenderAccept   bool
	RenteeComplete bool
	LenderComplete bool
}

// UpdateContractInput carries a partial, role-split contract update. Nil
// pointers mean "field not sent". Length is accepted for wire compatibility
// but never applied.
type UpdateContractInput struct {
	ID             int64
	ActingUsername string
	Length         *int
	RenteeAccept   *bool
	LenderAccept   *bool
	RenteeComplete *bool
	LenderComplete *bool
}

// ContractService defines the use-case operations for contracts.
type ContractService interface {
	// Save fully replaces (or creates, id=0) a contract, recomputing fee,
	// active and the rental window.
	Save(ctx context.Context, input SaveContractInput) (*domain.Contract, error)
	// Update applies the acting party's half of the flag set. The lender may
	// only set lenderaccept/lendercomplete, the rentee only
	// renteeaccept/renteecomplete.
	Update(ctx context.Context, input UpdateContractInput) (*domain.Contract, error)
	// Agree sets the acting party's accept flag true.
	Agree(ctx context.Context, contractID int64, actingUsername string) (*domain.Contract, error)
	FindByID(ctx context.Context, id int64) (*domain.Contract, error)
	FindAll(ctx context.Context) ([]*domain.Contract, error)
	Delete(ctx context.Context, id int64) error
}
