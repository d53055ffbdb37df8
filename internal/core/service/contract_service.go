package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lendly/rental-marketplace/internal/core/domain"
	"github.com/lendly/rental-marketplace/internal/core/ports"
)

// AuditRecorder accepts contract audit events for asynchronous persistence.
// Recording must never fail or block a request.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

// NopAudit discards audit events. Used in tests and when the audit pipeline
// is disabled.
type NopAudit struct{}

func (NopAudit) Record(domain.AuditEvent) {}

// ContractService orchestrates the contract lifecycle over the repositories.
type ContractService struct {
	contracts ports.ContractRepository
	items     ports.ItemRepository
	users     ports.UserRepository
	policy    ChangePolicy
	audit     AuditRecorder
	logger    zerolog.Logger
}

func NewContractService(
	contracts ports.ContractRepository,
	items ports.ItemRepository,
	users ports.UserRepository,
	policy ChangePolicy,
	audit AuditRecorder,
	logger zerolog.Logger,
) *ContractService {
	if policy == nil {
		policy = AllowAll{}
	}
	if audit == nil {
		audit = NopAudit{}
	}
	return &ContractService{
		contracts: contracts,
		items:     items,
		users:     users,
		policy:    policy,
		audit:     audit,
		logger:    logger,
	}
}

// Save fully replaces (or creates, when id=0) a contract. The rentee is
// resolved by username, the item is fetched for its rate, and fee, active
// and the rental window are recomputed from the incoming flags. Flags are
// not defaulted from stored state: a caller replacing a contract must resend
// the current flag values or they reset.
func (s *ContractService) Save(ctx context.Context, input ports.SaveContractInput) (*domain.Contract, error) {
	contract := &domain.Contract{
		ID:             input.ID,
		Length:         input.Length,
		ItemID:         input.ItemID,
		RenteeAccept:   input.RenteeAccept,
		LenderAccept:   input.LenderAccept,
		RenteeComplete: input.RenteeComplete,
		LenderComplete: input.LenderComplete,
	}

	if input.ID != 0 {
		existing, err := s.contracts.FindByID(ctx, input.ID)
		if err != nil {
			return nil, err
		}
		// A stamped rental window survives saves where the accept flags no
		// longer agree; it is restamped below if they do.
		contract.StartDate = existing.StartDate
		contract.EndDate = existing.EndDate
	}

	rentee, err := s.users.FindByUsername(ctx, strings.ToLower(input.RenteeUsername))
	if err != nil {
		return nil, err
	}
	contract.RenteeID = rentee.ID

	item, err := s.items.FindByID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}

	contract.RefreshDerived(item.Rate, time.Now())

	saved, err := s.contracts.Save(ctx, contract)
	if err != nil {
		s.logger.Error().Err(err).Int64("contract_id", input.ID).Msg("failed to save contract")
		return nil, err
	}

	s.audit.Record(domain.AuditEvent{
		ContractID: saved.ID,
		Action:     domain.AuditContractSaved,
		Actor:      rentee.Username,
		Timestamp:  time.Now().UTC(),
	})
	s.logger.Info().
		Int64("contract_id", saved.ID).
		Int64("item_id", saved.ItemID).
		Float64("fee", saved.Fee).
		Bool("active", saved.Active).
		Msg("contract saved")

	return saved, nil
}

// Update applies the acting party's half of the flag set to a stored
// contract. The lender may only set lenderaccept/lendercomplete, the rentee
// only renteeaccept/renteecomplete; anyone else is rejected. Derived state
// is recomputed through the same path as Save.
func (s *ContractService) Update(ctx context.Context, input ports.UpdateContractInput) (*domain.Contract, error) {
	contract, err := s.contracts.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	item, lender, rentee, err := s.parties(ctx, contract)
	if err != nil {
		return nil, err
	}

	return s.applyPartyUpdate(ctx, contract, item, lender, rentee, input)
}

// applyPartyUpdate runs the policy check and the party-split flag update over
// already loaded records, then persists and audits the result.
func (s *ContractService) applyPartyUpdate(
	ctx context.Context,
	contract *domain.Contract,
	item *domain.Item,
	lender, rentee *domain.User,
	input ports.UpdateContractInput,
) (*domain.Contract, error) {
	acting := strings.ToLower(input.ActingUsername)

	target := ChangeTarget{
		Kind:   "contract",
		ID:     contract.ID,
		Owners: []string{lender.Username, rentee.Username},
	}
	if !s.policy.CanModify(ctx, acting, target) {
		return nil, domain.ErrNotAuthorized
	}

	var party string
	switch acting {
	case lender.Username:
		party = "lender"
		if input.LenderAccept != nil {
			contract.LenderAccept = *input.LenderAccept
		}
		if input.LenderComplete != nil {
			contract.LenderComplete = *input.LenderComplete
		}
	case rentee.Username:
		party = "rentee"
		if input.RenteeAccept != nil {
			contract.RenteeAccept = *input.RenteeAccept
		}
		if input.RenteeComplete != nil {
			contract.RenteeComplete = *input.RenteeComplete
		}
	default:
		return nil, domain.ErrNotContractParty
	}
	// input.Length is accepted for wire compatibility but not applied.

	contract.RefreshDerived(item.Rate, time.Now())

	saved, err := s.contracts.Save(ctx, contract)
	if err != nil {
		s.logger.Error().Err(err).Int64("contract_id", input.ID).Msg("failed to update contract")
		return nil, err
	}

	s.audit.Record(domain.AuditEvent{
		ContractID: saved.ID,
		Action:     domain.AuditContractUpdated,
		Actor:      acting,
		Timestamp:  time.Now().UTC(),
	})
	s.logger.Info().
		Int64("contract_id", saved.ID).
		Str("party", party).
		Bool("active", saved.Active).
		Msg("contract updated")

	return saved, nil
}

// Agree sets the acting party's accept flag true.
func (s *ContractService) Agree(ctx context.Context, contractID int64, actingUsername string) (*domain.Contract, error) {
	contract, err := s.contracts.FindByID(ctx, contractID)
	if err != nil {
		return nil, err
	}

	item, lender, rentee, err := s.parties(ctx, contract)
	if err != nil {
		return nil, err
	}

	agree := true
	input := ports.UpdateContractInput{ID: contractID, ActingUsername: actingUsername}
	switch strings.ToLower(actingUsername) {
	case lender.Username:
		input.LenderAccept = &agree
	case rentee.Username:
		input.RenteeAccept = &agree
	default:
		return nil, domain.ErrNotContractParty
	}

	return s.applyPartyUpdate(ctx, contract, item, lender, rentee, input)
}

func (s *ContractService) FindByID(ctx context.Context, id int64) (*domain.Contract, error) {
	return s.contracts.FindByID(ctx, id)
}

func (s *ContractService) FindAll(ctx context.Context) ([]*domain.Contract, error) {
	return s.contracts.FindAll(ctx)
}

// Delete hard-deletes the contract by id.
func (s *ContractService) Delete(ctx context.Context, id int64) error {
	if _, err := s.contracts.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.contracts.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(domain.AuditEvent{
		ContractID: id,
		Action:     domain.AuditContractDeleted,
		Timestamp:  time.Now().UTC(),
	})
	s.logger.Info().Int64("contract_id", id).Msg("contract deleted")
	return nil
}

// parties resolves the item and both party identities of a contract.
func (s *ContractService) parties(ctx context.Context, c *domain.Contract) (*domain.Item, *domain.User, *domain.User, error) {
	item, err := s.items.FindByID(ctx, c.ItemID)
	if err != nil {
		return nil, nil, nil, err
	}
	lender, err := s.users.FindByID(ctx, item.LenderID)
	if err != nil {
		return nil, nil, nil, err
	}
	rentee, err := s.users.FindByID(ctx, c.RenteeID)
	if err != nil {
		return nil, nil, nil, err
	}
	return item, lender, rentee, nil
}
