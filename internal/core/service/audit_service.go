package service

import (
	"context"

	"github.com/lendly/rental-marketplace/internal/core/domain"
	"github.com/lendly/rental-marketplace/internal/core/ports"
)

// AuditService reads back the trail written by the audit pipeline.
type AuditService struct {
	contracts ports.ContractRepository
	events    ports.AuditRepository
}

func NewAuditService(contracts ports.ContractRepository, events ports.AuditRepository) *AuditService {
	return &AuditService{contracts: contracts, events: events}
}

// Trail returns a contract's audit events, oldest first. Looking up a
// contract that does not exist is an error even when orphaned events remain
// for its id.
func (s *AuditService) Trail(ctx context.Context, contractID int64) ([]*domain.AuditEvent, error) {
	if _, err := s.contracts.FindByID(ctx, contractID); err != nil {
		return nil, err
	}
	return s.events.FindByContractID(ctx, contractID)
}
