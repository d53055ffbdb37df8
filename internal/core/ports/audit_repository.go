package ports

import (
	"context"

	"github.com/lendly/rental-marketplace/internal/core/domain"
)

// AuditRepository persists contract audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
	// FindByContractID returns the audit trail for one contract, oldest first.
	FindByContractID(ctx context.Context, contractID int64) ([]*domain.AuditEvent, error)
}
