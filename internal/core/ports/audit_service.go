package ports

import (
	"context"

	"github.com/lendly/rental-marketplace/internal/core/domain"
)

// AuditService exposes the persisted contract audit trail.
type AuditService interface {
	// Trail returns one contract's audit events, oldest first. The contract
	// must exist.
	Trail(ctx context.Context, contractID int64) ([]*domain.AuditEvent, error)
}
