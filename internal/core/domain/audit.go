package domain

import "time"

// Audit actions recorded for contract mutations.
const (
	AuditContractSaved   = "contract_saved"
	AuditContractUpdated = "contract_updated"
	AuditContractDeleted = "contract_deleted"
)

// AuditEvent records a single mutation on a contract for the audit trail.
type AuditEvent struct {
	ContractID int64     `json:"contractid" bson:"contractid"`
	Action     string    `json:"action" bson:"action"`
	Actor      string    `json:"actor" bson:"actor"` // username, empty for system writes
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
}
