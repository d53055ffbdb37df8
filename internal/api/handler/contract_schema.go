package handler

import "time"

// errorResponse documents the error envelope rendered by the central error
// handler on all 4xx/5xx responses.
type errorResponse struct {
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// --- Request / Response types ---

type newContractRequest struct {
	Length int `json:"contractlength" validate:"required,gt=0"`
}

type saveContractRequest struct {
	Length         int    `json:"contractlength" validate:"required,gt=0"`
	RenteeUsername string `json:"renteename" validate:"required"`
	ItemID         int64  `json:"itemid" validate:"required,gt=0"`
	RenteeAccept   bool   `json:"renteeaccept"`
	LenderAccept   bool   `json:"lenderaccept"`
	RenteeComplete bool   `json:"renteecomplete"`
	LenderComplete bool   `json:"lendercomplete"`
}

// patchContractRequest carries a partial update. Pointer fields distinguish
// "not sent" from an explicit false, so a party can retract its own flag.
type patchContractRequest struct {
	Length         *int  `json:"contractlength"`
	RenteeAccept   *bool `json:"renteeaccept"`
	LenderAccept   *bool `json:"lenderaccept"`
	RenteeComplete *bool `json:"renteecomplete"`
	LenderComplete *bool `json:"lendercomplete"`
}

// contractResponse is the transport view of a contract. It is intentionally
// separate from the domain type so the JSON contract is not coupled to
// internal changes.
type contractResponse struct {
	ID             int64      `json:"contractid"`
	Length         int        `json:"contractlength"`
	Fee            float64    `json:"contractfee"`
	Active         bool       `json:"active"`
	RenteeAccept   bool       `json:"renteeaccept"`
	LenderAccept   bool       `json:"lenderaccept"`
	RenteeComplete bool       `json:"renteecomplete"`
	LenderComplete bool       `json:"lendercomplete"`
	StartDate      *time.Time `json:"contractstartdate,omitempty"`
	EndDate        *time.Time `json:"contractenddate,omitempty"`
	RenteeID       int64      `json:"renteeid"`
	ItemID         int64      `json:"itemid"`
}
