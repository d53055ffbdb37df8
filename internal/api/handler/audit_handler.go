package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lendly/rental-marketplace/internal/core/domain"
	"github.com/lendly/rental-marketplace/internal/core/ports"
)

// auditEventResponse is the transport view of one audit trail entry.
type auditEventResponse struct {
	ContractID int64     `json:"contractid"`
	Action     string    `json:"action"`
	Actor      string    `json:"actor,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// AuditHandler serves the contract audit trail.
type AuditHandler struct {
	service ports.AuditService
}

func NewAuditHandler(service ports.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

func toAuditEventResponse(e *domain.AuditEvent) auditEventResponse {
	return auditEventResponse{
		ContractID: e.ContractID,
		Action:     e.Action,
		Actor:      e.Actor,
		Timestamp:  e.Timestamp,
	}
}

// Trail handles GET /contracts/contract/:contractid/audit.
//
// @Summary      Get a contract's audit trail
// @Tags         contracts
// @Produce      json
// @Security     BearerAuth
// @Param        contractid  path      int  true  "Contract id"
// @Success      200         {array}   auditEventResponse
// @Failure      403         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /contracts/contract/{contractid}/audit [get]
func (h *AuditHandler) Trail(c echo.Context) error {
	id, err := pathID(c, "contractid")
	if err != nil {
		return err
	}

	events, err := h.service.Trail(c.Request().Context(), id)
	if err != nil {
		return err
	}

	resp := make([]auditEventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, toAuditEventResponse(e))
	}
	return c.JSON(http.StatusOK, resp)
}
