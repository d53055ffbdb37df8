package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lendly/rental-marketplace/internal/api/metrics"
	"github.com/lendly/rental-marketplace/internal/core/domain"
	"github.com/lendly/rental-marketplace/internal/core/ports"
)

// ContractHandler handles HTTP requests for contract operations.
type ContractHandler struct {
	service ports.ContractService
}

func NewContractHandler(service ports.ContractService) *ContractHandler {
	return &ContractHandler{service: service}
}

func toContractResponse(c *domain.Contract) contractResponse {
	return contractResponse{
		ID:             c.ID,
		Length:         c.Length,
		Fee:            c.Fee,
		Active:         c.Active,
		RenteeAccept:   c.RenteeAccept,
		LenderAccept:   c.LenderAccept,
		RenteeComplete: c.RenteeComplete,
		LenderComplete: c.LenderComplete,
		StartDate:      c.StartDate,
		EndDate:        c.EndDate,
		RenteeID:       c.RenteeID,
		ItemID:         c.ItemID,
	}
}

func contractLocation(id int64) string {
	return fmt.Sprintf("/contracts/contract/%d", id)
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// List handles GET /contracts/contracts.
//
// @Summary      List all contracts
// @Tags         contracts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   contractResponse
// @Failure      403  {object}  errorResponse
// @Router       /contracts/contracts [get]
func (h *ContractHandler) List(c echo.Context) error {
	contracts, err := h.service.FindAll(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]contractResponse, 0, len(contracts))
	for _, contract := range contracts {
		resp = append(resp, toContractResponse(contract))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get handles GET /contracts/contract/:contractid.
//
// @Summary      Get a contract by id
// @Tags         contracts
// @Produce      json
// @Security     BearerAuth
// @Param        contractid  path      int  true  "Contract id"
// @Success      200         {object}  contractResponse
// @Failure      404         {object}  errorResponse
// @Router       /contracts/contract/{contractid} [get]
func (h *ContractHandler) Get(c echo.Context) error {
	id, err := pathID(c, "contractid")
	if err != nil {
		return err
	}

	contract, err := h.service.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toContractResponse(contract))
}

// New handles POST /contracts/new/:itemid. The rentee is always the
// authenticated caller; the body carries only the rental length.
//
// @Summary      Open a new contract on an item
// @Tags         contracts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        itemid  path      int                 true  "Item id"
// @Param        body    body      newContractRequest  true  "Rental length in days"
// @Success      201     {object}  contractResponse
// @Failure      400     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /contracts/new/{itemid} [post]
func (h *ContractHandler) New(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	itemID, err := pathID(c, "itemid")
	if err != nil {
		return err
	}

	var req newContractRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	contract, err := h.service.Save(c.Request().Context(), ports.SaveContractInput{
		Length:         req.Length,
		RenteeUsername: username,
		ItemID:         itemID,
	})
	if err != nil {
		return err
	}

	metrics.ContractsCreatedTotal.Inc()
	metrics.ContractMutationsTotal.WithLabelValues("save").Inc()

	c.Response().Header().Set(echo.HeaderLocation, contractLocation(contract.ID))
	return c.JSON(http.StatusCreated, toContractResponse(contract))
}

// Save handles PUT /contracts/contract/:contractid. It fully replaces the
// contract: flags not present in the payload reset to false.
//
// @Summary      Replace a contract
// @Tags         contracts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        contractid  path      int                  true  "Contract id"
// @Param        body        body      saveContractRequest  true  "Full contract payload"
// @Success      200         {object}  contractResponse
// @Failure      400         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /contracts/contract/{contractid} [put]
func (h *ContractHandler) Save(c echo.Context) error {
	id, err := pathID(c, "contractid")
	if err != nil {
		return err
	}

	var req saveContractRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	contract, err := h.service.Save(c.Request().Context(), ports.SaveContractInput{
		ID:             id,
		Length:         req.Length,
		RenteeUsername: req.RenteeUsername,
		ItemID:         req.ItemID,
		RenteeAccept:   req.RenteeAccept,
		LenderAccept:   req.LenderAccept,
		RenteeComplete: req.RenteeComplete,
		LenderComplete: req.LenderComplete,
	})
	if err != nil {
		return err
	}

	metrics.ContractMutationsTotal.WithLabelValues("save").Inc()
	return c.JSON(http.StatusOK, toContractResponse(contract))
}

// Update handles PATCH /contracts/contract/:contractid. Only the acting
// party's own flags are applied; the rest of the payload is ignored.
//
// @Summary      Update a party's contract flags
// @Tags         contracts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        contractid  path      int                   true  "Contract id"
// @Param        body        body      patchContractRequest  true  "Partial flag update"
// @Success      200         {object}  contractResponse
// @Failure      403         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /contracts/contract/{contractid} [patch]
func (h *ContractHandler) Update(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "contractid")
	if err != nil {
		return err
	}

	var req patchContractRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	contract, err := h.service.Update(c.Request().Context(), ports.UpdateContractInput{
		ID:             id,
		ActingUsername: username,
		Length:         req.Length,
		RenteeAccept:   req.RenteeAccept,
		LenderAccept:   req.LenderAccept,
		RenteeComplete: req.RenteeComplete,
		LenderComplete: req.LenderComplete,
	})
	if err != nil {
		return err
	}

	metrics.ContractMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toContractResponse(contract))
}

// Agree handles PATCH /contracts/contract/agree/:contractid. It sets the
// acting party's accept flag. A caller who is neither party gets a 404, not
// a 403, so outsiders learn nothing about whether the contract exists.
//
// @Summary      Agree to a contract
// @Tags         contracts
// @Produce      json
// @Security     BearerAuth
// @Param        contractid  path      int  true  "Contract id"
// @Success      201         {object}  contractResponse
// @Failure      404         {object}  errorResponse
// @Router       /contracts/contract/agree/{contractid} [patch]
func (h *ContractHandler) Agree(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "contractid")
	if err != nil {
		return err
	}

	contract, err := h.service.Agree(c.Request().Context(), id, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotContractParty) {
			return echo.NewHTTPError(http.StatusNotFound, "contract not found")
		}
		return err
	}

	metrics.ContractMutationsTotal.WithLabelValues("agree").Inc()

	c.Response().Header().Set(echo.HeaderLocation, contractLocation(contract.ID))
	return c.JSON(http.StatusCreated, toContractResponse(contract))
}

// Delete handles DELETE /contracts/contract/:contractid.
//
// @Summary      Delete a contract
// @Tags         contracts
// @Produce      json
// @Security     BearerAuth
// @Param        contractid  path      int  true  "Contract id"
// @Success      200         {object}  map[string]string
// @Failure      404         {object}  errorResponse
// @Router       /contracts/contract/{contractid} [delete]
func (h *ContractHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "contractid")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	metrics.ContractMutationsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}
