package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lendly/rental-marketplace/internal/core/domain"
	"github.com/lendly/rental-marketplace/internal/core/ports"
)

// ItemHandler handles HTTP requests for item listings.
type ItemHandler struct {
	service ports.ItemService
}

func NewItemHandler(service ports.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

func toItemResponse(i *domain.Item) itemResponse {
	return itemResponse{
		ID:          i.ID,
		Name:        i.Name,
		Type:        i.Type,
		Description: i.Description,
		Location:    i.Location,
		Available:   i.Available,
		Rate:        i.Rate,
		Image:       i.Image,
		LenderID:    i.LenderID,
	}
}

// List handles GET /items/items.
//
// @Summary      List all items
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   itemResponse
// @Failure      403  {object}  errorResponse
// @Router       /items/items [get]
func (h *ItemHandler) List(c echo.Context) error {
	items, err := h.service.FindAll(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]itemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toItemResponse(item))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get handles GET /items/item/:itemid.
//
// @Summary      Get an item by id
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        itemid  path      int  true  "Item id"
// @Success      200     {object}  itemResponse
// @Failure      404     {object}  errorResponse
// @Router       /items/item/{itemid} [get]
func (h *ItemHandler) Get(c echo.Context) error {
	id, err := pathID(c, "itemid")
	if err != nil {
		return err
	}

	item, err := h.service.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toItemResponse(item))
}

// GetByName handles GET /items/item/name/:itemname. The match is exact
// against the stored (lowercased) name.
//
// @Summary      Get an item by exact name
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        itemname  path      string  true  "Item name"
// @Success      200       {object}  itemResponse
// @Failure      404       {object}  errorResponse
// @Router       /items/item/name/{itemname} [get]
func (h *ItemHandler) GetByName(c echo.Context) error {
	item, err := h.service.FindByName(c.Request().Context(), c.Param("itemname"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toItemResponse(item))
}

// Search handles GET /items/item/name/like/:itemname. No match yields an
// empty array, never a 404.
//
// @Summary      Search items by name fragment
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        itemname  path      string  true  "Name fragment"
// @Success      200       {array}   itemResponse
// @Router       /items/item/name/like/{itemname} [get]
func (h *ItemHandler) Search(c echo.Context) error {
	items, err := h.service.FindByNameContaining(c.Request().Context(), c.Param("itemname"))
	if err != nil {
		return err
	}

	resp := make([]itemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toItemResponse(item))
	}
	return c.JSON(http.StatusOK, resp)
}

// Create handles POST /items/item. The lender defaults to the authenticated
// caller when the payload names none.
//
// @Summary      List a new item for rent
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      saveItemRequest  true  "Item details"
// @Success      201   {object}  itemResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /items/item [post]
func (h *ItemHandler) Create(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req saveItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	lender := req.LenderName
	if lender == "" {
		lender = username
	}

	item, err := h.service.Save(c.Request().Context(), ports.SaveItemInput{
		Name:           req.Name,
		Type:           req.Type,
		Description:    req.Description,
		Location:       req.Location,
		Available:      req.Available,
		Rate:           req.Rate,
		Image:          req.Image,
		LenderUsername: lender,
	})
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/items/item/%d", item.ID))
	return c.JSON(http.StatusCreated, toItemResponse(item))
}

// Save handles PUT /items/item/:itemid, a full replace.
//
// @Summary      Replace an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        itemid  path      int              true  "Item id"
// @Param        body    body      saveItemRequest  true  "Full item payload"
// @Success      200     {object}  itemResponse
// @Failure      400     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /items/item/{itemid} [put]
func (h *ItemHandler) Save(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "itemid")
	if err != nil {
		return err
	}

	var req saveItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	lender := req.LenderName
	if lender == "" {
		lender = username
	}

	item, err := h.service.Save(c.Request().Context(), ports.SaveItemInput{
		ID:             id,
		Name:           req.Name,
		Type:           req.Type,
		Description:    req.Description,
		Location:       req.Location,
		Available:      req.Available,
		Rate:           req.Rate,
		Image:          req.Image,
		LenderUsername: lender,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toItemResponse(item))
}

// Update handles PATCH /items/item/:itemid, a partial update.
//
// @Summary      Update item fields
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        itemid  path      int               true  "Item id"
// @Param        body    body      patchItemRequest  true  "Fields to change"
// @Success      200     {object}  itemResponse
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /items/item/{itemid} [patch]
func (h *ItemHandler) Update(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "itemid")
	if err != nil {
		return err
	}

	var req patchItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	item, err := h.service.Update(c.Request().Context(), ports.UpdateItemInput{
		ID:             id,
		ActingUsername: username,
		Name:           req.Name,
		Type:           req.Type,
		Description:    req.Description,
		Location:       req.Location,
		Available:      req.Available,
		Rate:           req.Rate,
		Image:          req.Image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toItemResponse(item))
}

// Delete handles DELETE /items/item/:itemid.
//
// @Summary      Delete an item
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        itemid  path      int  true  "Item id"
// @Success      200     {object}  map[string]string
// @Failure      404     {object}  errorResponse
// @Router       /items/item/{itemid} [delete]
func (h *ItemHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "itemid")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}
