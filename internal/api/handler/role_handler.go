package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lendly/rental-marketplace/internal/core/domain"
	"github.com/lendly/rental-marketplace/internal/core/service"
)

// RoleHandler handles HTTP requests for role administration.
type RoleHandler struct {
	service *service.RoleService
}

func NewRoleHandler(svc *service.RoleService) *RoleHandler {
	return &RoleHandler{service: svc}
}

type saveRoleRequest struct {
	Name string `json:"rolename" validate:"required"`
}

// List handles GET /roles/roles.
//
// @Summary      List all roles
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Role
// @Failure      403  {object}  errorResponse
// @Router       /roles/roles [get]
func (h *RoleHandler) List(c echo.Context) error {
	roles, err := h.service.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roles)
}

// Get handles GET /roles/role/:roleid.
//
// @Summary      Get a role by id
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        roleid  path      int  true  "Role id"
// @Success      200     {object}  domain.Role
// @Failure      404     {object}  errorResponse
// @Router       /roles/role/{roleid} [get]
func (h *RoleHandler) Get(c echo.Context) error {
	id, err := pathID(c, "roleid")
	if err != nil {
		return err
	}

	role, err := h.service.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, role)
}

// GetByName handles GET /roles/role/name/:rolename.
//
// @Summary      Get a role by name
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        rolename  path      string  true  "Role name"
// @Success      200       {object}  domain.Role
// @Failure      404       {object}  errorResponse
// @Router       /roles/role/name/{rolename} [get]
func (h *RoleHandler) GetByName(c echo.Context) error {
	role, err := h.service.FindByName(c.Request().Context(), c.Param("rolename"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, role)
}

// Create handles POST /roles/role.
//
// @Summary      Create a role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      saveRoleRequest  true  "Role name"
// @Success      201   {object}  domain.Role
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /roles/role [post]
func (h *RoleHandler) Create(c echo.Context) error {
	var req saveRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := h.service.Save(c.Request().Context(), &domain.Role{Name: req.Name})
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/roles/role/%d", role.ID))
	return c.JSON(http.StatusCreated, role)
}

// Delete handles DELETE /roles/role/:roleid.
//
// @Summary      Delete a role
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        roleid  path      int  true  "Role id"
// @Success      200     {object}  map[string]string
// @Failure      404     {object}  errorResponse
// @Router       /roles/role/{roleid} [delete]
func (h *RoleHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "roleid")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}
