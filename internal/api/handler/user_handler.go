package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lendly/rental-marketplace/internal/core/service"
)

// UserHandler handles HTTP requests for user administration.
type UserHandler struct {
	service *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{service: svc}
}

// List handles GET /users/users.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  errorResponse
// @Router       /users/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get handles GET /users/user/:userid.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        userid  path      int  true  "User id"
// @Success      200     {object}  domain.User
// @Failure      404     {object}  errorResponse
// @Router       /users/user/{userid} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c, "userid")
	if err != nil {
		return err
	}

	user, err := h.service.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// GetByName handles GET /users/user/name/:username.
//
// @Summary      Get a user by username
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  domain.User
// @Failure      404       {object}  errorResponse
// @Router       /users/user/name/{username} [get]
func (h *UserHandler) GetByName(c echo.Context) error {
	user, err := h.service.FindByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
