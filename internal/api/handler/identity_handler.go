package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bountyhq/platform-api/internal/api/middleware"
	"github.com/bountyhq/platform-api/internal/api/response"
	"github.com/bountyhq/platform-api/internal/core/domain"
	"github.com/bountyhq/platform-api/internal/core/ports"
)

// IdentityHandler serves account registration, login, and the caller's own
// authorization context.
type IdentityHandler struct {
	identity ports.IdentityService
}

func NewIdentityHandler(identity ports.IdentityService) *IdentityHandler {
	return &IdentityHandler{identity: identity}
}

// Register creates a new account.
//
// @Summary      Register a new account
// @Tags         identity
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  response.Envelope
// @Failure      400   {object}  response.Envelope
// @Failure      409   {object}  response.Envelope
// @Router       /api/v1/identity/register [post]
func (h *IdentityHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return domain.BadRequest("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return domain.Validation(err.Error())
	}

	user, err := h.identity.Register(c.Request().Context(), req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, response.Success(authResponse{User: user}))
}

// Login authenticates an account and returns a session token.
//
// @Summary      Login
// @Tags         identity
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  response.Envelope
// @Failure      400   {object}  response.Envelope
// @Failure      401   {object}  response.Envelope
// @Router       /api/v1/identity/login [post]
func (h *IdentityHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domain.BadRequest("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return domain.Validation(err.Error())
	}

	token, user, err := h.identity.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success(authResponse{Token: token, User: user}))
}

// Verify marks the caller's email as verified.
//
// @Summary      Verify the caller's email
// @Tags         identity
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope
// @Failure      401  {object}  response.Envelope
// @Router       /api/v1/identity/verify [post]
func (h *IdentityHandler) Verify(c echo.Context) error {
	ac := middleware.ApiContextFrom(c)
	if ac == nil {
		return domain.Unauthorized("")
	}

	if err := h.identity.Verify(c.Request().Context(), ac.UserID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, response.Success(map[string]bool{"verified": true}))
}

// Me returns the caller's authorization context.
//
// @Summary      Current caller context
// @Tags         identity
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope
// @Failure      401  {object}  response.Envelope
// @Router       /api/v1/identity/me [get]
func (h *IdentityHandler) Me(c echo.Context) error {
	ac := middleware.ApiContextFrom(c)
	if ac == nil {
		return domain.Unauthorized("")
	}
	return c.JSON(http.StatusOK, response.Success(ac))
}
