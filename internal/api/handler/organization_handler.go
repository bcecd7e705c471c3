package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bountyhq/platform-api/internal/api/middleware"
	"github.com/bountyhq/platform-api/internal/api/response"
	"github.com/bountyhq/platform-api/internal/core/domain"
	"github.com/bountyhq/platform-api/internal/core/ports"
)

// OrganizationHandler serves the organization module routes. Authorization
// lives in the guard chains registered on each route; handlers only bind,
// validate, and call the service.
type OrganizationHandler struct {
	orgs ports.OrganizationService
}

func NewOrganizationHandler(orgs ports.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgs: orgs}
}

// Create registers a new organization with the caller as its first admin.
//
// @Summary      Create an organization
// @Tags         organization
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOrgRequest  true  "Organization details"
// @Success      201   {object}  response.Envelope
// @Failure      400   {object}  response.Envelope
// @Failure      401   {object}  response.Envelope
// @Failure      403   {object}  response.Envelope
// @Router       /api/v1/organization [post]
func (h *OrganizationHandler) Create(c echo.Context) error {
	var req createOrgRequest
	if err := c.Bind(&req); err != nil {
		return domain.BadRequest("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return domain.Validation(err.Error())
	}

	ac := middleware.ApiContextFrom(c)
	if ac == nil {
		return domain.Unauthorized("")
	}

	org, err := h.orgs.Create(c.Request().Context(), *ac, req.Name, req.Website)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, response.Success(org))
}

// Get returns one organization.
//
// @Summary      Get an organization
// @Tags         organization
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Organization id"
// @Success      200  {object}  response.Envelope
// @Failure      401  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/v1/organization/{id} [get]
func (h *OrganizationHandler) Get(c echo.Context) error {
	org, err := h.orgs.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, response.Success(org))
}

// Update changes an organization's mutable fields.
//
// @Summary      Update an organization
// @Tags         organization
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Organization id"
// @Param        body  body      updateOrgRequest  true  "Fields to update"
// @Success      200   {object}  response.Envelope
// @Failure      401   {object}  response.Envelope
// @Failure      403   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Router       /api/v1/organization/{id} [put]
func (h *OrganizationHandler) Update(c echo.Context) error {
	var req updateOrgRequest
	if err := c.Bind(&req); err != nil {
		return domain.BadRequest("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return domain.Validation(err.Error())
	}

	ac := middleware.ApiContextFrom(c)
	if ac == nil {
		return domain.Unauthorized("")
	}

	org, err := h.orgs.Update(c.Request().Context(), *ac, c.Param("id"), req.Name, req.Website)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success(org))
}

// List returns all organizations. Platform admins only.
//
// @Summary      List organizations
// @Tags         organization
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope
// @Failure      401  {object}  response.Envelope
// @Failure      403  {object}  response.Envelope
// @Router       /api/v1/organization [get]
func (h *OrganizationHandler) List(c echo.Context) error {
	orgs, err := h.orgs.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, response.Success(orgs))
}
