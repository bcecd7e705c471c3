package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"

	"github.com/bountyhq/platform-api/internal/core/domain"
)

// OpenAPIHandler serves the machine-readable API descriptor registered by
// the docs package.
type OpenAPIHandler struct{}

func NewOpenAPIHandler() *OpenAPIHandler {
	return &OpenAPIHandler{}
}

// Spec returns the OpenAPI document as JSON.
//
// @Summary      OpenAPI descriptor
// @Tags         meta
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/v1/openapi.json [get]
func (h *OpenAPIHandler) Spec(c echo.Context) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return domain.Internal(err)
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, []byte(doc))
}
