package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/bountyhq/platform-api/internal/api/metrics"
	"github.com/bountyhq/platform-api/internal/core/guard"
)

// ParamsFunc extracts resource-scoped guard parameters from the request,
// e.g. the target organization id from the path.
type ParamsFunc func(c echo.Context) guard.Params

// OrgIDParam reads the organization id from the :id path segment.
func OrgIDParam(c echo.Context) guard.Params {
	return guard.Params{OrgID: c.Param("id")}
}

// Guards gates a route behind an ordered guard chain. Evaluation
// short-circuits: only the first failing guard is reported, and the
// guards after it never run.
func Guards(chain guard.Chain, params ParamsFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := guard.Params{}
			if params != nil {
				p = params(c)
			}

			ac := ApiContextFrom(c)
			reqCtx := c.Request().Context()

			for _, g := range chain {
				if err := g.Check(reqCtx, ac, p); err != nil {
					metrics.GuardDenialsTotal.WithLabelValues(g.Name).Inc()
					return err
				}
			}
			return next(c)
		}
	}
}
