package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bountyhq/platform-api/internal/api/metrics"
	"github.com/bountyhq/platform-api/internal/core/domain"
	"github.com/bountyhq/platform-api/internal/core/ports"
)

// contextKey is where the built ApiContext lives inside the echo context.
const contextKey = "api_context"

// sessionCookie is the fallback credential source when no Authorization
// header is present.
const sessionCookie = "session"

// Auth resolves the inbound credential into a Principal and builds the
// per-request ApiContext. Requests that fail either step never reach the
// handler and never get a context — there is no anonymous fallback.
func Auth(resolver ports.SessionResolver, builder ports.ContextBuilder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := credentialFromRequest(c)
			if err != nil {
				metrics.AuthRequestsTotal.WithLabelValues("unauthorized").Inc()
				return err
			}

			reqCtx := c.Request().Context()

			principal, err := resolver.Resolve(reqCtx, raw)
			if err != nil {
				metrics.AuthRequestsTotal.WithLabelValues("unauthorized").Inc()
				return err
			}

			ac, err := builder.Build(reqCtx, principal)
			if err != nil {
				metrics.AuthRequestsTotal.WithLabelValues("orphaned").Inc()
				return err
			}

			metrics.AuthRequestsTotal.WithLabelValues("ok").Inc()
			c.Set(contextKey, &ac)
			return next(c)
		}
	}
}

// ApiContextFrom returns the ApiContext attached by Auth, or nil when the
// middleware did not run.
func ApiContextFrom(c echo.Context) *domain.ApiContext {
	ac, _ := c.Get(contextKey).(*domain.ApiContext)
	return ac
}

// credentialFromRequest extracts the raw credential: a bearer token from
// the Authorization header, or the session cookie. A present but
// malformed header is rejected outright.
func credentialFromRequest(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			return "", domain.Unauthorized("invalid authorization header")
		}
		return parts[1], nil
	}

	if cookie, err := c.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	return "", domain.Unauthorized("")
}
