package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bountyhq/platform-api/internal/api/response"
	"github.com/bountyhq/platform-api/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps tagged AppErrors to their HTTP status and wire code.
//   - Maps Echo's own errors (bind failures, router 404s) onto the taxonomy.
//   - Logs anything unclassified internally and renders a generic 500 —
//     no raw failure ever reaches the transport boundary.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, code, msg := resolveError(err, log, c)
		_ = c.JSON(status, response.Error(code, msg))
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, string) {
	// Classified application errors carry their own status and code.
	if app, ok := domain.AsAppError(err); ok {
		if app.Status >= http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("internal error")
		}
		return app.Status, app.Code, app.Message
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, codeForStatus(he.Code), fmt.Sprintf("%v", he.Message)
	}

	// Unclassified error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, domain.CodeInternal, "Internal server error"
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return domain.CodeUnauthorized
	case http.StatusForbidden:
		return domain.CodeForbidden
	case http.StatusNotFound:
		return domain.CodeNotFound
	case http.StatusConflict:
		return domain.CodeConflict
	case http.StatusBadRequest, http.StatusMethodNotAllowed, http.StatusUnsupportedMediaType:
		return domain.CodeBadRequest
	default:
		return domain.CodeInternal
	}
}
