// Package presenter maps Outcome values onto the gateway's uniform HTTP
// envelope. Every outcome kind maps to exactly one status. Upstream
// failures become 502, never 500, so a collaborator's failure is
// distinguishable from a gateway bug; their raw detail is logged, never
// rendered.
package presenter

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	blog "github.com/Esteban8482/blog-platform"
)

type Envelope struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	Data     any      `json:"data,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Respond writes the outcome, 200 on success.
func Respond[T any](c echo.Context, o blog.Outcome[T]) error {
	return respond(c, o, http.StatusOK)
}

// RespondCreated writes the outcome, 201 on success.
func RespondCreated[T any](c echo.Context, o blog.Outcome[T]) error {
	return respond(c, o, http.StatusCreated)
}

func respond[T any](c echo.Context, o blog.Outcome[T], successStatus int) error {
	switch o.Kind {
	case blog.KindOk:
		return c.JSON(successStatus, Envelope{
			Success:  true,
			Message:  "ok",
			Data:     o.Data,
			Warnings: o.Warnings,
		})
	case blog.KindInvalid:
		return fail(c, http.StatusBadRequest, reasonOr(o.Reason, "invalid request"))
	case blog.KindUnauthorized:
		return fail(c, http.StatusUnauthorized, "authentication required")
	case blog.KindForbidden:
		return fail(c, http.StatusForbidden, "not allowed")
	case blog.KindNotFound:
		return fail(c, http.StatusNotFound, "not found")
	case blog.KindConflict:
		return fail(c, http.StatusConflict, reasonOr(o.Reason, "already exists"))
	case blog.KindUpstream:
		slog.ErrorContext(c.Request().Context(), "upstream failure",
			slog.String("detail", o.Detail),
			slog.String("path", c.Path()),
			slog.String("module", "presenter"),
		)
		return fail(c, http.StatusBadGateway, "a backend service is unavailable")
	}
	// Kind is a closed set; reaching this means a kind gained no mapping.
	panic("unhandled outcome kind: " + o.Kind.String())
}

// BadRequest reports a malformed request body before any usecase runs.
func BadRequest(c echo.Context, msg string) error {
	return fail(c, http.StatusBadRequest, msg)
}

// NotFound reports a route-level miss, such as an endpoint disabled by the
// deployment's auth mode.
func NotFound(c echo.Context, msg string) error {
	return fail(c, http.StatusNotFound, msg)
}

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, Envelope{Success: false, Message: msg})
}

func reasonOr(reason, fallback string) string {
	if reason != "" {
		return reason
	}
	return fallback
}
