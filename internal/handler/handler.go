package handler

import (
	"errors"
	"net/http"

	"affiliate-service/internal/store"
	"affiliate-service/internal/upstream"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Handler bundles the collaborators the route handlers need. Constructed
// once at startup and passed by reference; no package-level state.
type Handler struct {
	store    *store.Store
	upstream *upstream.Client
	log      *zap.Logger
}

// New creates the route handler set.
func New(st *store.Store, up *upstream.Client, log *zap.Logger) *Handler {
	return &Handler{store: st, upstream: up, log: log}
}

// respondError translates store errors into client-facing responses.
func respondError(c echo.Context, err error) error {
	var validationErr *store.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validationErr.Error()})
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, store.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "conflict"})
	case errors.Is(err, store.ErrTransientStore):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage temporarily unavailable"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

// sessionID extracts the opaque visitor session from the request.
func sessionID(c echo.Context) string {
	return c.Request().Header.Get("X-Session-ID")
}
