package handler

import (
	"net/http"
	"time"

	"affiliate-service/pkg/logger"
	"affiliate-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// GetStats handles the aggregate statistics endpoint
func (h *Handler) GetStats(c echo.Context) error {
	log := logger.FromEcho(c)

	defer prometheus.TrackDBOperation("select")(time.Now())
	stats, err := h.store.GetStats(c.Request().Context())
	if err != nil {
		log.Error("Failed to compute stats", zap.Error(err))
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, stats)
}

// Health reports service liveness plus collaborator status
func (h *Handler) Health(c echo.Context) error {
	status := echo.Map{
		"status": "ok",
	}
	if h.upstream.Configured() {
		status["affiliate_api"] = "configured"
	} else {
		status["affiliate_api"] = "not_configured"
	}
	return c.JSON(http.StatusOK, status)
}
