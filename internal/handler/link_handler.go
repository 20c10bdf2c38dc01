package handler

import (
	"net/http"
	"time"

	"affiliate-service/internal/store"
	"affiliate-service/pkg/logger"
	"affiliate-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// LinkRequest defines the structure for affiliate link recording requests
type LinkRequest struct {
	OriginalURL  string `json:"original_url"`
	AffiliateURL string `json:"affiliate_url"`
}

// RecordLink handles creating or updating the tracked affiliate link of a product
func (h *Handler) RecordLink(c echo.Context) error {
	log := logger.FromEcho(c)
	productID := c.Param("product_id")

	var req LinkRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	link, err := h.store.RecordAffiliateLink(c.Request().Context(), productID, req.OriginalURL, req.AffiliateURL)
	if err != nil {
		log.Error("Failed to record affiliate link",
			zap.String("product_id", productID),
			zap.Error(err))
		return respondError(c, err)
	}

	log.Info("Affiliate link recorded",
		zap.String("product_id", productID))
	return c.JSON(http.StatusOK, link)
}

// TrackClick handles a click tracking event for a product's affiliate link
func (h *Handler) TrackClick(c echo.Context) error {
	return h.trackMetric(c, store.MetricClick)
}

// TrackConversion handles a conversion tracking event for a product's affiliate link
func (h *Handler) TrackConversion(c echo.Context) error {
	return h.trackMetric(c, store.MetricConversion)
}

func (h *Handler) trackMetric(c echo.Context, metric store.LinkMetric) error {
	log := logger.FromEcho(c)
	productID := c.Param("product_id")

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := h.store.IncrementLinkMetric(c.Request().Context(), productID, metric); err != nil {
		log.Warn("Failed to track link metric",
			zap.String("product_id", productID),
			zap.String("metric", string(metric)),
			zap.Error(err))
		return respondError(c, err)
	}

	prometheus.RecordLinkTracking(string(metric))
	return c.JSON(http.StatusOK, echo.Map{"message": "recorded"})
}

// GetLink handles retrieving the tracked affiliate link of a product
func (h *Handler) GetLink(c echo.Context) error {
	log := logger.FromEcho(c)
	productID := c.Param("product_id")

	defer prometheus.TrackDBOperation("select")(time.Now())
	link, err := h.store.GetAffiliateLink(c.Request().Context(), productID)
	if err != nil {
		log.Warn("Affiliate link lookup failed",
			zap.String("product_id", productID),
			zap.Error(err))
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, link)
}
