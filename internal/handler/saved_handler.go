package handler

import (
	"net/http"
	"time"

	"affiliate-service/pkg/logger"
	"affiliate-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SaveRequest defines the structure for save requests
type SaveRequest struct {
	Note string `json:"note"`
}

// SaveProduct handles bookmarking a product for the caller's session
func (h *Handler) SaveProduct(c echo.Context) error {
	log := logger.FromEcho(c)
	productID := c.Param("product_id")

	session := sessionID(c)
	if session == "" {
		log.Warn("Missing X-Session-ID header on save request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "X-Session-ID header is required"})
	}

	var req SaveRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	saved, err := h.store.SaveProduct(c.Request().Context(), productID, session, req.Note)
	if err != nil {
		log.Error("Failed to save product",
			zap.String("product_id", productID),
			zap.Error(err))
		return respondError(c, err)
	}

	prometheus.RecordSavedOperation("save")
	log.Info("Product saved",
		zap.String("product_id", productID))
	return c.JSON(http.StatusOK, saved)
}

// UnsaveProduct handles removing a bookmark; removing an absent bookmark succeeds
func (h *Handler) UnsaveProduct(c echo.Context) error {
	log := logger.FromEcho(c)
	productID := c.Param("product_id")

	session := sessionID(c)
	if session == "" {
		log.Warn("Missing X-Session-ID header on unsave request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "X-Session-ID header is required"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.store.UnsaveProduct(c.Request().Context(), productID, session); err != nil {
		log.Error("Failed to unsave product",
			zap.String("product_id", productID),
			zap.Error(err))
		return respondError(c, err)
	}

	prometheus.RecordSavedOperation("unsave")
	return c.JSON(http.StatusOK, echo.Map{"message": "Product unsaved"})
}

// ListSaved handles listing the caller's saved products
func (h *Handler) ListSaved(c echo.Context) error {
	log := logger.FromEcho(c)

	session := sessionID(c)
	if session == "" {
		log.Warn("Missing X-Session-ID header on saved list request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "X-Session-ID header is required"})
	}

	page := parsePage(c).Normalize()
	defer prometheus.TrackDBOperation("select")(time.Now())
	saved, hasMore, err := h.store.ListSavedProducts(c.Request().Context(), session, page)
	if err != nil {
		log.Error("Failed to list saved products", zap.Error(err))
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, PaginatedResponse{
		Items:    saved,
		Page:     page.Page,
		PageSize: page.PageSize,
		HasMore:  hasMore,
	})
}
