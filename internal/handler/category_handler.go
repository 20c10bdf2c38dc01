package handler

import (
	"net/http"
	"time"

	"affiliate-service/internal/model"
	"affiliate-service/pkg/logger"
	"affiliate-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CategoryRequest defines the structure for category upsert requests
type CategoryRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id"`
	Level    int     `json:"level"`
}

// ListCategories handles retrieving all categories
func (h *Handler) ListCategories(c echo.Context) error {
	log := logger.FromEcho(c)

	defer prometheus.TrackDBOperation("select")(time.Now())
	categories, err := h.store.ListCategories(c.Request().Context())
	if err != nil {
		log.Error("Failed to retrieve categories", zap.Error(err))
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"categories": categories,
		"total":      len(categories),
	})
}

// UpsertCategory handles creating or updating a category. Administrative route.
func (h *Handler) UpsertCategory(c echo.Context) error {
	log := logger.FromEcho(c)
	categoryID := c.Param("category_id")

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	level := req.Level
	if level == 0 {
		level = 1
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	category, err := h.store.UpsertCategory(c.Request().Context(), &model.Category{
		CategoryID: categoryID,
		Name:       req.Name,
		ParentID:   req.ParentID,
		Level:      level,
	})
	if err != nil {
		log.Error("Failed to upsert category",
			zap.String("category_id", categoryID),
			zap.Error(err))
		return respondError(c, err)
	}

	log.Info("Category upserted",
		zap.String("category_id", category.CategoryID),
		zap.String("name", category.Name))
	return c.JSON(http.StatusOK, category)
}
