package handler

import (
	"net/http"
	"strconv"
	"time"

	"affiliate-service/internal/model"
	"affiliate-service/pkg/logger"
	"affiliate-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// LiveSearch queries the upstream affiliate API, persists every returned
// record into the catalog and serves the stored results. Upsert failures for
// individual records are logged and skipped so one bad record cannot sink
// the whole page.
func (h *Handler) LiveSearch(c echo.Context) error {
	log := logger.FromEcho(c)
	query := c.QueryParam("q")
	if query == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "q is required"})
	}

	if !h.upstream.Configured() {
		log.Warn("Live search requested but affiliate API is not configured")
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "affiliate API is not configured"})
	}

	page := parsePage(c).Normalize()
	ctx := c.Request().Context()

	records, err := h.upstream.Search(ctx, query, page.Page, page.PageSize)
	if err != nil {
		log.Error("Upstream search failed",
			zap.String("query", query),
			zap.Error(err))
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "affiliate API request failed"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	stored := make([]model.Product, 0, len(records))
	for i := range records {
		product, err := h.store.UpsertProduct(ctx, &records[i])
		if err != nil {
			log.Warn("Skipping upstream record that failed to persist",
				zap.String("product_id", records[i].ProductID),
				zap.Error(err))
			continue
		}
		stored = append(stored, *product)
	}

	h.store.LogSearch(ctx, query, len(stored), c.RealIP())

	prometheus.RecordSearch("live")
	log.Info("Live search completed",
		zap.String("query", query),
		zap.Int("fetched", len(records)),
		zap.Int("stored", len(stored)))
	return c.JSON(http.StatusOK, PaginatedResponse{
		Items:    stored,
		Page:     page.Page,
		PageSize: page.PageSize,
		HasMore:  len(stored) == page.PageSize,
	})
}

// RecentSearches lists the latest logged search queries. Administrative route.
func (h *Handler) RecentSearches(c echo.Context) error {
	log := logger.FromEcho(c)

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	defer prometheus.TrackDBOperation("select")(time.Now())
	entries, err := h.store.RecentSearches(c.Request().Context(), limit)
	if err != nil {
		log.Error("Failed to list recent searches", zap.Error(err))
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"searches": entries, "count": len(entries)})
}
