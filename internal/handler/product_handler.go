package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"affiliate-service/internal/model"
	"affiliate-service/internal/store"
	"affiliate-service/pkg/logger"
	"affiliate-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductRequest defines the structure for product upsert requests
type ProductRequest struct {
	ProductID             string              `json:"product_id"`
	Title                 string              `json:"product_title"`
	MainImageURL          string              `json:"product_main_image_url"`
	VideoURL              string              `json:"product_video_url"`
	SalePrice             decimal.Decimal     `json:"sale_price"`
	SalePriceCurrency     string              `json:"sale_price_currency"`
	OriginalPrice         decimal.NullDecimal `json:"original_price"`
	OriginalPriceCurrency string              `json:"original_price_currency"`
	LatestVolume          int                 `json:"lastest_volume"`
	RatingWeighted        decimal.Decimal     `json:"rating_weighted"`
	FirstLevelCategoryID  string              `json:"first_level_category_id"`
	PromotionLink         string              `json:"promotion_link"`
}

// PaginatedResponse is the page envelope used by listing endpoints.
type PaginatedResponse struct {
	Items    interface{} `json:"items"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
	HasMore  bool        `json:"hasMore"`
}

func (r *ProductRequest) toModel() *model.Product {
	return &model.Product{
		ProductID:             r.ProductID,
		Title:                 r.Title,
		MainImageURL:          r.MainImageURL,
		VideoURL:              r.VideoURL,
		SalePrice:             r.SalePrice,
		SalePriceCurrency:     r.SalePriceCurrency,
		OriginalPrice:         r.OriginalPrice,
		OriginalPriceCurrency: r.OriginalPriceCurrency,
		LatestVolume:          r.LatestVolume,
		RatingWeighted:        r.RatingWeighted,
		FirstLevelCategoryID:  r.FirstLevelCategoryID,
		PromotionLink:         r.PromotionLink,
	}
}

// UpsertProduct handles inserting or refreshing a product record
func (h *Handler) UpsertProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	product, err := h.store.UpsertProduct(c.Request().Context(), req.toModel())
	if err != nil {
		log.Error("Failed to upsert product",
			zap.String("product_id", req.ProductID),
			zap.Error(err))
		return respondError(c, err)
	}

	prometheus.RecordProductOperation("upsert")
	log.Info("Product upserted",
		zap.String("product_id", product.ProductID),
		zap.String("product_title", product.Title))
	return c.JSON(http.StatusOK, product)
}

// GetProduct handles retrieving a single product by its external identifier
func (h *Handler) GetProduct(c echo.Context) error {
	log := logger.FromEcho(c)
	productID := c.Param("product_id")

	defer prometheus.TrackDBOperation("select")(time.Now())
	product, err := h.store.GetProduct(c.Request().Context(), productID)
	if err != nil {
		log.Warn("Product lookup failed",
			zap.String("product_id", productID),
			zap.Error(err))
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, product)
}

// SearchProducts handles searching the local catalog with filters
func (h *Handler) SearchProducts(c echo.Context) error {
	log := logger.FromEcho(c)
	query := c.QueryParam("q")

	filter, err := parseSearchFilter(c)
	if err != nil {
		log.Warn("Invalid search filter", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	page := parsePage(c)

	defer prometheus.TrackDBOperation("select")(time.Now())
	products, hasMore, err := h.store.SearchProducts(c.Request().Context(), query, filter, page)
	if err != nil {
		log.Error("Product search failed",
			zap.String("query", query),
			zap.Error(err))
		return respondError(c, err)
	}

	if query != "" {
		h.store.LogSearch(c.Request().Context(), query, len(products), c.RealIP())
	}

	prometheus.RecordSearch("local")
	log.Info("Product search completed",
		zap.String("query", query),
		zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, PaginatedResponse{
		Items:    products,
		Page:     page.Normalize().Page,
		PageSize: page.Normalize().PageSize,
		HasMore:  hasMore,
	})
}

// DeleteProduct handles deleting a product; dependent affiliate links and
// saved products are removed with it. Administrative route.
func (h *Handler) DeleteProduct(c echo.Context) error {
	log := logger.FromEcho(c)
	productID := c.Param("product_id")

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.store.DeleteProduct(c.Request().Context(), productID); err != nil {
		log.Error("Failed to delete product",
			zap.String("product_id", productID),
			zap.Error(err))
		return respondError(c, err)
	}

	prometheus.RecordProductOperation("delete")
	log.Info("Product deleted", zap.String("product_id", productID))
	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully"})
}

func parsePage(c echo.Context) store.Page {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))
	return store.Page{Page: page, PageSize: pageSize}
}

func parseSearchFilter(c echo.Context) (store.SearchFilter, error) {
	filter := store.SearchFilter{
		CategoryID: c.QueryParam("category_id"),
	}

	if raw := c.QueryParam("min_price"); raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, errors.New("invalid min_price")
		}
		filter.MinPrice = &value
	}
	if raw := c.QueryParam("max_price"); raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, errors.New("invalid max_price")
		}
		filter.MaxPrice = &value
	}
	if raw := c.QueryParam("min_rating"); raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, errors.New("invalid min_rating")
		}
		filter.MinRating = &value
	}
	if raw := c.QueryParam("min_volume"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return filter, errors.New("invalid min_volume")
		}
		filter.MinVolume = &value
	}
	if raw := c.QueryParam("has_video"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err == nil {
			filter.HasVideo = value
		}
	}

	return filter, nil
}
