// Package upstream is the affiliate API client the persistence layer serves.
// It maps upstream product records into catalog models; request signing is
// intentionally not modeled here.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"affiliate-service/internal/model"
	"affiliate-service/pkg/config"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Client talks to the external affiliate product API.
type Client struct {
	BaseURL    string
	AppKey     string
	TrackingID string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// NewClient creates an affiliate API client from configuration.
func NewClient(cfg *config.AffiliateConfig, logger *zap.Logger) *Client {
	return &Client{
		BaseURL:    cfg.BaseURL,
		AppKey:     cfg.AppKey,
		TrackingID: cfg.TrackingID,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		Logger:     logger,
	}
}

// Configured reports whether the client has enough configuration to be used.
func (c *Client) Configured() bool {
	return c.BaseURL != "" && c.AppKey != ""
}

// productRecord is the upstream wire shape of one product.
type productRecord struct {
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

type searchResponse struct {
	Products []productRecord `json:"products"`
	HasMore  bool            `json:"has_more"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Search queries the affiliate API for products. Records without an external
// product identifier are rejected here, before they can reach storage.
func (c *Client) Search(ctx context.Context, query string, page, pageSize int) ([]model.Product, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("affiliate API client is not configured")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(pageSize))
	params.Set("app_key", c.AppKey)
	params.Set("tracking_id", c.TrackingID)

	endpoint := fmt.Sprintf("%s/products/search?%s", c.BaseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Logger.Error("Affiliate API request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.Logger.Error("Failed to read affiliate API response", zap.Error(err))
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			return nil, fmt.Errorf("affiliate API error: %s - %s", errResp.Error, errResp.Message)
		}
		return nil, fmt.Errorf("affiliate API error: %d %s", resp.StatusCode, string(body))
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse affiliate API response: %w", err)
	}

	products := make([]model.Product, 0, len(result.Products))
	for _, record := range result.Products {
		if record.ProductID == "" {
			c.Logger.Warn("Rejecting upstream record without product identifier",
				zap.String("product_title", record.Title))
			continue
		}
		products = append(products, c.toProduct(record))
	}

	c.Logger.Info("Affiliate API search completed",
		zap.String("query", query),
		zap.Int("records", len(result.Products)),
		zap.Int("accepted", len(products)))
	return products, nil
}

func (c *Client) toProduct(record productRecord) model.Product {
	currency := record.SalePriceCurrency
	if currency == "" {
		currency = "USD"
	}
	return model.Product{
		ProductID:             record.ProductID,
		Title:                 record.Title,
		MainImageURL:          record.MainImageURL,
		VideoURL:              record.VideoURL,
		SalePrice:             record.SalePrice,
		SalePriceCurrency:     currency,
		OriginalPrice:         record.OriginalPrice,
		OriginalPriceCurrency: record.OriginalPriceCurrency,
		LatestVolume:          record.LatestVolume,
		RatingWeighted:        record.RatingWeighted,
		FirstLevelCategoryID:  record.FirstLevelCategoryID,
		PromotionLink:         record.PromotionLink,
	}
}
