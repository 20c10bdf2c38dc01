package store

import (
	"strings"

	"affiliate-service/internal/model"

	"github.com/shopspring/decimal"
)

var maxRating = decimal.NewFromInt(5)

// validateProduct rejects malformed upstream records before they reach
// storage. The external product identifier is mandatory; monetary amounts
// are never valid without a currency code.
func validateProduct(p *model.Product) error {
	if p == nil || strings.TrimSpace(p.ProductID) == "" {
		return &ValidationError{Field: "product_id", Reason: "external product identifier is required"}
	}
	if strings.TrimSpace(p.Title) == "" {
		return &ValidationError{Field: "product_title", Reason: "title is required"}
	}
	if p.SalePrice.IsNegative() {
		return &ValidationError{Field: "sale_price", Reason: "price must not be negative"}
	}
	if p.SalePriceCurrency == "" {
		return &ValidationError{Field: "sale_price_currency", Reason: "amount requires a currency code"}
	}
	if p.OriginalPrice.Valid {
		if p.OriginalPrice.Decimal.IsNegative() {
			return &ValidationError{Field: "original_price", Reason: "price must not be negative"}
		}
		if p.OriginalPriceCurrency == "" {
			return &ValidationError{Field: "original_price_currency", Reason: "amount requires a currency code"}
		}
	}
	if p.LatestVolume < 0 {
		return &ValidationError{Field: "lastest_volume", Reason: "volume must not be negative"}
	}
	if p.RatingWeighted.IsNegative() || p.RatingWeighted.GreaterThan(maxRating) {
		return &ValidationError{Field: "rating_weighted", Reason: "rating must be between 0 and 5"}
	}
	return nil
}

func validateCategory(c *model.Category) error {
	if c == nil || strings.TrimSpace(c.CategoryID) == "" {
		return &ValidationError{Field: "category_id", Reason: "category identifier is required"}
	}
	if strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Field: "name", Reason: "name is required"}
	}
	if c.Level < 1 {
		return &ValidationError{Field: "level", Reason: "level must be a positive depth, root is 1"}
	}
	return nil
}
