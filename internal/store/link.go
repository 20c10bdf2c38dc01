package store

import (
	"context"
	"fmt"
	"strings"

	"affiliate-service/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LinkMetric selects the affiliate link counter to increment.
type LinkMetric string

const (
	MetricClick      LinkMetric = "click"
	MetricConversion LinkMetric = "conversion"
)

// RecordAffiliateLink creates or updates the tracked link row for a product.
// Click and conversion counters survive URL updates. Fails with ErrNotFound
// when the product does not exist.
func (s *Store) RecordAffiliateLink(ctx context.Context, productID, originalURL, affiliateURL string) (*model.AffiliateLink, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, &ValidationError{Field: "product_id", Reason: "external product identifier is required"}
	}
	if strings.TrimSpace(affiliateURL) == "" {
		return nil, &ValidationError{Field: "affiliate_url", Reason: "affiliate URL is required"}
	}
	if err := s.productExists(ctx, productID); err != nil {
		return nil, err
	}

	link := model.AffiliateLink{
		ProductID:    productID,
		OriginalURL:  originalURL,
		AffiliateURL: affiliateURL,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"original_url", "affiliate_url", "updated_at"}),
	}).Create(&link).Error
	if err != nil {
		return nil, classifyAttach(productID, err)
	}

	var stored model.AffiliateLink
	if err := s.db.WithContext(ctx).Where("product_id = ?", productID).First(&stored).Error; err != nil {
		return nil, classify(err)
	}
	return &stored, nil
}

// IncrementLinkMetric bumps a click or conversion counter by one. The
// increment runs as a single atomic statement, concurrent increments never
// lose updates.
func (s *Store) IncrementLinkMetric(ctx context.Context, productID string, metric LinkMetric) error {
	var column string
	switch metric {
	case MetricClick:
		column = "clicks"
	case MetricConversion:
		column = "conversions"
	default:
		return &ValidationError{Field: "metric", Reason: fmt.Sprintf("unknown link metric %q", metric)}
	}

	res := s.db.WithContext(ctx).Model(&model.AffiliateLink{}).
		Where("product_id = ?", productID).
		Updates(map[string]interface{}{column: gorm.Expr(column + " + 1")})
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("affiliate link for product %q: %w", productID, ErrNotFound)
	}
	return nil
}

// GetAffiliateLink returns the tracked link row for a product.
func (s *Store) GetAffiliateLink(ctx context.Context, productID string) (*model.AffiliateLink, error) {
	var link model.AffiliateLink
	err := s.withRetry(ctx, "get_affiliate_link", func() error {
		return classify(s.db.WithContext(ctx).Where("product_id = ?", productID).First(&link).Error)
	})
	if err != nil {
		return nil, fmt.Errorf("affiliate link for product %q: %w", productID, err)
	}
	return &link, nil
}
