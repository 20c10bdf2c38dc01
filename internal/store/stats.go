package store

import (
	"context"

	"affiliate-service/internal/model"
)

const topCategoryLimit = 5

// CategoryCount is one entry of the top-categories ranking.
type CategoryCount struct {
	CategoryID   string `json:"category_id"`
	Name         string `json:"name"`
	ProductCount int64  `json:"product_count"`
}

// Stats are the live aggregate counters of the catalog. Nothing here is
// materialized; every call recomputes from current storage state.
type Stats struct {
	TotalProducts    int64           `json:"total_products"`
	TotalCategories  int64           `json:"total_categories"`
	TotalSaved       int64           `json:"total_saved"`
	TotalSearches    int64           `json:"total_searches"`
	TotalClicks      int64           `json:"total_clicks"`
	TotalConversions int64           `json:"total_conversions"`
	TopCategories    []CategoryCount `json:"top_categories"`
}

// GetStats computes the aggregate statistics from current storage state.
func (s *Store) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	err := s.withRetry(ctx, "get_stats", func() error {
		stats = Stats{}
		db := s.db.WithContext(ctx)

		if err := db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
			return classify(err)
		}
		if err := db.Model(&model.Category{}).Count(&stats.TotalCategories).Error; err != nil {
			return classify(err)
		}
		if err := db.Model(&model.SavedProduct{}).Count(&stats.TotalSaved).Error; err != nil {
			return classify(err)
		}
		if err := db.Model(&model.SearchHistoryEntry{}).Count(&stats.TotalSearches).Error; err != nil {
			return classify(err)
		}

		var totals struct {
			Clicks      int64
			Conversions int64
		}
		if err := db.Model(&model.AffiliateLink{}).
			Select("COALESCE(SUM(clicks), 0) AS clicks, COALESCE(SUM(conversions), 0) AS conversions").
			Scan(&totals).Error; err != nil {
			return classify(err)
		}
		stats.TotalClicks = totals.Clicks
		stats.TotalConversions = totals.Conversions

		if err := db.Model(&model.Product{}).
			Select("aliexpress_products.first_level_category_id AS category_id, COALESCE(categories.name, '') AS name, COUNT(*) AS product_count").
			Joins("LEFT JOIN categories ON categories.category_id = aliexpress_products.first_level_category_id").
			Where("aliexpress_products.first_level_category_id <> ''").
			Group("aliexpress_products.first_level_category_id, categories.name").
			Order("product_count DESC, aliexpress_products.first_level_category_id ASC").
			Limit(topCategoryLimit).
			Scan(&stats.TopCategories).Error; err != nil {
			return classify(err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
