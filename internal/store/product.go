package store

import (
	"context"
	"fmt"
	"time"

	"affiliate-service/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// productUpsertColumns are the mutable fields refreshed on conflict.
// fetched_at and created_at are set once at creation and never change.
var productUpsertColumns = []string{
	"product_title",
	"product_main_image_url",
	"product_video_url",
	"sale_price",
	"sale_price_currency",
	"original_price",
	"original_price_currency",
	"lastest_volume",
	"rating_weighted",
	"first_level_category_id",
	"promotion_link",
	"saved_at",
	"updated_at",
}

// UpsertProduct inserts a product or updates all mutable fields of the
// existing row matched by the external product identifier, and returns the
// stored record. Safe to retry: the statement is idempotent.
func (s *Store) UpsertProduct(ctx context.Context, p *model.Product) (*model.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	record := *p
	record.ID = 0
	record.SavedAt = time.Now().UTC()

	err := s.withRetry(ctx, "upsert_product", func() error {
		row := record
		return classify(s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns(productUpsertColumns),
		}).Create(&row).Error)
	})
	if err != nil {
		return nil, err
	}

	return s.GetProduct(ctx, record.ProductID)
}

// GetProduct returns the product with the given external identifier.
func (s *Store) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	var p model.Product
	err := s.withRetry(ctx, "get_product", func() error {
		return classify(s.db.WithContext(ctx).Where("product_id = ?", productID).First(&p).Error)
	})
	if err != nil {
		return nil, fmt.Errorf("product %q: %w", productID, err)
	}
	return &p, nil
}

// SearchFilter narrows a product search.
type SearchFilter struct {
	CategoryID string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	MinRating  *decimal.Decimal
	MinVolume  *int
	HasVideo   bool
}

// SearchProducts returns one page of products matching the query text and
// filters, plus a has-more flag. On PostgreSQL the query text is matched and
// ranked with full-text search over the title; elsewhere it falls back to
// pattern matching ordered by sales volume. Ordering always tie-breaks on
// the surrogate id so pagination is stable across equally ranked rows.
func (s *Store) SearchProducts(ctx context.Context, query string, filter SearchFilter, page Page) ([]model.Product, bool, error) {
	page = page.Normalize()

	var products []model.Product
	err := s.withRetry(ctx, "search_products", func() error {
		tx := s.db.WithContext(ctx).Model(&model.Product{})

		if query != "" {
			if s.db.Dialector.Name() == "postgres" {
				tx = tx.
					Select("*, ts_rank(to_tsvector('simple', product_title), plainto_tsquery('simple', ?)) AS title_rank", query).
					Where("to_tsvector('simple', product_title) @@ plainto_tsquery('simple', ?)", query).
					Order("title_rank DESC, id ASC")
			} else {
				tx = tx.
					Where("product_title LIKE ?", "%"+query+"%").
					Order("lastest_volume DESC, id ASC")
			}
		} else {
			tx = tx.Order("lastest_volume DESC, id ASC")
		}

		if filter.CategoryID != "" {
			tx = tx.Where("first_level_category_id = ?", filter.CategoryID)
		}
		if filter.MinPrice != nil {
			tx = tx.Where("sale_price >= ?", *filter.MinPrice)
		}
		if filter.MaxPrice != nil {
			tx = tx.Where("sale_price <= ?", *filter.MaxPrice)
		}
		if filter.MinRating != nil {
			tx = tx.Where("rating_weighted >= ?", *filter.MinRating)
		}
		if filter.MinVolume != nil {
			tx = tx.Where("lastest_volume >= ?", *filter.MinVolume)
		}
		if filter.HasVideo {
			tx = tx.Where("product_video_url IS NOT NULL AND product_video_url <> ''")
		}

		products = products[:0]
		return classify(tx.Limit(page.PageSize).Offset(page.offset()).Find(&products).Error)
	})
	if err != nil {
		return nil, false, err
	}

	hasMore := len(products) == page.PageSize
	return products, hasMore, nil
}

// DeleteProduct removes the product and every affiliate link and saved
// product referencing it. The schema declares ON DELETE CASCADE; the
// dependents are still deleted inside the same transaction so the contract
// holds even against a store with constraint enforcement switched off.
func (s *Store) DeleteProduct(ctx context.Context, productID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&model.AffiliateLink{}).Error; err != nil {
			return classify(err)
		}
		if err := tx.Where("product_id = ?", productID).Delete(&model.SavedProduct{}).Error; err != nil {
			return classify(err)
		}

		res := tx.Where("product_id = ?", productID).Delete(&model.Product{})
		if res.Error != nil {
			return classify(res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("product %q: %w", productID, ErrNotFound)
		}
		return nil
	})
}

// productExists resolves the referential pre-check for operations that
// attach rows to a product, so callers get ErrNotFound instead of a raw
// constraint violation.
func (s *Store) productExists(ctx context.Context, productID string) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Product{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return classify(err)
	}
	if count == 0 {
		return fmt.Errorf("product %q: %w", productID, ErrNotFound)
	}
	return nil
}
