package store

import (
	"context"
	"fmt"

	"affiliate-service/internal/model"

	"gorm.io/gorm/clause"
)

// ListCategories returns all categories ordered by depth then identifier.
func (s *Store) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := s.withRetry(ctx, "list_categories", func() error {
		categories = categories[:0]
		return classify(s.db.WithContext(ctx).
			Order("level ASC, category_id ASC").
			Find(&categories).Error)
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategory returns the category with the given identifier.
func (s *Store) GetCategory(ctx context.Context, categoryID string) (*model.Category, error) {
	var category model.Category
	err := s.withRetry(ctx, "get_category", func() error {
		return classify(s.db.WithContext(ctx).Where("category_id = ?", categoryID).First(&category).Error)
	})
	if err != nil {
		return nil, fmt.Errorf("category %q: %w", categoryID, err)
	}
	return &category, nil
}

// UpsertCategory inserts a category or updates the existing one matched by
// its identifier. Administrative/ingestion operation; the parent reference
// is advisory and may point at a category that does not exist yet.
func (s *Store) UpsertCategory(ctx context.Context, c *model.Category) (*model.Category, error) {
	if err := validateCategory(c); err != nil {
		return nil, err
	}

	row := *c
	row.ID = 0
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "parent_id", "level", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return nil, classify(err)
	}

	return s.GetCategory(ctx, c.CategoryID)
}
