package database

import (
	"fmt"

	"affiliate-service/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// starterCategories is the fixed bootstrap list of top-level categories.
// Identifiers match the upstream affiliate API's first-level category ids.
var starterCategories = []model.Category{
	{CategoryID: "100001", Name: "Electronics", Level: 1},
	{CategoryID: "100002", Name: "Fashion", Level: 1},
	{CategoryID: "100003", Name: "Home & Garden", Level: 1},
	{CategoryID: "100004", Name: "Sports & Outdoor", Level: 1},
	{CategoryID: "100005", Name: "Beauty & Health", Level: 1},
	{CategoryID: "100006", Name: "Automotive", Level: 1},
	{CategoryID: "100007", Name: "Toys & Hobbies", Level: 1},
	{CategoryID: "100008", Name: "Jewelry & Accessories", Level: 1},
	{CategoryID: "100009", Name: "Shoes & Bags", Level: 1},
	{CategoryID: "100010", Name: "Computer & Office", Level: 1},
}

// SeedCategories inserts the starter categories if they are absent. Existing
// rows are left untouched, so the seed is safe to run on every startup.
func SeedCategories(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, category := range starterCategories {
			c := category
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "category_id"}},
				DoNothing: true,
			}).Create(&c).Error; err != nil {
				return fmt.Errorf("failed to seed category %s: %w", c.CategoryID, err)
			}
		}
		return nil
	})
}
