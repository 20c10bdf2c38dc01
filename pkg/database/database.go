package database

import (
	"fmt"

	"affiliate-service/internal/model"
	"affiliate-service/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New opens the PostgreSQL connection with a bounded pool, runs migrations
// and seeds the category bootstrap set. The returned handle is the only
// database state in the process; callers pass it where it is needed.
func New(cfg *config.Config) (*gorm.DB, error) {
	pgConfig := postgres.Config{
		DSN:                  cfg.DB.GetDSN(),
		PreferSimpleProtocol: true, // Disables implicit prepared statement usage
	}

	db, err := gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger:         logger.Default.LogMode(cfg.DB.LogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// Bounded connection pool; acquisition is the only wait point.
	sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	if err := SeedCategories(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the five tables and their constraints. It is
// dialector-agnostic so tests can run it against an in-memory database.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Product{},
		&model.Category{},
		&model.AffiliateLink{},
		&model.SavedProduct{},
		&model.SearchHistoryEntry{},
	); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Full-text search over product titles; PostgreSQL only. Other dialects
	// fall back to pattern matching in the store.
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(
			`CREATE INDEX IF NOT EXISTS idx_title_fts ON aliexpress_products USING GIN (to_tsvector('simple', product_title))`,
		).Error; err != nil {
			return fmt.Errorf("failed to create full-text index: %w", err)
		}
	}

	return nil
}
