package store

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"affiliate-service/internal/model"
	"affiliate-service/pkg/database"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestStore opens a private in-memory database per test. Shared cache
// keeps the database alive across pooled connections; a single connection
// avoids sqlite write contention.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(10000)", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return New(db, zap.NewNop())
}

func seedProduct(t *testing.T, s *Store, productID, title string, volume int, categoryID string) *model.Product {
	t.Helper()

	stored, err := s.UpsertProduct(context.Background(), &model.Product{
		ProductID:            productID,
		Title:                title,
		MainImageURL:         "https://img.example/" + productID + ".jpg",
		SalePrice:            decimal.NewFromFloat(19.99),
		SalePriceCurrency:    "USD",
		LatestVolume:         volume,
		RatingWeighted:       decimal.NewFromFloat(4.5),
		FirstLevelCategoryID: categoryID,
		PromotionLink:        "https://aff.example/" + productID,
	})
	require.NoError(t, err)
	return stored
}
