package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item fetched from the upstream affiliate API. The
// upstream product_id is the natural key: every other table references it,
// not the surrogate ID.
type Product struct {
	ID                    uint                `json:"id" gorm:"primarykey"`
	ProductID             string              `json:"product_id" gorm:"column:product_id;type:varchar(255);not null;uniqueIndex:idx_product_id"`
	Title                 string              `json:"product_title" gorm:"column:product_title;type:text;not null"`
	MainImageURL          string              `json:"product_main_image_url" gorm:"column:product_main_image_url;type:text"`
	VideoURL              string              `json:"product_video_url" gorm:"column:product_video_url;type:text"`
	SalePrice             decimal.Decimal     `json:"sale_price" gorm:"column:sale_price;type:decimal(10,2)"`
	SalePriceCurrency     string              `json:"sale_price_currency" gorm:"column:sale_price_currency;type:varchar(10);default:'USD'"`
	OriginalPrice         decimal.NullDecimal `json:"original_price" gorm:"column:original_price;type:decimal(10,2)"`
	OriginalPriceCurrency string              `json:"original_price_currency" gorm:"column:original_price_currency;type:varchar(10)"`
	// Column name keeps the historical spelling for data compatibility.
	LatestVolume         int             `json:"lastest_volume" gorm:"column:lastest_volume;index:idx_volume"`
	RatingWeighted       decimal.Decimal `json:"rating_weighted" gorm:"column:rating_weighted;type:decimal(3,2);index:idx_rating"`
	FirstLevelCategoryID string          `json:"first_level_category_id" gorm:"column:first_level_category_id;type:varchar(50);index:idx_category"`
	PromotionLink        string          `json:"promotion_link" gorm:"column:promotion_link;type:text"`
	FetchedAt            time.Time       `json:"fetched_at" gorm:"column:fetched_at;autoCreateTime"`
	SavedAt              time.Time       `json:"saved_at" gorm:"column:saved_at;index:idx_saved_at"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// TableName keeps the table name of the original backend.
func (Product) TableName() string {
	return "aliexpress_products"
}
