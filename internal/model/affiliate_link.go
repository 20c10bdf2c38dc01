package model

import "time"

// AffiliateLink is the tracked outbound affiliate URL for a product. One row
// per product; click and conversion counters only ever go up.
type AffiliateLink struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	ProductID    string    `json:"product_id" gorm:"column:product_id;type:varchar(255);not null;uniqueIndex:idx_link_product_id"`
	OriginalURL  string    `json:"original_url" gorm:"column:original_url;type:text;not null"`
	AffiliateURL string    `json:"affiliate_url" gorm:"column:affiliate_url;type:text;not null"`
	Clicks       int64     `json:"clicks" gorm:"default:0;index:idx_clicks"`
	Conversions  int64     `json:"conversions" gorm:"default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Product *Product `json:"-" gorm:"belongsTo;foreignKey:ProductID;references:ProductID;constraint:OnDelete:CASCADE"`
}

func (AffiliateLink) TableName() string {
	return "affiliate_links"
}
