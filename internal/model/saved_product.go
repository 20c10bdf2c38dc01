package model

import "time"

// SavedProduct is a visitor's bookmark of a product, scoped by an opaque
// session identifier. A (product, session) pair exists at most once.
type SavedProduct struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	ProductID string    `json:"product_id" gorm:"column:product_id;type:varchar(255);not null;uniqueIndex:idx_saved_product_session"`
	SessionID string    `json:"session_id" gorm:"column:session_id;type:varchar(128);not null;uniqueIndex:idx_saved_product_session"`
	Note      string    `json:"note" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_saved_created_at"`

	Product *Product `json:"product,omitempty" gorm:"belongsTo;foreignKey:ProductID;references:ProductID;constraint:OnDelete:CASCADE"`
}

func (SavedProduct) TableName() string {
	return "saved_products"
}
