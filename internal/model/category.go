package model

import "time"

// Category is a classification node. The parent reference is advisory: the
// original schema never enforced it and category trees arrive from the
// upstream API out of order, so no foreign key is declared here.
type Category struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	CategoryID string    `json:"category_id" gorm:"column:category_id;type:varchar(50);not null;uniqueIndex:idx_category_id"`
	Name       string    `json:"name" gorm:"type:varchar(255);not null"`
	ParentID   *string   `json:"parent_id" gorm:"column:parent_id;type:varchar(50);index:idx_category_parent"`
	Level      int       `json:"level" gorm:"not null;default:1"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}
