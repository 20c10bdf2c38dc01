package model

import "time"

// SearchHistoryEntry is one logged search request. Append-only; rows are
// never updated after creation.
type SearchHistoryEntry struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	Query        string    `json:"query" gorm:"type:varchar(255);not null;index:idx_query"`
	ResultsCount int       `json:"results_count" gorm:"column:results_count;default:0"`
	UserIP       string    `json:"user_ip" gorm:"column:user_ip;type:varchar(45)"`
	CreatedAt    time.Time `json:"created_at" gorm:"index:idx_created_at"`
}

func (SearchHistoryEntry) TableName() string {
	return "search_history"
}
