// Package store is the persistence layer: durable storage for products,
// categories, affiliate links, saved products and search history, with
// uniqueness and referential invariants enforced at the storage boundary.
package store

import (
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Store wraps the pooled database handle. All methods are safe for
// concurrent use; coordination is delegated to the database, each operation
// runs as a single statement or a single transaction.
type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

// New creates a Store on top of an initialized database handle.
func New(db *gorm.DB, log *zap.Logger) *Store {
	return &Store{db: db, log: log}
}

// Page is a normalized pagination request.
type Page struct {
	Page     int
	PageSize int
}

// Normalize clamps pagination to sane bounds: page >= 1, 1 <= size <= 100.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
	return p
}

func (p Page) offset() int {
	return (p.Page - 1) * p.PageSize
}
