package store

import (
	"context"
	"strings"

	"affiliate-service/internal/model"

	"gorm.io/gorm/clause"
)

// SaveProduct bookmarks a product for a session. Re-saving the same
// (product, session) pair replaces the note instead of erroring or
// duplicating. Fails with ErrNotFound when the product does not exist.
func (s *Store) SaveProduct(ctx context.Context, productID, sessionID, note string) (*model.SavedProduct, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, &ValidationError{Field: "product_id", Reason: "external product identifier is required"}
	}
	if strings.TrimSpace(sessionID) == "" {
		return nil, &ValidationError{Field: "session_id", Reason: "session identifier is required"}
	}
	if err := s.productExists(ctx, productID); err != nil {
		return nil, err
	}

	saved := model.SavedProduct{
		ProductID: productID,
		SessionID: sessionID,
		Note:      note,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}, {Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"note"}),
	}).Create(&saved).Error
	if err != nil {
		return nil, classifyAttach(productID, err)
	}

	var stored model.SavedProduct
	err = s.db.WithContext(ctx).
		Where("product_id = ? AND session_id = ?", productID, sessionID).
		First(&stored).Error
	if err != nil {
		return nil, classify(err)
	}
	return &stored, nil
}

// UnsaveProduct removes a bookmark. A missing row is a no-op, not an error.
func (s *Store) UnsaveProduct(ctx context.Context, productID, sessionID string) error {
	res := s.db.WithContext(ctx).
		Where("product_id = ? AND session_id = ?", productID, sessionID).
		Delete(&model.SavedProduct{})
	return classify(res.Error)
}

// ListSavedProducts returns one page of a session's bookmarks, newest first,
// with the referenced product attached.
func (s *Store) ListSavedProducts(ctx context.Context, sessionID string, page Page) ([]model.SavedProduct, bool, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, false, &ValidationError{Field: "session_id", Reason: "session identifier is required"}
	}
	page = page.Normalize()

	var saved []model.SavedProduct
	err := s.withRetry(ctx, "list_saved_products", func() error {
		saved = saved[:0]
		return classify(s.db.WithContext(ctx).
			Preload("Product").
			Where("session_id = ?", sessionID).
			Order("created_at DESC, id DESC").
			Limit(page.PageSize).
			Offset(page.offset()).
			Find(&saved).Error)
	})
	if err != nil {
		return nil, false, err
	}

	return saved, len(saved) == page.PageSize, nil
}
