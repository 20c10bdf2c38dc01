package store

import (
	"context"
	"unicode/utf8"

	"affiliate-service/internal/model"

	"go.uber.org/zap"
)

const maxQueryLength = 255

// LogSearch appends one search history entry. A failed write is logged and
// swallowed: search logging must never fail the request it was attached to.
func (s *Store) LogSearch(ctx context.Context, query string, resultsCount int, clientAddr string) {
	if len(query) > maxQueryLength {
		// cut on a rune boundary so the stored query stays valid UTF-8
		cut := maxQueryLength
		for cut > 0 && !utf8.RuneStart(query[cut]) {
			cut--
		}
		query = query[:cut]
	}

	entry := model.SearchHistoryEntry{
		Query:        query,
		ResultsCount: resultsCount,
		UserIP:       clientAddr,
	}
	err := s.withRetry(ctx, "log_search", func() error {
		row := entry
		return classify(s.db.WithContext(ctx).Create(&row).Error)
	})
	if err != nil {
		s.log.Warn("Failed to record search history",
			zap.String("query", query),
			zap.Error(err))
	}
}

// RecentSearches returns the latest logged searches, newest first.
func (s *Store) RecentSearches(ctx context.Context, limit int) ([]model.SearchHistoryEntry, error) {
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}

	var entries []model.SearchHistoryEntry
	err := s.withRetry(ctx, "recent_searches", func() error {
		entries = entries[:0]
		return classify(s.db.WithContext(ctx).
			Order("created_at DESC, id DESC").
			Limit(limit).
			Find(&entries).Error)
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
