package store

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"affiliate-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogSearchAppends(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.LogSearch(ctx, "bluetooth speaker", 12, "192.168.1.10")
	s.LogSearch(ctx, "bluetooth speaker", 12, "192.168.1.10")
	s.LogSearch(ctx, "usb hub", 0, "192.168.1.11")

	var count int64
	require.NoError(t, s.db.Model(&model.SearchHistoryEntry{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)

	entries, err := s.RecentSearches(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "usb hub", entries[0].Query)
	assert.Equal(t, 0, entries[0].ResultsCount)
	assert.Equal(t, "192.168.1.11", entries[0].UserIP)
}

func TestLogSearchTruncatesLongQueries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.LogSearch(ctx, strings.Repeat("x", 600), 0, "")

	entries, err := s.RecentSearches(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Len(t, entries[0].Query, maxQueryLength)
}

func TestLogSearchTruncatesOnRuneBoundary(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// two-byte runes; the byte limit falls in the middle of one
	s.LogSearch(ctx, strings.Repeat("é", 200), 0, "")

	entries, err := s.RecentSearches(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, utf8.ValidString(entries[0].Query))
	assert.LessOrEqual(t, len(entries[0].Query), maxQueryLength)
	assert.Greater(t, len(entries[0].Query), 0)
}

func TestRecentSearchesLimitFallback(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		s.LogSearch(ctx, "q", i, "")
	}

	entries, err := s.RecentSearches(ctx, -5)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}
