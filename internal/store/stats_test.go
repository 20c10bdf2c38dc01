package store

import (
	"context"
	"testing"

	"affiliate-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStatsEmptyStore(t *testing.T) {
	s := newTestStore(t)

	stats, err := s.GetStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalProducts)
	// the category seed runs at migration time in production paths,
	// not in these fixtures, so an empty store really is empty
	assert.Zero(t, stats.TotalCategories)
	assert.Zero(t, stats.TotalClicks)
	assert.Empty(t, stats.TopCategories)
}

func TestGetStatsAggregates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedProduct(t, s, "ST1", "Speaker", 100, "100001")
	seedProduct(t, s, "ST2", "Charger", 200, "100001")
	seedProduct(t, s, "ST3", "Jacket", 300, "100002")

	_, err := s.SaveProduct(ctx, "ST1", "session-a", "")
	require.NoError(t, err)
	_, err = s.SaveProduct(ctx, "ST1", "session-b", "")
	require.NoError(t, err)

	_, err = s.RecordAffiliateLink(ctx, "ST1", "https://shop.example/st1", "https://aff.example/st1")
	require.NoError(t, err)
	_, err = s.RecordAffiliateLink(ctx, "ST2", "https://shop.example/st2", "https://aff.example/st2")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, s.IncrementLinkMetric(ctx, "ST1", MetricClick))
	}
	require.NoError(t, s.IncrementLinkMetric(ctx, "ST2", MetricClick))
	require.NoError(t, s.IncrementLinkMetric(ctx, "ST2", MetricConversion))

	s.LogSearch(ctx, "speaker", 1, "10.0.0.1")
	s.LogSearch(ctx, "jacket", 1, "10.0.0.2")

	stats, err := s.GetStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalProducts)
	assert.Equal(t, int64(2), stats.TotalSaved)
	assert.Equal(t, int64(2), stats.TotalSearches)
	assert.Equal(t, int64(4), stats.TotalClicks)
	assert.Equal(t, int64(1), stats.TotalConversions)

	require.Len(t, stats.TopCategories, 2)
	assert.Equal(t, "100001", stats.TopCategories[0].CategoryID)
	assert.Equal(t, int64(2), stats.TopCategories[0].ProductCount)
	assert.Equal(t, "100002", stats.TopCategories[1].CategoryID)
	assert.Equal(t, int64(1), stats.TopCategories[1].ProductCount)
}

func TestGetStatsTopCategoryNames(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.UpsertCategory(ctx, &model.Category{CategoryID: "100001", Name: "Consumer Electronics", Level: 1})
	require.NoError(t, err)
	seedProduct(t, s, "ST4", "Drone", 50, "100001")
	seedProduct(t, s, "ST5", "Unknown Category Item", 50, "999999")

	stats, err := s.GetStats(ctx)
	require.NoError(t, err)

	require.Len(t, stats.TopCategories, 2)
	byID := map[string]CategoryCount{}
	for _, c := range stats.TopCategories {
		byID[c.CategoryID] = c
	}
	assert.Equal(t, "Consumer Electronics", byID["100001"].Name)
	// a product category without a catalog row still counts, with no name
	assert.Equal(t, "", byID["999999"].Name)
}
