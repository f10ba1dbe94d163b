package engagement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRepository records writes and can be told to fail them, so the
// best-effort contract of the tracker can be verified.
type mockRepository struct {
	events      []*Event
	impressions map[uuid.UUID]int64
	clicks      map[uuid.UUID]int64

	appendErr    error
	incrementErr error
}

var _ Repository = (*mockRepository)(nil)

func newMockRepository() *mockRepository {
	return &mockRepository{
		impressions: make(map[uuid.UUID]int64),
		clicks:      make(map[uuid.UUID]int64),
	}
}

func (m *mockRepository) Append(_ context.Context, e *Event) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.events = append(m.events, e)
	return nil
}

func (m *mockRepository) TrendingCounts(_ context.Context, window time.Duration, limit int) ([]ProductCount, error) {
	tally := map[uuid.UUID]int64{}
	for _, e := range m.events {
		if e.ProductID == nil {
			continue
		}
		switch e.Type {
		case EventView, EventClick, EventMarketplaceClick:
			tally[*e.ProductID]++
		}
	}
	var counts []ProductCount
	for id, n := range tally {
		counts = append(counts, ProductCount{ProductID: id, Count: n})
	}
	if len(counts) > limit {
		counts = counts[:limit]
	}
	return counts, nil
}

func (m *mockRepository) IncrementImpressions(_ context.Context, ids []uuid.UUID) error {
	if m.incrementErr != nil {
		return m.incrementErr
	}
	for _, id := range ids {
		m.impressions[id]++
	}
	return nil
}

func (m *mockRepository) IncrementClicks(_ context.Context, id uuid.UUID) error {
	if m.incrementErr != nil {
		return m.incrementErr
	}
	m.clicks[id]++
	return nil
}

func TestTrackPromotedImpressions_Batch(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	svc.TrackPromotedImpressions(context.Background(), ids)

	for _, id := range ids {
		assert.Equal(t, int64(1), repo.impressions[id])
	}

	// A second pass increments again — relative, never read-modify-write.
	svc.TrackPromotedImpressions(context.Background(), ids[:1])
	assert.Equal(t, int64(2), repo.impressions[ids[0]])
}

func TestTrackPromotedImpressions_SwallowsFailure(t *testing.T) {
	repo := newMockRepository()
	repo.incrementErr = errors.New("connection reset")
	svc := NewService(repo)

	// Must not panic or surface the error in any way.
	svc.TrackPromotedImpressions(context.Background(), []uuid.UUID{uuid.New()})
}

func TestTrackPromotedClick_IncrementsAndLogsEvent(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	promoID, shopID, productID := uuid.New(), uuid.New(), uuid.New()
	svc.TrackPromotedClick(context.Background(), promoID, shopID, productID)

	assert.Equal(t, int64(1), repo.clicks[promoID])
	require.Len(t, repo.events, 1)
	assert.Equal(t, EventPromotedClick, repo.events[0].Type)
	assert.Equal(t, shopID, repo.events[0].ShopID)
	require.NotNil(t, repo.events[0].ProductID)
	assert.Equal(t, productID, *repo.events[0].ProductID)
}

func TestTrackPromotedClick_SwallowsBothFailures(t *testing.T) {
	repo := newMockRepository()
	repo.incrementErr = errors.New("down")
	repo.appendErr = errors.New("down")
	svc := NewService(repo)

	svc.TrackPromotedClick(context.Background(), uuid.New(), uuid.New(), uuid.New())
	assert.Empty(t, repo.events)
}

func TestRecordEvent(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	shopID := uuid.New()
	require.NoError(t, svc.RecordEvent(context.Background(), EventView, shopID, nil))
	require.Len(t, repo.events, 1)
	assert.Equal(t, EventView, repo.events[0].Type)
	assert.Nil(t, repo.events[0].ProductID)
}

func TestTrendingCounts_OnlyDiscoveryEvents(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	productID := uuid.New()
	shopID := uuid.New()
	require.NoError(t, svc.RecordEvent(context.Background(), EventView, shopID, &productID))
	require.NoError(t, svc.RecordEvent(context.Background(), EventMarketplaceClick, shopID, &productID))
	// Promoted impressions do not count toward trending.
	repo.events = append(repo.events, &Event{Type: EventPromotedImpression, ShopID: shopID, ProductID: &productID})

	counts, err := svc.TrendingCounts(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, int64(2), counts[0].Count)
}
