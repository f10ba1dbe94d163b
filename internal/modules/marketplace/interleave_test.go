package marketplace

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func organicItems(n int) []*FeedItem {
	items := make([]*FeedItem, n)
	for i := range items {
		items[i] = &FeedItem{Listing: &Listing{ID: uuid.New(), Name: fmt.Sprintf("organic-%d", i+1)}}
	}
	return items
}

func promotedItems(n int) []*FeedItem {
	items := make([]*FeedItem, n)
	for i := range items {
		id := uuid.New()
		promoID := uuid.New()
		items[i] = &FeedItem{
			Listing:     &Listing{ID: id, Name: fmt.Sprintf("promoted-%d", i+1)},
			Promoted:    true,
			PromotionID: &promoID,
		}
	}
	return items
}

func TestInterleave_EveryFifthSlot(t *testing.T) {
	organic := organicItems(20)
	promoted := promotedItems(5)

	merged := Interleave(organic, promoted)

	require.Len(t, merged, 25)
	for i, item := range merged {
		if (i+1)%5 == 0 {
			assert.True(t, item.Promoted, "index %d should be a promoted slot", i)
		} else {
			assert.False(t, item.Promoted, "index %d should be organic", i)
		}
	}

	// Promoted internal order is preserved.
	var promotedOrder []string
	for _, item := range merged {
		if item.Promoted {
			promotedOrder = append(promotedOrder, item.Listing.Name)
		}
	}
	assert.Equal(t, []string{"promoted-1", "promoted-2", "promoted-3", "promoted-4", "promoted-5"}, promotedOrder)

	// No id appears twice.
	seen := map[uuid.UUID]bool{}
	for _, item := range merged {
		assert.False(t, seen[item.Listing.ID], "duplicate id in feed")
		seen[item.Listing.ID] = true
	}
}

func TestInterleave_OrganicOrderPreserved(t *testing.T) {
	organic := organicItems(12)
	promoted := promotedItems(2)

	merged := Interleave(organic, promoted)

	var got []string
	for _, item := range merged {
		if !item.Promoted {
			got = append(got, item.Listing.Name)
		}
	}
	var want []string
	for _, o := range organic {
		want = append(want, o.Listing.Name)
	}
	assert.Equal(t, want, got)
}

func TestInterleave_EmptyOrganic(t *testing.T) {
	promoted := promotedItems(2)
	merged := Interleave(nil, promoted)

	require.Len(t, merged, 2)
	assert.Equal(t, promoted[0], merged[0])
	assert.Equal(t, promoted[1], merged[1])
}

func TestInterleave_EmptyPromoted(t *testing.T) {
	organic := organicItems(2)
	merged := Interleave(organic, nil)

	require.Len(t, merged, 2)
	assert.Equal(t, organic[0], merged[0])
	assert.Equal(t, organic[1], merged[1])
}

func TestInterleave_PromotedBackfillsExhaustedOrganic(t *testing.T) {
	organic := organicItems(3)
	promoted := promotedItems(4)

	merged := Interleave(organic, promoted)

	require.Len(t, merged, 7)
	// Positions 0-2 organic, 3 onwards backfilled promoted except the
	// regular slot at index 4.
	assert.False(t, merged[0].Promoted)
	assert.False(t, merged[1].Promoted)
	assert.False(t, merged[2].Promoted)
	for i := 3; i < 7; i++ {
		assert.True(t, merged[i].Promoted, "index %d should be promoted backfill", i)
	}
}

func TestInterleave_DropsOrganicDuplicatesOfPromoted(t *testing.T) {
	organic := organicItems(6)
	promoted := promotedItems(1)
	// The promoted product also ranks organically.
	organic[2] = &FeedItem{Listing: &Listing{ID: promoted[0].Listing.ID, Name: "dup"}}

	merged := Interleave(organic, promoted)

	require.Len(t, merged, 6)
	count := 0
	for _, item := range merged {
		if item.Listing.ID == promoted[0].Listing.ID {
			count++
			assert.True(t, item.Promoted)
		}
	}
	assert.Equal(t, 1, count, "promoted product must appear exactly once")
}
