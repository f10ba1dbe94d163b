package marketplace

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the read surface the query engine needs. Everything is
// read-only: the marketplace never mutates catalog data.
type Repository interface {
	// Search returns one page of listings matching the filters plus the
	// total size of the filtered set before pagination.
	Search(ctx context.Context, f Filters) ([]*Listing, int64, error)

	// ListVisibleByIDs returns the subset of the given products that still
	// pass the inclusion rule, keyed by id. Order of the input is the
	// caller's concern.
	ListVisibleByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Listing, error)
}
