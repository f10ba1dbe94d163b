package marketplace

// promotedSlotInterval places a promoted item at every 5th feed position
// (indices 4, 9, 14, ...).
const promotedSlotInterval = 5

// Interleave blends ranked promoted items into the organic feed at fixed
// density. Pure function, no I/O.
//
// Any organic item whose product also appears in promoted is dropped first —
// a promoted product is never shown twice. Then output positions are walked
// from 0: a position is a promoted slot when (pos+1) is a multiple of the
// interval and promoted items remain; every other slot takes the next
// organic item. When organic runs out the remaining promoted items backfill
// the tail; when promoted runs out the remaining organic items keep their
// relative order. Both input orders are preserved — promoted arrives already
// ranked by tier and recency and is not re-sorted here.
func Interleave(organic []*FeedItem, promoted []*FeedItem) []*FeedItem {
	promotedProducts := make(map[string]struct{}, len(promoted))
	for _, p := range promoted {
		if p.Listing != nil {
			promotedProducts[p.Listing.ID.String()] = struct{}{}
		}
	}

	deduped := make([]*FeedItem, 0, len(organic))
	for _, o := range organic {
		if o.Listing != nil {
			if _, dup := promotedProducts[o.Listing.ID.String()]; dup {
				continue
			}
		}
		deduped = append(deduped, o)
	}

	merged := make([]*FeedItem, 0, len(deduped)+len(promoted))
	oi, pi := 0, 0
	for oi < len(deduped) || pi < len(promoted) {
		pos := len(merged)
		promotedSlot := (pos+1)%promotedSlotInterval == 0 && pi < len(promoted)
		if promotedSlot || oi >= len(deduped) {
			if pi < len(promoted) {
				merged = append(merged, promoted[pi])
				pi++
				continue
			}
		}
		merged = append(merged, deduped[oi])
		oi++
	}
	return merged
}
