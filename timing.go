package blast

import (
	"fmt"
	"slices"
)

// ChainDepth returns the number of timing hops from the given hole
// back to the hole that initiates its chain (an orphan, timing from
// itself). Depth 0 means the hole is its own initiator.
//
// The traversal assumes the deletion repoint rule has held: every
// FromHoleID resolves to a live hole. A reference that does not
// resolve is reported as ErrHoleNotFound rather than skipped, since it
// means the working set was mutated outside the Site API.
func (s *Site) ChainDepth(entityName, id string) (int, error) {
	key := HoleRef{entityName, id}.Key()
	depth := 0
	seen := map[string]bool{}
	for {
		h, ok := s.holes[key]
		if !ok {
			return 0, fmt.Errorf("chain depth %s: %w", key, ErrHoleNotFound)
		}
		if h.FromHoleID == key {
			return depth, nil
		}
		if seen[key] {
			return 0, fmt.Errorf("chain depth %s: %w", key, ErrTimingCycle)
		}
		seen[key] = true
		key = h.FromHoleID
		depth++
	}
}

// FirstMovementOrder returns every hole key ordered by chain depth,
// initiators first, ties broken by insertion order. This is the order
// holes fire in when each hole's delay is uniform; callers with real
// per-hole delays feed the depths into their own timing model.
func (s *Site) FirstMovementOrder() ([]HoleRef, error) {
	type entry struct {
		ref   HoleRef
		depth int
	}
	entries := make([]entry, 0, len(s.holeOrder))
	for _, key := range s.holeOrder {
		h := s.holes[key]
		d, err := s.ChainDepth(h.EntityName, h.ID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{ref: h.Ref(), depth: d})
	}
	// Stable sort: ties keep insertion order.
	slices.SortStableFunc(entries, func(a, b entry) int {
		return a.depth - b.depth
	})
	out := make([]HoleRef, len(entries))
	for i, e := range entries {
		out[i] = e.ref
	}
	return out, nil
}
