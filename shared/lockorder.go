// SPDX-License-Identifier: MIT
// Package shared: the single source of truth for multi-vector locking.
//
// Purpose:
//   - Acquire the locks of several Vectors in ascending id order and release
//     them in descending order, so two operations that touch overlapping
//     vectors always contend on the same first lock instead of cross-waiting.
//   - Collapse duplicate requests for the same Vector into one acquisition
//     (sync.RWMutex is not reentrant), keeping the strongest requested mode.
//
// Rule:
//   - No method in this package may hold two Vector locks unless it obtained
//     them through lockOrdered (or one of its thin wrappers below).

package shared

import (
	"cmp"
	"slices"
)

// lockMode selects shared (read) or exclusive (write) acquisition.
type lockMode uint8

const (
	readMode lockMode = iota
	writeMode
)

// lockReq asks for v's lock in the given mode.
type lockReq struct {
	v    *Vector
	mode lockMode
}

// lockOrdered acquires every requested lock in ascending Vector.id order and
// returns a function releasing them in the reverse order.
// Implementation:
//   - Stage 1: copy and sort requests by id (caller slices are never reordered).
//   - Stage 2: merge adjacent duplicates, upgrading to writeMode if any asked for it.
//   - Stage 3: lock ascending; the returned closure unlocks descending.
//
// Complexity: O(k log k) for k requests.
func lockOrdered(reqs ...lockReq) (unlock func()) {
	ordered := make([]lockReq, 0, len(reqs))
	for _, r := range reqs {
		if r.v != nil {
			ordered = append(ordered, r)
		}
	}
	slices.SortFunc(ordered, func(a, b lockReq) int { return cmp.Compare(a.v.id, b.v.id) })

	merged := ordered[:0]
	for _, r := range ordered {
		if n := len(merged); n > 0 && merged[n-1].v == r.v {
			if r.mode == writeMode {
				merged[n-1].mode = writeMode
			}
			continue
		}
		merged = append(merged, r)
	}

	for _, r := range merged {
		if r.mode == writeMode {
			r.v.mu.Lock()
		} else {
			r.v.mu.RLock()
		}
	}

	return func() {
		for i := len(merged) - 1; i >= 0; i-- {
			if merged[i].mode == writeMode {
				merged[i].v.mu.Unlock()
			} else {
				merged[i].v.mu.RUnlock()
			}
		}
	}
}

// lockPair is lockOrdered for exactly two vectors ("lock both in id order").
func lockPair(a *Vector, aMode lockMode, b *Vector, bMode lockMode) (unlock func()) {
	return lockOrdered(lockReq{v: a, mode: aMode}, lockReq{v: b, mode: bMode})
}

// readLockAll read-locks every vector of vs in ascending id order.
func readLockAll(vs []*Vector) (unlock func()) {
	reqs := make([]lockReq, len(vs))
	for i, v := range vs {
		reqs[i] = lockReq{v: v, mode: readMode}
	}
	return lockOrdered(reqs...)
}
