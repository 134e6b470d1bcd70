// SPDX-License-Identifier: MIT
// White-box tests for the ordered locking helper.

package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestVectorIDsAscend ensures construction order defines lock order.
func TestVectorIDsAscend(t *testing.T) {
	a := NewVector(nil, Row)
	b := NewVector(nil, Row)
	require.Less(t, a.id, b.id)
}

// TestLockOrderedMergesDuplicates asks for the same vector twice; a non-merging
// helper would self-deadlock on the second acquisition.
func TestLockOrderedMergesDuplicates(t *testing.T) {
	v := NewVector([]float64{1}, Row)

	unlock := lockOrdered(lockReq{v: v, mode: readMode}, lockReq{v: v, mode: writeMode})
	require.False(t, v.mu.TryRLock()) // merged into one write lock
	unlock()

	require.True(t, v.mu.TryLock()) // fully released
	v.mu.Unlock()
}

// TestLockOrderedAscending checks that callers' argument order does not matter.
func TestLockOrderedAscending(t *testing.T) {
	a := NewVector(nil, Row)
	b := NewVector(nil, Row)
	c := NewVector(nil, Row)

	unlock := lockOrdered(lockReq{v: c, mode: writeMode}, lockReq{v: a, mode: readMode}, lockReq{v: b, mode: writeMode})
	require.False(t, a.mu.TryLock())
	require.False(t, b.mu.TryRLock())
	require.False(t, c.mu.TryRLock())
	unlock()

	for _, v := range []*Vector{a, b, c} {
		require.True(t, v.mu.TryLock())
		v.mu.Unlock()
	}
}

// TestLockOrderedSkipsNil tolerates nil requests.
func TestLockOrderedSkipsNil(t *testing.T) {
	v := NewVector(nil, Row)
	unlock := lockPair(v, readMode, nil, writeMode)
	require.True(t, v.mu.TryRLock()) // read lock is shared
	v.mu.RUnlock()
	unlock()
}

// TestAddReleasesOperandBeforeApply blocks v's write lock and checks that a
// pending v.Add(other) does not keep other read-locked while it waits.
// other is created first so that it sorts first in id order.
func TestAddReleasesOperandBeforeApply(t *testing.T) {
	other := NewVector([]float64{1, 2}, Row)
	v := NewVector([]float64{10, 20}, Row)

	v.mu.Lock()
	done := make(chan error, 1)
	go func() { done <- v.Add(other) }()
	time.Sleep(20 * time.Millisecond) // let Add reach v's lock

	require.Eventually(t, func() bool {
		if !other.mu.TryLock() {
			return false
		}
		other.mu.Unlock()
		return true
	}, time.Second, time.Millisecond)
	v.mu.Unlock()

	require.NoError(t, <-done)
	require.Equal(t, []float64{11, 22}, v.Values())
	require.Equal(t, []float64{1, 2}, other.Values())
}
