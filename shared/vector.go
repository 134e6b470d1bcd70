// SPDX-License-Identifier: MIT

// Package shared - Vector: a lockable float64 buffer with an orientation tag.
//
// Purpose:
//   - Own exactly one buffer (copied on construction, never aliased outward).
//   - Guard the buffer and orientation with one sync.RWMutex.
//   - Provide in-place Negate/Transpose/Add/VecMatMul and a read-only Dot.
//
// Concurrency:
//   - Single-vector methods take this vector's lock only.
//   - Add copies the other vector under its read lock, releases it, then
//     applies under its own write lock; the two are never held together.
//   - Dot locks both vectors through lockPair (ascending id).
//   - VecMatMul never nests locks: it snapshots itself, then reads each
//     matrix vector under that vector's own read lock, then installs the
//     result under its write lock.

package shared

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
)

// nextVectorID hands out the stable lock-order key of every Vector.
var nextVectorID atomic.Uint64

// Vector is a mutable, lockable vector of float64 values.
type Vector struct {
	id          uint64       // immutable lock-order key (ascending acquire)
	mu          sync.RWMutex // guards data and orientation
	data        []float64    // exclusively owned buffer
	orientation Orientation  // Row or Column
}

// NewVector returns a Vector holding a copy of data with orientation o.
// A nil data slice yields an empty vector.
func NewVector(data []float64, o Orientation) *Vector {
	buf := make([]float64, len(data))
	copy(buf, data)

	return &Vector{
		id:          nextVectorID.Add(1),
		data:        buf,
		orientation: o,
	}
}

// Get returns the element at index i.
// Errors: ErrOutOfRange when i is outside [0, Len()).
func (v *Vector) Get(i int) (float64, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if i < 0 || i >= len(v.data) {
		return 0, vectorErrorf(fmt.Sprintf("Get(%d)", i), ErrOutOfRange)
	}
	return v.data[i], nil
}

// Len returns the number of elements.
func (v *Vector) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return len(v.data)
}

// Orientation returns the current orientation tag.
func (v *Vector) Orientation() Orientation {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.orientation
}

// Values returns a detached copy of the buffer.
func (v *Vector) Values() []float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return slices.Clone(v.data)
}

// Transpose toggles the orientation; values are unchanged.
func (v *Vector) Transpose() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.orientation = v.orientation.Flip()
}

// Negate flips the sign of every element in place.
func (v *Vector) Negate() {
	v.mu.Lock()
	defer v.mu.Unlock()

	for i := range v.data {
		v.data[i] = -v.data[i]
	}
}

// Add performs v += other in place.
// Implementation:
//   - Stage 1: copy other's values and orientation under its read lock, then release it.
//   - Stage 2: under v's write lock, validate orientation, then length.
//   - Stage 3: element-wise accumulate from the copy.
//
// Behavior highlights:
//   - The two locks are never held together, so Add cannot take part in a
//     lock cycle and other stays readable while v waits for its write lock.
//   - v.Add(v) doubles every element: the copy is taken before the write.
//   - Concurrent a.Add(b) and b.Add(a) may both read the pre-add values.
//
// Errors: ErrNilVector, ErrOrientationMismatch, ErrDimensionMismatch.
// Complexity: O(n).
func (v *Vector) Add(other *Vector) error {
	if other == nil {
		return vectorErrorf("Add", ErrNilVector)
	}

	other.mu.RLock()
	src, o := slices.Clone(other.data), other.orientation
	other.mu.RUnlock()

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.orientation != o {
		return vectorErrorf("Add", ErrOrientationMismatch)
	}
	if len(v.data) != len(src) {
		return vectorErrorf("Add", ErrDimensionMismatch)
	}
	for i, x := range src {
		v.data[i] += x
	}

	return nil
}

// Dot returns Σ v[i]*other[i]. Exactly one operand must be a Row and the
// other a Column. Zero-length vectors dot to 0.
// Errors: ErrNilVector, ErrOrientationMismatch, ErrDimensionMismatch.
func (v *Vector) Dot(other *Vector) (float64, error) {
	if other == nil {
		return 0, vectorErrorf("Dot", ErrNilVector)
	}

	unlock := lockPair(v, readMode, other, readMode)
	defer unlock()

	if v.orientation == other.orientation {
		return 0, vectorErrorf("Dot", ErrOrientationMismatch)
	}
	if len(v.data) != len(other.data) {
		return 0, vectorErrorf("Dot", ErrDimensionMismatch)
	}

	var sum float64
	for i := range v.data {
		sum += v.data[i] * other.data[i]
	}
	return sum, nil
}

// VecMatMul replaces v with the row vector v×m.
//
// Dimension rule:
//   - m Row-major:    Len() must equal m.Len(); result length = row length.
//   - m Column-major: Len() must equal the column length; result length = m.Len().
//   - empty m:        result is an empty Row vector.
//
// On success v's orientation is Row. On error v is left untouched.
// Errors: ErrNilMatrix, ErrOrientationMismatch (v is not a Row), ErrDimensionMismatch.
// Complexity: O(rows*cols).
func (v *Vector) VecMatMul(m *Matrix) error {
	if m == nil {
		return vectorErrorf("VecMatMul", ErrNilMatrix)
	}

	// Snapshot self; no other vector is touched while v's lock is held.
	v.mu.RLock()
	if v.orientation != Row {
		v.mu.RUnlock()
		return vectorErrorf("VecMatMul", ErrOrientationMismatch)
	}
	x := slices.Clone(v.data)
	v.mu.RUnlock()

	result, err := rowTimes(x, m.snapshot())
	if err != nil {
		return vectorErrorf("VecMatMul", err)
	}

	v.mu.Lock()
	v.data = result
	v.orientation = Row
	v.mu.Unlock()

	return nil
}

// rowTimes computes x×M where M is given by its stored vectors.
// Each stored vector is read under its own read lock, one at a time.
func rowTimes(x []float64, vecs []*Vector) ([]float64, error) {
	if len(vecs) == 0 {
		return []float64{}, nil
	}

	first := vecs[0]
	first.mu.RLock()
	stored := first.orientation
	width := len(first.data)
	first.mu.RUnlock()

	if stored == Row {
		if len(x) != len(vecs) {
			return nil, ErrDimensionMismatch
		}
		out := make([]float64, width)
		for i, row := range vecs {
			row.mu.RLock()
			if len(row.data) != width {
				row.mu.RUnlock()
				return nil, ErrShape
			}
			scalar := x[i]
			for j, a := range row.data {
				out[j] += scalar * a
			}
			row.mu.RUnlock()
		}
		return out, nil
	}

	if len(x) != width {
		return nil, ErrDimensionMismatch
	}
	out := make([]float64, len(vecs))
	for i, col := range vecs {
		col.mu.RLock()
		if len(col.data) != width {
			col.mu.RUnlock()
			return nil, ErrShape
		}
		var sum float64
		for j, a := range col.data {
			sum += x[j] * a
		}
		col.mu.RUnlock()
		out[i] = sum
	}
	return out, nil
}

// String implements fmt.Stringer, e.g. "row[1, 2, 3]".
func (v *Vector) String() string {
	v.mu.RLock()
	defer v.mu.RUnlock()

	var sb strings.Builder
	sb.WriteString(v.orientation.String())
	sb.WriteString(_fmtOpen)
	for i, x := range v.data {
		if i > 0 {
			sb.WriteString(_fmtSep)
		}
		fmt.Fprintf(&sb, "%g", x)
	}
	sb.WriteString(_fmtClose)
	return sb.String()
}

// ---------- Formatting literals ----------
const (
	_fmtOpen  = "["
	_fmtClose = "]"
	_fmtSep   = ", "
)
