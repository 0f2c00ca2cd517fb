/*
Copyright 2014 Workiva, LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

 http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

/*
Package radixspline implements a learned index over sorted, non-negative
uint64 keys: a radix prefix table fused on top of a Greedy Spline Corridor
(see package spline), giving O(1) radix lookup plus O(log maxError)
refinement for a point query, instead of O(log n) binary search.

The index is immutable after Build and safe for any number of concurrent
readers; it never mutates the data slice it was built from and never
blocks or allocates on the query path beyond the bounded refinement
window.

Performance characteristics:
Space: O(2^NumRadixBits) for the table (bounded; shift keeps it
proportional to key density), O(k) spline points
Build: O(n), single pass
Search: O(1) + O(log MaxError)

Example usage:

	idx, err := radixspline.Build(data, radixspline.Params{})
	if err != nil {
		return err
	}
	pos, ok := idx.Search(12345)
*/
package radixspline

import (
	"errors"
	"math/bits"
	"sort"

	"github.com/chenzp/radixspline/geom"
)

// ErrInvalidInput indicates data violated a Build precondition: fewer than
// 3 keys, a key sequence not sorted ascending, or a degenerate key range
// (data[len(data)-1] <= data[0]).
var ErrInvalidInput = errors.New("radixspline: invalid input")

// linearScanThreshold is the window width below which Search scans the
// radix-selected spline range linearly instead of binary searching it;
// chosen to amortize branch-prediction benefits of a linear scan against
// logarithmic scaling, per the index's own design constant.
const linearScanThreshold = 32

// Params configures Build. The zero value selects the defaults
// (NumRadixBits: 18, MaxError: 32), matching a Config-style options
// struct rather than positional arguments.
type Params struct {
	// NumRadixBits is the target width of the radix prefix. Zero selects
	// the default of 18.
	NumRadixBits uint
	// MaxError is the corridor half-width (epsilon): the maximum distance
	// between a key's predicted and true index. Zero selects the default
	// of 32.
	MaxError int
}

const (
	defaultNumRadixBits = 18
	defaultMaxError     = 32
)

func (p Params) withDefaults() Params {
	if p.NumRadixBits == 0 {
		p.NumRadixBits = defaultNumRadixBits
	}
	if p.MaxError == 0 {
		p.MaxError = defaultMaxError
	}
	return p
}

// Index is an immutable learned index over a sorted, borrowed []uint64.
type Index struct {
	data     []uint64
	minKey   uint64
	maxKey   uint64
	shift    uint
	maxError int
	points   []geom.Point
	table    []int
}

// Build constructs an Index over data using the Greedy Spline Corridor and
// a fused radix prefix table, in a single pass over data.
//
// data must be sorted ascending, hold at least 3 keys, and satisfy
// data[len(data)-1] > data[0]; otherwise ErrInvalidInput is returned.
// data is borrowed, not copied: the caller must not mutate it for the
// lifetime of the returned Index.
func Build(data []uint64, params Params) (*Index, error) {
	if len(data) < 3 {
		return nil, ErrInvalidInput
	}
	minKey, maxKey := data[0], data[len(data)-1]
	if maxKey <= minKey {
		return nil, ErrInvalidInput
	}
	if !sort.SliceIsSorted(data, func(i, j int) bool { return data[i] < data[j] }) {
		return nil, ErrInvalidInput
	}

	params = params.withDefaults()
	shift := computeShift(maxKey-minKey, params.NumRadixBits)

	maxPrefix := int((maxKey - minKey) >> shift)
	table := make([]int, maxPrefix+2)

	points := buildCorridorAndTable(data, params.MaxError, shift, minKey, table)

	return &Index{
		data:     data,
		minKey:   minKey,
		maxKey:   maxKey,
		shift:    shift,
		maxError: params.MaxError,
		points:   points,
		table:    table,
	}, nil
}

// computeShift picks the right-shift amount so the radix prefix of the key
// span fits in roughly numRadixBits bits: shift = max(0, 64 - numRadixBits
// - leading_zeros(span)).
func computeShift(span uint64, numRadixBits uint) uint {
	zeros := uint(bits.LeadingZeros64(span))
	if 64-zeros < numRadixBits {
		return 0
	}
	return 64 - numRadixBits - zeros
}

// MinKey returns the smallest key the index was built over.
func (idx *Index) MinKey() uint64 { return idx.minKey }

// MaxKey returns the largest key the index was built over.
func (idx *Index) MaxKey() uint64 { return idx.maxKey }

// Points returns a copy of the spline point list, for diagnostics.
func (idx *Index) Points() []geom.Point {
	out := make([]geom.Point, len(idx.points))
	copy(out, idx.points)
	return out
}

// Table returns a copy of the radix table, for diagnostics.
func (idx *Index) Table() []int {
	out := make([]int, len(idx.table))
	copy(out, idx.table)
	return out
}

// Search returns the index i such that data[i] == key, if key is present.
// For duplicate keys it returns some valid index, not a specified one.
func (idx *Index) Search(key uint64) (int, bool) {
	if key < idx.minKey || key > idx.maxKey {
		return 0, false
	}

	prefix := int((key - idx.minKey) >> idx.shift)
	lo, hi := idx.table[prefix], idx.table[prefix+1]

	j := idx.locateSegment(key, lo, hi)
	if j < len(idx.points) && idx.points[j].Key == key {
		return idx.points[j].Position, true
	}
	if j == 0 {
		return 0, false
	}

	left, right := idx.points[j-1], idx.points[j]
	pred := interpolate(left, right, key)

	from := saturatingSub(pred, idx.maxError)
	to := pred + idx.maxError
	if n := len(idx.data); to > n-1 {
		to = n - 1
	}

	return refine(idx.data, key, from, to)
}

// locateSegment finds the smallest index j >= lo, j <= hi with
// points[j].Key >= key, scanning linearly for small windows and binary
// searching otherwise.
func (idx *Index) locateSegment(key uint64, lo, hi int) int {
	if hi-lo < linearScanThreshold {
		j := lo
		for j <= hi && j < len(idx.points) && idx.points[j].Key < key {
			j++
		}
		return j
	}

	window := idx.points[lo:hi]
	j := sort.Search(len(window), func(i int) bool { return window[i].Key >= key })
	return lo + j
}

func saturatingSub(a, b int) int {
	if a < b {
		return 0
	}
	return a - b
}

// interpolate computes the predicted position of key on the segment
// (left, right). dk*dy can exceed 2^64 (a ~2^44 key span times a ~2^20
// position span, for example), so the product is computed exactly with
// bits.Mul64/bits.Div64 instead of a plain int64 multiply - the same
// widening requirement geom.Line.Direction satisfies with math/big.
func interpolate(left, right geom.Point, key uint64) int {
	dx := right.Key - left.Key
	dk := key - left.Key

	dy := right.Position - left.Position
	neg := dy < 0
	udy := uint64(dy)
	if neg {
		udy = uint64(-dy)
	}

	hi, lo := bits.Mul64(dk, udy)
	q, _ := bits.Div64(hi, lo, dx)

	if neg {
		return left.Position - int(q)
	}
	return left.Position + int(q)
}

// refine binary-searches data[from..=to] for key.
func refine(data []uint64, key uint64, from, to int) (int, bool) {
	if from > to {
		return 0, false
	}
	window := data[from : to+1]
	j := sort.Search(len(window), func(i int) bool { return window[i] >= key })
	if j < len(window) && window[j] == key {
		return from + j, true
	}
	return 0, false
}
