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
Package spline builds the Greedy Spline Corridor: a single pass over a
sorted []uint64 that emits a subsequence of "spline points" such that
linearly interpolating between consecutive spline points never mispredicts
a true key's index by more than maxError.

Neumann, Thomas, and Sebastian Michel. "Smooth interpolating histograms
with error guarantees." British National Conference on Databases. Springer,
Berlin, Heidelberg, 2008.

Performance characteristics:
Space: O(k) spline points, k typically sublinear in n for smooth key
distributions
Build: O(n), single pass
Search (Index.Search, no radix table): O(log k) to locate the segment,
O(log maxError) to refine

Example usage:

	points, err := spline.Build(data, 32)
	idx, err := spline.NewIndex(data, 32)
	pos, ok := idx.Search(12345)
*/
package spline

import (
	"errors"
	"math/bits"
	"sort"

	"github.com/chenzp/radixspline/geom"
)

// ErrInvalidInput indicates data violated a precondition: fewer than 3
// keys, keys not sorted ascending, or a non-increasing / degenerate
// (first == last) key range.
var ErrInvalidInput = errors.New("spline: invalid input")

// saturatingSub returns max(0, a-b) for non-negative a, b.
func saturatingSub(a, b int) int {
	if a < b {
		return 0
	}
	return a - b
}

func validate(data []uint64) error {
	if len(data) < 3 {
		return ErrInvalidInput
	}
	if data[len(data)-1] <= data[0] {
		return ErrInvalidInput
	}
	if !sort.SliceIsSorted(data, func(i, j int) bool { return data[i] < data[j] }) {
		return ErrInvalidInput
	}
	return nil
}

// Build runs the Greedy Spline Corridor over data and returns the emitted
// spline points. data must be sorted, have at least 3 elements, and satisfy
// data[len(data)-1] > data[0]; otherwise ErrInvalidInput is returned.
//
// The first and last returned points are always (data[0], 0) and
// (data[len(data)-1], len(data)-1). Keys in the result are strictly
// increasing, and linear interpolation between any two consecutive spline
// points differs from the true index of every key between them by at most
// maxError.
func Build(data []uint64, maxError int) ([]geom.Point, error) {
	if err := validate(data); err != nil {
		return nil, err
	}

	points := make([]geom.Point, 0, len(data)/8+2)
	points = append(points, geom.Point{Key: data[0], Position: 0})

	base := geom.Point{Key: data[0], Position: 0}
	upper := geom.Point{Key: data[1], Position: 1 + maxError}
	lower := geom.Point{Key: data[1], Position: saturatingSub(1, maxError)}

	for i := 2; i < len(data); i++ {
		// A repeat of the previous key is absorbed into the current
		// segment; if the corridor later breaks, its last occurrence is the
		// point emitted.
		if data[i] == data[i-1] {
			continue
		}
		candidate := geom.Point{Key: data[i], Position: i}

		bc := geom.Line{Start: base, End: candidate}
		bu := geom.Line{Start: base, End: upper}
		bl := geom.Line{Start: base, End: lower}

		if bc.IsVertical() || bu.IsVertical() || bl.IsVertical() {
			// A key equal to the base's: re-anchor the bounds at the
			// candidate without tightening against an undefined slope.
			upper = geom.Point{Key: candidate.Key, Position: i + maxError}
			lower = geom.Point{Key: candidate.Key, Position: saturatingSub(i, maxError)}
			continue
		}

		if bc.IsLeft(bu) || bc.IsRight(bl) {
			// The corridor is violated; the last feasible point - not C -
			// becomes the new anchor, so every point strictly between the
			// old and new base still lies inside the error bound.
			base = geom.Point{Key: data[i-1], Position: i - 1}
			points = append(points, base)

			upper = geom.Point{Key: candidate.Key, Position: i + maxError}
			lower = geom.Point{Key: candidate.Key, Position: saturatingSub(i, maxError)}
			continue
		}

		newUpper := geom.Point{Key: candidate.Key, Position: i + maxError}
		newLower := geom.Point{Key: candidate.Key, Position: saturatingSub(i, maxError)}

		if bu.IsLeft(geom.Line{Start: base, End: newUpper}) {
			upper = newUpper
		}
		if bl.IsRight(geom.Line{Start: base, End: newLower}) {
			lower = newLower
		}
	}

	n := len(data)
	points = append(points, geom.Point{Key: data[n-1], Position: n - 1})
	return points, nil
}

// Index is a spline-only point index: it locates the enclosing segment by
// binary search over the spline points (no radix shortcut) and refines
// with a bounded search in the original data. It exists mainly as a
// benchmark baseline between plain binary search and the full radix-spline
// index; radixspline.Index is the one that adds the O(1) radix lookup.
type Index struct {
	data     []uint64
	points   []geom.Point
	maxError int
}

// NewIndex builds a spline-only index over data.
func NewIndex(data []uint64, maxError int) (*Index, error) {
	points, err := Build(data, maxError)
	if err != nil {
		return nil, err
	}
	return &Index{data: data, points: points, maxError: maxError}, nil
}

// Points returns the spline points, for diagnostics.
func (idx *Index) Points() []geom.Point {
	out := make([]geom.Point, len(idx.points))
	copy(out, idx.points)
	return out
}

// Search returns the index of key in the underlying data, if present.
func (idx *Index) Search(key uint64) (int, bool) {
	if len(idx.data) == 0 || key < idx.data[0] || key > idx.data[len(idx.data)-1] {
		return 0, false
	}

	j := sort.Search(len(idx.points), func(i int) bool {
		return idx.points[i].Key >= key
	})

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

// interpolate computes the predicted position of key on the segment
// (left, right) using 128-bit widened integer arithmetic to avoid
// overflow, since key differences may be up to roughly 2^64: dk*dy is
// computed exactly with bits.Mul64/bits.Div64 rather than a plain int64
// multiply, which can overflow well before either operand does.
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
