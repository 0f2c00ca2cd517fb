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
Package geom provides the two geometry primitives the learned index is built
from: Point, a (key, position) pair ordered by key alone, and Line, a
directed segment between two Points with a slope-comparison predicate.

Lines are compared with an exact cross-product test instead of floating
point division, so that slope comparisons are deterministic across
platforms and never lose precision as key gaps approach 2^64.

Example usage:

	b := Point{Key: 3, Position: 0}
	c := Point{Key: 10, Position: 3}
	u := Point{Key: 10, Position: 4}

	bc := Line{Start: b, End: c}
	bu := Line{Start: b, End: u}
	if bc.IsLeft(bu) {
		// bc climbs steeper than bu
	}
*/
package geom

import (
	"errors"
	"math/big"
)

// ErrInvariantViolation indicates an internal precondition was broken -
// here, that a Line passed to Direction had a non-positive dx. Callers
// upstream are expected to filter vertical/degenerate lines before
// reaching the comparator; reaching this panic means that filtering failed.
var ErrInvariantViolation = errors.New("geom: invariant violation")

// Point is a (key, position) pair. Equality and ordering are defined by Key
// alone: Position is payload, not part of identity.
type Point struct {
	Key      uint64
	Position int
}

// Less reports whether p sorts strictly before other, comparing keys only.
func (p Point) Less(other Point) bool {
	return p.Key < other.Key
}

// Direction classifies how two Lines sharing a start point relate in slope.
type Direction int

const (
	// DirCoincide means the two lines have exactly equal slope.
	DirCoincide Direction = iota
	// DirLeft means the receiver's slope is strictly greater (steeper).
	DirLeft
	// DirRight means the receiver's slope is strictly smaller (shallower).
	DirRight
)

// Line is a directed segment from Start to End.
type Line struct {
	Start, End Point
}

// IsVertical reports whether Start and End share a key, i.e. the line has
// no well-defined slope.
func (l Line) IsVertical() bool {
	return l.Start.Key == l.End.Key
}

// Direction compares the slope of l against other. Both lines must share
// l.Start == other.Start and have strictly positive dx (End.Key >
// Start.Key); callers filter vertical lines before calling this. It panics
// with ErrInvariantViolation if either dx is non-positive.
//
// The comparison uses the exact cross product dy1*dx2 vs dy2*dx1 with
// math/big so that it never loses precision, even when dx approaches 2^64 -
// a plain float64 division would silently round in that regime.
func (l Line) Direction(other Line) Direction {
	if l.End.Key <= l.Start.Key || other.End.Key <= other.Start.Key {
		panic(ErrInvariantViolation)
	}

	dx1 := l.End.Key - l.Start.Key
	dx2 := other.End.Key - other.Start.Key
	dy1 := int64(l.End.Position - l.Start.Position)
	dy2 := int64(other.End.Position - other.Start.Position)

	lhs := new(big.Int).Mul(big.NewInt(dy1), new(big.Int).SetUint64(dx2))
	rhs := new(big.Int).Mul(big.NewInt(dy2), new(big.Int).SetUint64(dx1))

	switch lhs.Cmp(rhs) {
	case 0:
		return DirCoincide
	case 1:
		return DirLeft
	default:
		return DirRight
	}
}

// IsLeft reports whether l's slope is strictly greater than other's.
func (l Line) IsLeft(other Line) bool {
	return l.Direction(other) == DirLeft
}

// IsRight reports whether l's slope is strictly smaller than other's.
func (l Line) IsRight(other Line) bool {
	return l.Direction(other) == DirRight
}
