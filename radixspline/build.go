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

package radixspline

import "github.com/chenzp/radixspline/geom"

// buildCorridorAndTable runs the Greedy Spline Corridor scan and fills the
// radix table in the same single pass: whenever the corridor emits a new
// spline point, the table entries between the previous and current radix
// prefix are filled with that point's own index.
//
// table must already be sized maxPrefix+2, per Build.
func buildCorridorAndTable(data []uint64, maxError int, shift uint, minKey uint64, table []int) []geom.Point {
	points := make([]geom.Point, 0, len(data)/8+2)
	points = append(points, geom.Point{Key: data[0], Position: 0})

	base := geom.Point{Key: data[0], Position: 0}
	upper := geom.Point{Key: data[1], Position: 1 + maxError}
	lower := geom.Point{Key: data[1], Position: saturatingSub(1, maxError)}

	lastPrefix := 0

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
			upper = geom.Point{Key: candidate.Key, Position: i + maxError}
			lower = geom.Point{Key: candidate.Key, Position: saturatingSub(i, maxError)}
			continue
		}

		if bc.IsLeft(bu) || bc.IsRight(bl) {
			base = geom.Point{Key: data[i-1], Position: i - 1}
			points = append(points, base)
			lastPrefix = fillTable(table, minKey, shift, base.Key, lastPrefix, len(points)-1)

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
	lastPrefix = fillTable(table, minKey, shift, data[n-1], lastPrefix, len(points)-1)

	// Entries above the last filled prefix are a one-past-end sentinel, so
	// Search's table[prefix+1] lookup always stays in range.
	for p := lastPrefix + 1; p < len(table); p++ {
		table[p] = len(points)
	}

	return points
}

// fillTable fills table[lastPrefix+1 .. curPrefix] with pointIdx, the
// index of the spline point just emitted at key: every radix prefix in
// that range has key as its first spline point with a prefix that high,
// so locateSegment can start scanning from pointIdx for any key sharing
// one of those prefixes. Returns the new lastPrefix.
func fillTable(table []int, minKey uint64, shift uint, key uint64, lastPrefix, pointIdx int) int {
	curPrefix := int((key - minKey) >> shift)
	if curPrefix <= lastPrefix {
		return lastPrefix
	}
	for p := lastPrefix + 1; p <= curPrefix; p++ {
		table[p] = pointIdx
	}
	return curPrefix
}
