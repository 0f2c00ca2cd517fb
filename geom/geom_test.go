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

package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineDirections(t *testing.T) {
	a := Line{Start: Point{0, 0}, End: Point{1, 2}}
	b := Line{Start: Point{0, 0}, End: Point{2, 2}}
	c := Line{Start: Point{0, 0}, End: Point{3, 2}}

	assert.True(t, a.IsLeft(b))
	assert.True(t, c.IsRight(b))
}

func TestLineCoincide(t *testing.T) {
	a := Line{Start: Point{0, 0}, End: Point{4, 8}}
	b := Line{Start: Point{0, 0}, End: Point{2, 4}}

	assert.Equal(t, DirCoincide, a.Direction(b))
}

func TestLineNegativeSlope(t *testing.T) {
	// dy can be negative: a lower corridor bound can sit below the base.
	a := Line{Start: Point{10, 100}, End: Point{20, 50}}
	b := Line{Start: Point{10, 100}, End: Point{20, 150}}

	assert.True(t, a.IsRight(b))
	assert.True(t, b.IsLeft(a))
}

func TestLineDirectionPanicsOnNonPositiveDx(t *testing.T) {
	vertical := Line{Start: Point{5, 0}, End: Point{5, 1}}
	ok := Line{Start: Point{5, 0}, End: Point{10, 1}}

	assert.Panics(t, func() { vertical.Direction(ok) })
	assert.Panics(t, func() { ok.Direction(vertical) })
}

func TestLineDirectionExactAtWideGaps(t *testing.T) {
	// dx near 2^64 and a small dy: a float64 slope comparison would lose
	// precision here, the exact cross product must not.
	const big1 = ^uint64(0) - 2
	const big2 = ^uint64(0) - 1

	a := Line{Start: Point{0, 0}, End: Point{big1, 1}}
	b := Line{Start: Point{0, 0}, End: Point{big2, 1}}

	assert.True(t, a.IsLeft(b))
}

func TestPointLess(t *testing.T) {
	assert.True(t, Point{Key: 3}.Less(Point{Key: 4}))
	assert.False(t, Point{Key: 4}.Less(Point{Key: 3}))
	assert.False(t, Point{Key: 4}.Less(Point{Key: 4}))
}

func TestIsVertical(t *testing.T) {
	assert.True(t, Line{Start: Point{5, 0}, End: Point{5, 9}}.IsVertical())
	assert.False(t, Line{Start: Point{5, 0}, End: Point{6, 9}}.IsVertical())
}
