// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package tessellate

import "math"

// Point represents a 2D point or vector in builder space.
type Point struct {
	X, Y float64
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Length returns the length of the vector.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Perp returns the vector rotated by 90 degrees: (-y, x).
func (p Point) Perp() Point {
	return Point{X: -p.Y, Y: p.X}
}

// DefaultPerpendicular is used when the first segment of a curve has zero
// length and there is no earlier perpendicular to fall back on.
var DefaultPerpendicular = Point{X: 0, Y: 1}

// unitPerpendicular returns the normalized perpendicular of the segment
// from p to next. A zero-length segment returns fallback unchanged.
func unitPerpendicular(p, next, fallback Point) Point {
	perp := next.Sub(p).Perp()
	length := perp.Length()
	if length == 0 {
		return fallback
	}
	return Point{X: perp.X / length, Y: perp.Y / length}
}
