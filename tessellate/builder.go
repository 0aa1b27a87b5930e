// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package tessellate

import (
	"errors"
	"fmt"
	"image/color"
)

// MinPoints is the smallest curve that forms a ribbon.
const MinPoints = 2

// MaxPoints is the largest curve addressable with 16-bit indices
// (2 * MaxPoints vertices, indices 0..65535).
const MaxPoints = 1 << 15

// Builder errors.
var (
	// ErrTooFewPoints is returned when a curve has fewer than MinPoints points.
	ErrTooFewPoints = errors.New("tessellate: at least 2 points must be provided")

	// ErrTooManyPoints is returned when a curve cannot be indexed with uint16.
	ErrTooManyPoints = errors.New("tessellate: too many points for 16-bit indices")

	// ErrSizeMismatch is returned by Rebuild when the point count differs
	// from the allocated storage.
	ErrSizeMismatch = errors.New("tessellate: point count does not match allocation")
)

// Builder produces ribbon vertices for a polyline.
//
// The zero value is not usable; create builders with NewBuilder.
// A Builder is not safe for concurrent use.
type Builder struct {
	vertices []Vertex
	indices  []uint16

	depth float32
	color color.RGBA

	// alternateLast gives the closing pair row (n-1) mod 2 instead of 1.
	alternateLast bool
}

// NewBuilder creates a builder that writes depth into every vertex Z and
// c into every vertex colour.
func NewBuilder(depth float32, c color.RGBA) *Builder {
	return &Builder{depth: depth, color: c}
}

// CheckPointCount reports whether n points can be tessellated.
func CheckPointCount(n int) error {
	if n < MinPoints {
		return fmt.Errorf("%w: got %d", ErrTooFewPoints, n)
	}
	if n > MaxPoints {
		return fmt.Errorf("%w: got %d, max %d", ErrTooManyPoints, n, MaxPoints)
	}
	return nil
}

// Allocate sizes the vertex and index arrays for a curve of n points and
// fills the indices with the identity sequence 0..2n-1. Existing storage
// is reused when it already has the right size.
func (b *Builder) Allocate(n int) error {
	if err := CheckPointCount(n); err != nil {
		return err
	}
	count := 2 * n
	if len(b.vertices) == count {
		return nil
	}
	b.vertices = make([]Vertex, count)
	b.indices = make([]uint16, count)
	for i := range b.indices {
		b.indices[i] = uint16(i) //nolint:gosec // count <= 65536 by CheckPointCount
	}
	return nil
}

// Allocated returns the number of curve points the storage is sized for,
// or 0 before the first Allocate.
func (b *Builder) Allocated() int {
	return len(b.vertices) / 2
}

// Vertices returns the vertex array. It is overwritten by every Rebuild.
func (b *Builder) Vertices() []Vertex {
	return b.vertices
}

// Indices returns the identity index array. It never changes between
// allocations.
func (b *Builder) Indices() []uint16 {
	return b.indices
}

// SetColor changes the colour written into vertices by later rebuilds.
func (b *Builder) SetColor(c color.RGBA) {
	b.color = c
}

// SetAlternateLastRow selects the texture row of the closing vertex pair.
// By default it is row 1, so curves with an odd point count repeat row 1
// on their last quad. When on is true the closing pair continues the
// alternation with row (n-1) mod 2.
func (b *Builder) SetAlternateLastRow(on bool) {
	b.alternateLast = on
}

// Rebuild overwrites the vertex array with the ribbon for points.
//
// For every segment (points[i], points[i+1]) two vertices are written at
// points[i] + u and points[i] - u, where u is the unit perpendicular of the
// segment. The last point gets the perpendicular of the last segment.
// Texture coordinates tile a 2x2 pattern: side A gets (0, row), side B
// gets (1, row), with row = segment index mod 2. The closing pair uses
// row 1 unless SetAlternateLastRow is on.
func (b *Builder) Rebuild(points []Point) error {
	n := len(points)
	if err := CheckPointCount(n); err != nil {
		return err
	}
	if 2*n != len(b.vertices) {
		return fmt.Errorf("%w: %d points, allocated for %d", ErrSizeMismatch, n, b.Allocated())
	}

	unit := DefaultPerpendicular
	for i := 0; i < n-1; i++ {
		unit = unitPerpendicular(points[i], points[i+1], unit)
		b.emitPair(i, points[i], unit, float32(i%2))
	}
	lastRow := float32(1)
	if b.alternateLast {
		lastRow = float32((n - 1) % 2)
	}
	b.emitPair(n-1, points[n-1], unit, lastRow)
	return nil
}

// emitPair writes the two vertices of point p at slot 2*i.
func (b *Builder) emitPair(i int, p, unit Point, row float32) {
	a := &b.vertices[2*i]
	a.Position = [3]float32{float32(p.X + unit.X), float32(p.Y + unit.Y), b.depth}
	a.TexCoord = [2]float32{0, row}
	a.Color = b.color

	c := &b.vertices[2*i+1]
	c.Position = [3]float32{float32(p.X - unit.X), float32(p.Y - unit.Y), b.depth}
	c.TexCoord = [2]float32{1, row}
	c.Color = b.color
}

// PrimitiveCount returns the number of triangle-strip primitives drawn for
// vertexCount vertices.
func PrimitiveCount(vertexCount int) int {
	if vertexCount < 3 {
		return 0
	}
	return vertexCount - 2
}
