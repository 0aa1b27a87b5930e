// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package viewport

import "github.com/gogpu/ribbon/tessellate"

// Transformer converts builder-space vertices to device pixel space.
type Transformer struct {
	mapper  Mapper
	surface Surface
	depth   float32
}

// NewTransformer returns a Transformer writing depth into every vertex Z.
func NewTransformer(m Mapper, s Surface, depth float32) *Transformer {
	return &Transformer{mapper: m, surface: s, depth: depth}
}

// flipHeight returns the height to mirror against and whether the current
// target needs a vertical flip. The surface is queried once per call so a
// target switch between frames is picked up.
func (t *Transformer) flipHeight() (float64, bool) {
	if t.surface == nil || !t.surface.Offscreen() || !FlipsOffscreenY(t.surface.Backend()) {
		return 0, false
	}
	return float64(t.surface.Height()), true
}

// Point maps a single builder-space point to device pixels.
func (t *Transformer) Point(x, y float64) (float64, float64) {
	dx, dy := t.mapper.TranslateX(x), t.mapper.TranslateY(y)
	if h, flip := t.flipHeight(); flip {
		dy = h - dy
	}
	return dx, dy
}

// Apply maps every vertex position in place: X and Y go through the
// Mapper, Y is mirrored when the target requires it, Z is set to the
// configured depth.
func (t *Transformer) Apply(vertices []tessellate.Vertex) {
	h, flip := t.flipHeight()
	for i := range vertices {
		p := &vertices[i].Position
		x := t.mapper.TranslateX(float64(p[0]))
		y := t.mapper.TranslateY(float64(p[1]))
		if flip {
			y = h - y
		}
		p[0] = float32(x)
		p[1] = float32(y)
		p[2] = t.depth
	}
}
