// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// LineDrawer draws diagnostic lines in device pixel space.
type LineDrawer interface {
	DrawLine(x0, y0, x1, y1 float64, c color.RGBA)
}

// PixmapLines draws one-pixel lines into a PixmapTarget.
type PixmapLines struct {
	target *PixmapTarget
	raster vector.Rasterizer
}

// NewPixmapLines returns a LineDrawer over target.
func NewPixmapLines(target *PixmapTarget) *PixmapLines {
	return &PixmapLines{target: target}
}

// DrawLine strokes the segment (x0,y0)-(x1,y1) with width 1.
// Zero-length segments draw nothing.
func (l *PixmapLines) DrawLine(x0, y0, x1, y1 float64, c color.RGBA) {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	// Half-width offset along the normal.
	nx, ny := -dy/length*0.5, dx/length*0.5

	dst := l.target.Image()
	b := dst.Bounds()
	z := &l.raster
	z.Reset(b.Dx(), b.Dy())
	z.MoveTo(float32(x0+nx), float32(y0+ny))
	z.LineTo(float32(x1+nx), float32(y1+ny))
	z.LineTo(float32(x1-nx), float32(y1-ny))
	z.LineTo(float32(x0-nx), float32(y0-ny))
	z.ClosePath()
	z.DrawOp = draw.Over
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}

// Ensure PixmapLines implements LineDrawer.
var _ LineDrawer = (*PixmapLines)(nil)
