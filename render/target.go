// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/ribbon/viewport"
)

// PixmapTarget is a CPU-backed off-screen render target using *image.RGBA.
//
// It implements viewport.Surface. The CPU rasterizer addresses rows
// top-down like Vulkan, Metal and DX12, so Backend reports BackendEmpty and
// no vertical flip is applied.
//
// Example:
//
//	target := render.NewPixmapTarget(800, 600)
//	dev := render.NewSoftwareDevice(target)
//	img := target.Image()
type PixmapTarget struct {
	img *image.RGBA
}

// NewPixmapTarget creates a new CPU-backed render target.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return &PixmapTarget{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// NewPixmapTargetFromImage wraps an existing *image.RGBA as a render target.
// The image is used directly without copying.
func NewPixmapTargetFromImage(img *image.RGBA) *PixmapTarget {
	return &PixmapTarget{img: img}
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int {
	return t.img.Bounds().Dx()
}

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int {
	return t.img.Bounds().Dy()
}

// Format returns the pixel format (RGBA8).
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Offscreen reports true: a pixmap is never the window surface.
func (t *PixmapTarget) Offscreen() bool {
	return true
}

// Backend reports BackendEmpty (CPU rasterization).
func (t *PixmapTarget) Backend() gputypes.Backend {
	return gputypes.BackendEmpty
}

// Image returns the underlying *image.RGBA.
// The returned image shares memory with the target.
func (t *PixmapTarget) Image() *image.RGBA {
	return t.img
}

// Clear fills the entire target with the given color.
func (t *PixmapTarget) Clear(c color.Color) {
	draw.Draw(t.img, t.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Resize creates a new backing image with the given dimensions.
// The contents are not preserved.
func (t *PixmapTarget) Resize(width, height int) {
	t.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Ensure PixmapTarget implements viewport.Surface.
var _ viewport.Surface = (*PixmapTarget)(nil)
