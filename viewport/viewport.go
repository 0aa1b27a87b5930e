// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package viewport maps builder-space coordinates to device pixels.
//
// The host supplies a [Mapper] (usually a virtual-resolution transform) and
// a [Surface] describing the current render target. [Transformer] combines
// both: it maps every vertex through the Mapper and then reconciles the
// vertical axis for backends whose off-screen targets have a bottom-left
// origin.
package viewport

import (
	"math"

	"github.com/gogpu/gputypes"
)

// Mapper translates builder-space coordinates into device pixels.
type Mapper interface {
	TranslateX(x float64) float64
	TranslateY(y float64) float64
}

// Identity is a Mapper that leaves coordinates unchanged.
type Identity struct{}

// TranslateX returns x.
func (Identity) TranslateX(x float64) float64 { return x }

// TranslateY returns y.
func (Identity) TranslateY(y float64) float64 { return y }

// Linear is a Mapper applying an axis-aligned scale followed by an offset.
type Linear struct {
	ScaleX, ScaleY   float64
	OffsetX, OffsetY float64
}

// TranslateX returns x*ScaleX + OffsetX.
func (l Linear) TranslateX(x float64) float64 { return x*l.ScaleX + l.OffsetX }

// TranslateY returns y*ScaleY + OffsetY.
func (l Linear) TranslateY(y float64) float64 { return y*l.ScaleY + l.OffsetY }

// NewStretch returns a Mapper that stretches a virtual resolution to fill
// the screen, ignoring aspect ratio.
func NewStretch(virtualW, virtualH, screenW, screenH float64) Linear {
	if virtualW <= 0 || virtualH <= 0 {
		return Linear{ScaleX: 1, ScaleY: 1}
	}
	return Linear{ScaleX: screenW / virtualW, ScaleY: screenH / virtualH}
}

// NewLetterbox returns a Mapper that scales a virtual resolution uniformly
// to fit the screen and centers it, leaving bars on the unused axis.
func NewLetterbox(virtualW, virtualH, screenW, screenH float64) Linear {
	if virtualW <= 0 || virtualH <= 0 {
		return Linear{ScaleX: 1, ScaleY: 1}
	}
	s := math.Min(screenW/virtualW, screenH/virtualH)
	return Linear{
		ScaleX:  s,
		ScaleY:  s,
		OffsetX: (screenW - virtualW*s) / 2,
		OffsetY: (screenH - virtualH*s) / 2,
	}
}

// Surface describes the active render target.
type Surface interface {
	// Offscreen reports whether the target is an off-screen texture rather
	// than the window surface.
	Offscreen() bool

	// Backend returns the graphics API backing the target.
	Backend() gputypes.Backend

	// Height returns the target height in pixels.
	Height() int
}

// FlipsOffscreenY reports whether off-screen targets on backend use a
// bottom-left origin, so device Y must be mirrored before upload.
//
// OpenGL framebuffer textures are addressed bottom-up; Vulkan, Metal,
// DirectX 12 and browser WebGPU address them top-down like the window.
func FlipsOffscreenY(backend gputypes.Backend) bool {
	return backend == gputypes.BackendGL
}

// StaticSurface is a Surface with fixed properties. Hosts whose target does
// not change between frames can use it directly.
type StaticSurface struct {
	IsOffscreen bool
	API         gputypes.Backend
	PixelHeight int
}

// Offscreen reports IsOffscreen.
func (s StaticSurface) Offscreen() bool { return s.IsOffscreen }

// Backend returns API.
func (s StaticSurface) Backend() gputypes.Backend { return s.API }

// Height returns PixelHeight.
func (s StaticSurface) Height() int { return s.PixelHeight }

// Ensure StaticSurface implements Surface.
var _ Surface = StaticSurface{}
