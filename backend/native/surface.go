// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/ribbon/viewport"
)

// Surface tracks the render target the host is currently drawing into.
//
// Hosts switch it between the window surface and off-screen textures with
// SetTarget; curves query it every frame to decide on the vertical flip.
type Surface struct {
	mu        sync.RWMutex
	backend   gputypes.Backend
	height    int
	offscreen bool
}

// NewSurface returns a Surface for backend, initially the window surface of
// the given height.
func NewSurface(backend gputypes.Backend, height int) *Surface {
	return &Surface{backend: backend, height: height}
}

// SetTarget records the current target height and whether it is
// off-screen.
func (s *Surface) SetTarget(height int, offscreen bool) {
	s.mu.Lock()
	s.height = height
	s.offscreen = offscreen
	s.mu.Unlock()
}

// Offscreen reports whether the current target is an off-screen texture.
func (s *Surface) Offscreen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.offscreen
}

// Backend returns the graphics API.
func (s *Surface) Backend() gputypes.Backend {
	return s.backend
}

// Height returns the current target height in pixels.
func (s *Surface) Height() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.height
}

// Ensure Surface implements viewport.Surface.
var _ viewport.Surface = (*Surface)(nil)
