package ribbon

import (
	"image/color"

	"github.com/gogpu/ribbon/render"
	"github.com/gogpu/ribbon/viewport"
)

// Host bundles the collaborators a curve needs from the application.
type Host struct {
	// Device owns the curve's buffers and executes its draws. Required.
	Device render.Device

	// Viewport maps builder space to device pixels. Required.
	Viewport viewport.Mapper

	// Surface describes the active render target. Required.
	Surface viewport.Surface

	// Debug receives overlay lines when WithDebug is set. Optional.
	Debug render.LineDrawer
}

func (h Host) validate() error {
	switch {
	case h.Device == nil:
		return ErrNilDevice
	case h.Viewport == nil:
		return ErrNilViewport
	case h.Surface == nil:
		return ErrNilSurface
	}
	return nil
}

// Material selects the render pass a curve draws in and its tint.
type Material struct {
	// Pass is the name of the render pass the curve registers with.
	Pass string

	// Tint multiplies the vertex colour. The zero value means opaque white.
	Tint color.RGBA
}

func (m Material) device() render.Material {
	tint := m.Tint
	if tint == (color.RGBA{}) {
		tint = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return render.Material{Tint: tint}
}
