// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/ribbon/tessellate"
)

var opaqueWhite = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// uploadRibbon tessellates points and uploads them to dev.
func uploadRibbon(t *testing.T, dev *SoftwareDevice, points []tessellate.Point) DrawCall {
	t.Helper()

	b := tessellate.NewBuilder(1, opaqueWhite)
	if err := b.Allocate(len(points)); err != nil {
		t.Fatal(err)
	}
	if err := b.Rebuild(points); err != nil {
		t.Fatal(err)
	}
	data := tessellate.EncodeVertices(nil, b.Vertices())

	ib, err := dev.CreateIndexBuffer("test.indices", b.Indices())
	if err != nil {
		t.Fatal(err)
	}
	vb, err := dev.CreateVertexBuffer("test.vertices", len(data))
	if err != nil {
		t.Fatal(err)
	}
	if err := dev.WriteBuffer(vb, 0, data); err != nil {
		t.Fatal(err)
	}
	n := len(b.Vertices())
	return DrawCall{
		Topology:       gputypes.PrimitiveTopologyTriangleStrip,
		VertexBuffer:   vb,
		IndexBuffer:    ib,
		VertexCount:    n,
		PrimitiveCount: tessellate.PrimitiveCount(n),
	}
}

func TestSoftwareDeviceDrawsStrip(t *testing.T) {
	target := NewPixmapTarget(64, 64)
	dev := NewSoftwareDevice(target)

	call := uploadRibbon(t, dev, []tessellate.Point{{X: 10, Y: 20}, {X: 50, Y: 20}})
	red := color.RGBA{R: 255, A: 255}
	if err := dev.ApplyMaterial(Material{Tint: red}); err != nil {
		t.Fatal(err)
	}
	if err := dev.DrawIndexed(call); err != nil {
		t.Fatalf("DrawIndexed() = %v", err)
	}

	// The ribbon covers y in [19, 21], so row 20 is fully inside. Column 12
	// stays clear of the strip diagonal.
	img := target.Image()
	if got := img.RGBAAt(12, 20); got != red {
		t.Errorf("pixel inside ribbon = %v, want %v", got, red)
	}
	if got := img.RGBAAt(30, 25); got.A != 0 {
		t.Errorf("pixel outside ribbon = %v, want transparent", got)
	}
	if got := img.RGBAAt(5, 20); got.A != 0 {
		t.Errorf("pixel before ribbon start = %v, want transparent", got)
	}

	stats := dev.Stats()
	if stats.Draws != 1 || stats.Primitives != 2 {
		t.Errorf("stats = %+v, want 1 draw of 2 primitives", stats)
	}
}

func TestSoftwareDeviceZigzagHasNoSeams(t *testing.T) {
	target := NewPixmapTarget(64, 64)
	dev := NewSoftwareDevice(target)

	// Four collinear points: three strip quads with alternating winding.
	call := uploadRibbon(t, dev, []tessellate.Point{
		{X: 4, Y: 32}, {X: 20, Y: 32}, {X: 36, Y: 32}, {X: 52, Y: 32},
	})
	if err := dev.DrawIndexed(call); err != nil {
		t.Fatal(err)
	}
	img := target.Image()
	// Columns at and just after each joint, away from the strip diagonals.
	for _, x := range []int{6, 20, 22, 36, 38} {
		if got := img.RGBAAt(x, 32); got != opaqueWhite {
			t.Errorf("pixel (%d,32) = %v, want opaque white", x, got)
		}
	}
}

func TestSoftwareDeviceBufferLifecycle(t *testing.T) {
	dev := NewSoftwareDevice(NewPixmapTarget(8, 8))

	vb, err := dev.CreateVertexBuffer("v", 48)
	if err != nil {
		t.Fatal(err)
	}
	ib, err := dev.CreateIndexBuffer("i", []uint16{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	if dev.LiveBuffers() != 2 {
		t.Errorf("LiveBuffers() = %d, want 2", dev.LiveBuffers())
	}

	if err := dev.WriteBuffer(vb, 24, make([]byte, 24)); err != nil {
		t.Errorf("in-bounds write: %v", err)
	}
	if err := dev.WriteBuffer(vb, 32, make([]byte, 24)); !errors.Is(err, ErrBufferTooSmall) {
		t.Errorf("out-of-bounds write = %v, want ErrBufferTooSmall", err)
	}
	if err := dev.WriteBuffer(ib, 0, []byte{1, 2}); err == nil {
		t.Error("write to index buffer should fail")
	}
	if _, err := dev.CreateVertexBuffer("bad", 0); !errors.Is(err, ErrInvalidBufferSize) {
		t.Errorf("zero-size buffer = %v, want ErrInvalidBufferSize", err)
	}

	dev.DestroyBuffer(vb)
	dev.DestroyBuffer(vb)
	dev.DestroyBuffer(ib)
	if err := dev.WriteBuffer(vb, 0, []byte{0}); !errors.Is(err, ErrUnknownBuffer) {
		t.Errorf("write after destroy = %v, want ErrUnknownBuffer", err)
	}

	stats := dev.Stats()
	if stats.BuffersCreated != 2 || stats.BuffersDestroyed != 2 || stats.LiveBuffers() != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if _, ok := dev.BufferData(vb); ok {
		t.Error("BufferData() of destroyed buffer should report false")
	}
}

func TestSoftwareDeviceRejectsBadDraws(t *testing.T) {
	dev := NewSoftwareDevice(NewPixmapTarget(32, 32))
	call := uploadRibbon(t, dev, []tessellate.Point{{X: 1, Y: 1}, {X: 9, Y: 9}})

	tests := []struct {
		name    string
		mutate  func(*DrawCall)
		wantErr error
	}{
		{"unknown vertex buffer", func(c *DrawCall) { c.VertexBuffer = 99 }, ErrUnknownBuffer},
		{"swapped buffers", func(c *DrawCall) { c.VertexBuffer, c.IndexBuffer = c.IndexBuffer, c.VertexBuffer }, ErrUnknownBuffer},
		{"vertex count too large", func(c *DrawCall) { c.VertexCount = 8; c.PrimitiveCount = 6 }, ErrBufferTooSmall},
		{"line topology", func(c *DrawCall) { c.Topology = gputypes.PrimitiveTopologyLineList; c.PrimitiveCount = 1 }, ErrInvalidDraw},
		{"no primitives", func(c *DrawCall) { c.PrimitiveCount = 0 }, ErrInvalidDraw},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := call
			tt.mutate(&c)
			if err := dev.DrawIndexed(c); !errors.Is(err, tt.wantErr) {
				t.Errorf("DrawIndexed() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestModulate(t *testing.T) {
	got := modulate(color.RGBA{R: 255, G: 128, B: 0, A: 255}, color.RGBA{R: 255, G: 255, B: 255, A: 128})
	want := color.RGBA{R: 255, G: 128, B: 0, A: 128}
	if got != want {
		t.Errorf("modulate = %v, want %v", got, want)
	}
}

func TestPixmapLines(t *testing.T) {
	target := NewPixmapTarget(16, 16)
	lines := NewPixmapLines(target)
	green := color.RGBA{G: 255, A: 255}

	lines.DrawLine(2, 8.5, 14, 8.5, green)
	lines.DrawLine(3, 3, 3, 3, green)

	img := target.Image()
	if got := img.RGBAAt(8, 8); got != green {
		t.Errorf("pixel on line = %v, want %v", got, green)
	}
	if got := img.RGBAAt(8, 2); got.A != 0 {
		t.Errorf("pixel off line = %v, want transparent", got)
	}
	if got := img.RGBAAt(3, 3); got.A != 0 {
		t.Errorf("zero-length line drew %v", got)
	}
}

func TestPixmapTarget(t *testing.T) {
	target := NewPixmapTarget(100, 50)
	if target.Width() != 100 || target.Height() != 50 {
		t.Errorf("size = %dx%d, want 100x50", target.Width(), target.Height())
	}
	if !target.Offscreen() || target.Backend() != gputypes.BackendEmpty {
		t.Error("pixmap target should be off-screen on the empty backend")
	}
	if target.Format() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format() = %v", target.Format())
	}

	blue := color.RGBA{B: 255, A: 255}
	target.Clear(blue)
	if got := target.Image().RGBAAt(99, 49); got != blue {
		t.Errorf("after Clear pixel = %v, want %v", got, blue)
	}

	target.Resize(20, 10)
	if target.Width() != 20 || target.Height() != 10 {
		t.Errorf("after Resize size = %dx%d", target.Width(), target.Height())
	}
}
