// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/ribbon/tessellate"
	"golang.org/x/image/vector"
)

// ErrNilTarget is returned when a software device has no target.
var ErrNilTarget = errors.New("render: nil target")

// DeviceStats counts device operations. Useful for leak checks in tests
// and for diagnostics.
type DeviceStats struct {
	BuffersCreated   int
	BuffersDestroyed int
	Writes           int
	Draws            int
	Primitives       int
}

// LiveBuffers returns the number of buffers created and not yet destroyed.
func (s DeviceStats) LiveBuffers() int {
	return s.BuffersCreated - s.BuffersDestroyed
}

type softBuffer struct {
	label string
	data  []byte
	index bool
}

// SoftwareDevice is a CPU implementation of Device.
//
// Buffers are plain byte slices. DrawIndexed walks the index buffer,
// assembles triangles and fills them into the target with
// golang.org/x/image/vector. Shading is flat: the first vertex colour of
// the draw multiplied by the material tint. Texture coordinates are
// carried but not sampled.
//
// Example:
//
//	target := render.NewPixmapTarget(800, 600)
//	dev := render.NewSoftwareDevice(target)
//	// hand dev to a drawable, run frames, then:
//	img := target.Image()
type SoftwareDevice struct {
	mu sync.Mutex

	target   *PixmapTarget
	buffers  map[BufferID]*softBuffer
	nextID   BufferID
	material Material

	// raster is reused across draws.
	raster *vector.Rasterizer

	stats DeviceStats
}

// NewSoftwareDevice creates a CPU device drawing into target.
func NewSoftwareDevice(target *PixmapTarget) *SoftwareDevice {
	return &SoftwareDevice{
		target:   target,
		buffers:  make(map[BufferID]*softBuffer),
		nextID:   1,
		material: Material{Tint: color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		raster:   &vector.Rasterizer{},
	}
}

// Target returns the render target.
func (d *SoftwareDevice) Target() *PixmapTarget {
	return d.target
}

// Stats returns a snapshot of the operation counters.
func (d *SoftwareDevice) Stats() DeviceStats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}

// LiveBuffers returns the number of buffers not yet destroyed.
func (d *SoftwareDevice) LiveBuffers() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.buffers)
}

func (d *SoftwareDevice) newBuffer(b *softBuffer) BufferID {
	id := d.nextID
	d.nextID++
	d.buffers[id] = b
	d.stats.BuffersCreated++
	return id
}

// CreateVertexBuffer allocates a zeroed vertex buffer.
func (d *SoftwareDevice) CreateVertexBuffer(label string, size int) (BufferID, error) {
	if size <= 0 {
		return InvalidBuffer, fmt.Errorf("%w: %d", ErrInvalidBufferSize, size)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.newBuffer(&softBuffer{label: label, data: make([]byte, size)}), nil
}

// CreateIndexBuffer allocates an index buffer holding indices.
func (d *SoftwareDevice) CreateIndexBuffer(label string, indices []uint16) (BufferID, error) {
	if len(indices) == 0 {
		return InvalidBuffer, fmt.Errorf("%w: no indices", ErrInvalidBufferSize)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.newBuffer(&softBuffer{label: label, data: tessellate.EncodeIndices(indices), index: true}), nil
}

// WriteBuffer copies data into a buffer. Index buffers are immutable.
func (d *SoftwareDevice) WriteBuffer(id BufferID, offset uint64, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	b, ok := d.buffers[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownBuffer, id)
	}
	if b.index {
		return fmt.Errorf("render: buffer %q is an index buffer and cannot be written", b.label)
	}
	if offset+uint64(len(data)) > uint64(len(b.data)) {
		return fmt.Errorf("%w: write of %d bytes at %d into %d", ErrBufferTooSmall, len(data), offset, len(b.data))
	}
	copy(b.data[offset:], data)
	d.stats.Writes++
	return nil
}

// DestroyBuffer releases a buffer. Unknown IDs are ignored.
func (d *SoftwareDevice) DestroyBuffer(id BufferID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.buffers[id]; ok {
		delete(d.buffers, id)
		d.stats.BuffersDestroyed++
	}
}

// BufferData returns a copy of a buffer's contents.
func (d *SoftwareDevice) BufferData(id BufferID) ([]byte, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	b, ok := d.buffers[id]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out, true
}

// ApplyMaterial sets the tint for subsequent draws.
func (d *SoftwareDevice) ApplyMaterial(m Material) error {
	d.mu.Lock()
	d.material = m
	d.mu.Unlock()
	return nil
}

// DrawIndexed rasterizes the draw into the target.
func (d *SoftwareDevice) DrawIndexed(call DrawCall) error {
	if err := call.Validate(); err != nil {
		return err
	}
	if d.target == nil {
		return ErrNilTarget
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	vb, ok := d.buffers[call.VertexBuffer]
	if !ok || vb.index {
		return fmt.Errorf("%w: vertex buffer %d", ErrUnknownBuffer, call.VertexBuffer)
	}
	ib, ok := d.buffers[call.IndexBuffer]
	if !ok || !ib.index {
		return fmt.Errorf("%w: index buffer %d", ErrUnknownBuffer, call.IndexBuffer)
	}
	if call.VertexCount*tessellate.VertexStride > len(vb.data) {
		return fmt.Errorf("%w: %d vertices in %d bytes", ErrBufferTooSmall, call.VertexCount, len(vb.data))
	}
	indexCount := call.IndexCount()
	if indexCount*2 > len(ib.data) {
		return fmt.Errorf("%w: %d indices in %d bytes", ErrBufferTooSmall, indexCount, len(ib.data))
	}

	vertex := func(i int) (tessellate.Vertex, error) {
		idx := int(binary.LittleEndian.Uint16(ib.data[i*2:]))
		if idx >= call.VertexCount {
			return tessellate.Vertex{}, fmt.Errorf("%w: index %d out of %d vertices", ErrInvalidDraw, idx, call.VertexCount)
		}
		return tessellate.DecodeVertex(vb.data[idx*tessellate.VertexStride:]), nil
	}

	var corner func(k int) (a, b, c int)
	switch call.Topology {
	case gputypes.PrimitiveTopologyTriangleStrip:
		corner = func(k int) (int, int, int) { return k, k + 1, k + 2 }
	case gputypes.PrimitiveTopologyTriangleList:
		corner = func(k int) (int, int, int) { return 3 * k, 3*k + 1, 3*k + 2 }
	default:
		return fmt.Errorf("%w: unsupported topology %v", ErrInvalidDraw, call.Topology)
	}

	w, h := d.target.Width(), d.target.Height()
	z := d.raster
	z.Reset(w, h)

	var (
		shade  color.RGBA
		filled int
	)
	for k := 0; k < call.PrimitiveCount; k++ {
		ia, ib, ic := corner(k)
		a, err := vertex(ia)
		if err != nil {
			return err
		}
		b, err := vertex(ib)
		if err != nil {
			return err
		}
		c, err := vertex(ic)
		if err != nil {
			return err
		}
		if k == 0 {
			shade = modulate(a.Color, d.material.Tint)
		}
		if addTriangle(z, a, b, c) {
			filled++
		}
	}

	d.stats.Draws++
	d.stats.Primitives += call.PrimitiveCount
	if filled == 0 {
		return nil
	}
	dst := d.target.Image()
	z.DrawOp = draw.Over
	z.Draw(dst, dst.Bounds(), image.NewUniform(shade), image.Point{})
	return nil
}

// addTriangle appends one triangle to the rasterizer path. Strip triangles
// alternate winding; they are normalized to one orientation so shared
// edges accumulate instead of cancelling. Zero-area triangles are skipped.
func addTriangle(z *vector.Rasterizer, a, b, c tessellate.Vertex) bool {
	ax, ay := a.Position[0], a.Position[1]
	bx, by := b.Position[0], b.Position[1]
	cx, cy := c.Position[0], c.Position[1]

	area := (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
	if area == 0 {
		return false
	}
	if area < 0 {
		bx, by, cx, cy = cx, cy, bx, by
	}
	z.MoveTo(ax, ay)
	z.LineTo(bx, by)
	z.LineTo(cx, cy)
	z.ClosePath()
	return true
}

// modulate multiplies two premultiplied colours channel by channel.
func modulate(c, tint color.RGBA) color.RGBA {
	mul := func(x, y uint8) uint8 {
		return uint8((uint16(x)*uint16(y) + 127) / 255) //nolint:gosec // result <= 255
	}
	return color.RGBA{
		R: mul(c.R, tint.R),
		G: mul(c.G, tint.G),
		B: mul(c.B, tint.B),
		A: mul(c.A, tint.A),
	}
}

// Ensure SoftwareDevice implements Device.
var _ Device = (*SoftwareDevice)(nil)
