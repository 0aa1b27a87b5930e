// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"
	"image/color"
	"log/slog"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/ribbon/render"
	"github.com/gogpu/ribbon/tessellate"
	"github.com/gogpu/wgpu/hal"
)

type halBuffer struct {
	buf   hal.Buffer
	size  uint64
	index bool

	// recorded is set once a draw since the last Submitted binds the buffer.
	recorded bool
}

// Device implements render.Device on a host-owned hal.Device.
//
// Buffers are created with the HAL device and written through the queue.
// Draws are recorded into the render pass set by BeginPass. The device
// never submits; the host finishes its encoder, submits, and then calls
// Submitted. Until then uniform slots stay reserved and buffers destroyed
// after being recorded are kept alive, since recorded commands still
// reference them.
type Device struct {
	mu sync.Mutex

	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat

	buffers map[render.BufferID]*halBuffer
	nextID  render.BufferID

	pipeline *stripPipeline
	slots    []*uniformSlot
	slotNext int
	tint     color.RGBA

	// recorded lists buffers bound by draws since the last Submitted;
	// retired holds destroyed buffers that were among them.
	recorded []*halBuffer
	retired  []hal.Buffer

	pass          hal.RenderPassEncoder
	width, height uint32

	log       *slog.Logger
	destroyed bool
}

// NewDevice wraps a HAL device and queue. format is the colour format of
// the render targets the device draws into; TextureFormatUndefined selects
// BGRA8Unorm.
func NewDevice(device hal.Device, queue hal.Queue, format gputypes.TextureFormat) *Device {
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}
	return &Device{
		device:  device,
		queue:   queue,
		format:  format,
		buffers: make(map[render.BufferID]*halBuffer),
		nextID:  1,
		tint:    color.RGBA{R: 255, G: 255, B: 255, A: 255},
		log:     slog.New(slog.DiscardHandler),
	}
}

// NewDeviceFromProvider takes the HAL device and queue from a host
// provider. The provider must implement HalDevice() any and HalQueue() any
// returning hal.Device and hal.Queue; its surface format is used for the
// pipeline.
func NewDeviceFromProvider(provider render.DeviceHandle) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNotHALProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNotHALProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNotHALProvider)
	}
	return NewDevice(device, queue, provider.SurfaceFormat()), nil
}

// SetLogger sets the device logger. nil disables logging.
func (d *Device) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	d.mu.Lock()
	d.log = l
	d.mu.Unlock()
}

// Format returns the colour target format of the pipeline.
func (d *Device) Format() gputypes.TextureFormat {
	return d.format
}

// BeginPass directs subsequent draws into rp, a pass over a target of
// width x height pixels. Several passes may be recorded before one submit;
// each draw keeps its own uniform slot until Submitted.
func (d *Device) BeginPass(rp hal.RenderPassEncoder, width, height uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pass = rp
	d.width, d.height = width, height
}

// EndPass detaches the render pass. The host still ends the pass itself.
func (d *Device) EndPass() {
	d.mu.Lock()
	d.pass = nil
	d.mu.Unlock()
}

// Submitted tells the device that every command recorded so far has been
// submitted and completed or fenced by the host. Uniform slots become
// reusable and buffers destroyed while in use are freed.
func (d *Device) Submitted() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.slotNext = 0
	for _, hb := range d.recorded {
		hb.recorded = false
	}
	clear(d.recorded)
	d.recorded = d.recorded[:0]
	if d.destroyed {
		return
	}
	d.freeRetired()
}

func (d *Device) freeRetired() {
	for _, buf := range d.retired {
		d.device.DestroyBuffer(buf)
	}
	if len(d.retired) > 0 {
		d.log.Debug("native: retired buffers freed", "count", len(d.retired))
	}
	clear(d.retired)
	d.retired = d.retired[:0]
}

func (d *Device) createBuffer(label string, size uint64, usage gputypes.BufferUsage, index bool) (render.BufferID, *halBuffer, error) {
	if d.destroyed {
		return render.InvalidBuffer, nil, ErrDeviceDestroyed
	}
	// Buffer sizes and writes are 4-byte aligned.
	size = (size + 3) &^ 3
	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: usage,
	})
	if err != nil {
		return render.InvalidBuffer, nil, fmt.Errorf("native: create buffer %q: %w", label, err)
	}
	hb := &halBuffer{buf: buf, size: size, index: index}
	id := d.nextID
	d.nextID++
	d.buffers[id] = hb
	d.log.Debug("native: buffer created", "label", label, "id", id, "size", size)
	return id, hb, nil
}

// CreateVertexBuffer allocates a vertex buffer of at least size bytes.
func (d *Device) CreateVertexBuffer(label string, size int) (render.BufferID, error) {
	if size <= 0 {
		return render.InvalidBuffer, fmt.Errorf("%w: %d", render.ErrInvalidBufferSize, size)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	id, _, err := d.createBuffer(label, uint64(size), gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst, false)
	return id, err
}

// CreateIndexBuffer allocates an index buffer and uploads indices.
func (d *Device) CreateIndexBuffer(label string, indices []uint16) (render.BufferID, error) {
	if len(indices) == 0 {
		return render.InvalidBuffer, fmt.Errorf("%w: no indices", render.ErrInvalidBufferSize)
	}
	data := tessellate.EncodeIndices(indices)

	d.mu.Lock()
	defer d.mu.Unlock()
	id, hb, err := d.createBuffer(label, uint64(len(data)), gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst, true)
	if err != nil {
		return render.InvalidBuffer, err
	}
	if err := d.queue.WriteBuffer(hb.buf, 0, data); err != nil {
		d.device.DestroyBuffer(hb.buf)
		delete(d.buffers, id)
		return render.InvalidBuffer, fmt.Errorf("native: upload indices: %w", err)
	}
	return id, nil
}

// WriteBuffer writes data into a vertex buffer through the queue.
func (d *Device) WriteBuffer(id render.BufferID, offset uint64, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.destroyed {
		return ErrDeviceDestroyed
	}
	hb, ok := d.buffers[id]
	if !ok {
		return fmt.Errorf("%w: %d", render.ErrUnknownBuffer, id)
	}
	if hb.index {
		return fmt.Errorf("native: buffer %d is an index buffer and cannot be written", id)
	}
	if offset+uint64(len(data)) > hb.size {
		return fmt.Errorf("%w: write of %d bytes at %d into %d", render.ErrBufferTooSmall, len(data), offset, hb.size)
	}
	if err := d.queue.WriteBuffer(hb.buf, offset, data); err != nil {
		return fmt.Errorf("native: write buffer %d: %w", id, err)
	}
	return nil
}

// DestroyBuffer releases a buffer. Unknown IDs are ignored. A buffer bound
// by a draw since the last Submitted is freed at the next Submitted or
// Destroy instead of immediately.
func (d *Device) DestroyBuffer(id render.BufferID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	hb, ok := d.buffers[id]
	if !ok {
		return
	}
	delete(d.buffers, id)
	if d.destroyed {
		return
	}
	if hb.recorded {
		d.retired = append(d.retired, hb.buf)
		d.log.Debug("native: buffer retired", "id", id)
		return
	}
	d.device.DestroyBuffer(hb.buf)
	d.log.Debug("native: buffer destroyed", "id", id)
}

// RetiredBuffers returns the number of destroyed buffers waiting for
// Submitted.
func (d *Device) RetiredBuffers() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.retired)
}

// LiveBuffers returns the number of buffers not yet destroyed.
func (d *Device) LiveBuffers() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.buffers)
}

// ApplyMaterial sets the tint for subsequent draws.
func (d *Device) ApplyMaterial(m render.Material) error {
	d.mu.Lock()
	d.tint = m.Tint
	d.mu.Unlock()
	return nil
}

// DrawIndexed records a strip draw into the active pass. The pipeline is
// created on the first draw.
func (d *Device) DrawIndexed(call render.DrawCall) error {
	if err := call.Validate(); err != nil {
		return err
	}
	if call.Topology != gputypes.PrimitiveTopologyTriangleStrip {
		return fmt.Errorf("%w: %v", ErrUnsupportedTopology, call.Topology)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.destroyed {
		return ErrDeviceDestroyed
	}
	if d.pass == nil {
		return ErrNoRenderPass
	}
	vb, ok := d.buffers[call.VertexBuffer]
	if !ok || vb.index {
		return fmt.Errorf("%w: vertex buffer %d", render.ErrUnknownBuffer, call.VertexBuffer)
	}
	ib, ok := d.buffers[call.IndexBuffer]
	if !ok || !ib.index {
		return fmt.Errorf("%w: index buffer %d", render.ErrUnknownBuffer, call.IndexBuffer)
	}
	if uint64(call.VertexCount*tessellate.VertexStride) > vb.size {
		return fmt.Errorf("%w: %d vertices in %d bytes", render.ErrBufferTooSmall, call.VertexCount, vb.size)
	}
	indexCount := call.IndexCount()
	if uint64(indexCount*2) > ib.size {
		return fmt.Errorf("%w: %d indices in %d bytes", render.ErrBufferTooSmall, indexCount, ib.size)
	}

	if err := d.ensurePipeline(); err != nil {
		return err
	}
	slot, err := d.nextSlot()
	if err != nil {
		return err
	}
	if err := d.queue.WriteBuffer(slot.buf, 0, makeUniform(d.width, d.height, d.tint)); err != nil {
		return fmt.Errorf("native: write uniforms: %w", err)
	}

	d.markRecorded(vb)
	d.markRecorded(ib)

	rp := d.pass
	rp.SetPipeline(d.pipeline.pipeline)
	rp.SetBindGroup(0, slot.bindGroup, nil)
	rp.SetVertexBuffer(0, vb.buf, 0)
	rp.SetIndexBuffer(ib.buf, gputypes.IndexFormatUint16, 0)
	rp.DrawIndexed(uint32(indexCount), 1, 0, 0, 0) //nolint:gosec // indexCount <= 65536
	return nil
}

func (d *Device) markRecorded(hb *halBuffer) {
	if !hb.recorded {
		hb.recorded = true
		d.recorded = append(d.recorded, hb)
	}
}

func (d *Device) ensurePipeline() error {
	if d.pipeline != nil {
		return nil
	}
	p, err := newStripPipeline(d.device, d.format)
	if err != nil {
		return fmt.Errorf("native: %w", err)
	}
	d.pipeline = p
	d.log.Debug("native: ribbon pipeline created", "format", d.format)
	return nil
}

// nextSlot returns an unused uniform slot, growing the pool when more draws
// were recorded since the last Submitted than ever before.
func (d *Device) nextSlot() (*uniformSlot, error) {
	if d.slotNext < len(d.slots) {
		s := d.slots[d.slotNext]
		d.slotNext++
		return s, nil
	}
	s, err := newUniformSlot(d.device, d.pipeline.uniformLayout)
	if err != nil {
		return nil, fmt.Errorf("native: %w", err)
	}
	d.slots = append(d.slots, s)
	d.slotNext++
	return s, nil
}

// Destroy releases every buffer, uniform slot and pipeline object. Safe to
// call multiple times. The host's device and queue are not destroyed.
func (d *Device) Destroy() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.destroyed {
		return
	}
	for id, hb := range d.buffers {
		d.device.DestroyBuffer(hb.buf)
		delete(d.buffers, id)
	}
	d.freeRetired()
	d.recorded = nil
	for _, s := range d.slots {
		s.destroy(d.device)
	}
	d.slots = nil
	if d.pipeline != nil {
		d.pipeline.destroy(d.device)
		d.pipeline = nil
	}
	d.pass = nil
	d.destroyed = true
	d.log.Debug("native: device destroyed")
}

// Ensure Device implements render.Device.
var _ render.Device = (*Device)(nil)
