// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// Key principle: ribbon RECEIVES the device from the host, it does NOT
// create one. Backends that need HAL access (backend/native) type-assert
// the provider for HalDevice/HalQueue.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider.
type DeviceHandle = gpucontext.DeviceProvider

// BufferID is an opaque handle to a device buffer.
type BufferID uint64

// InvalidBuffer is the zero BufferID. No device returns it for a live buffer.
const InvalidBuffer BufferID = 0

// Device errors.
var (
	// ErrUnknownBuffer is returned when a BufferID does not name a live buffer.
	ErrUnknownBuffer = errors.New("render: unknown buffer")

	// ErrBufferTooSmall is returned when a write or draw exceeds buffer size.
	ErrBufferTooSmall = errors.New("render: buffer too small")

	// ErrInvalidDraw is returned for malformed draw calls.
	ErrInvalidDraw = errors.New("render: invalid draw call")

	// ErrInvalidBufferSize is returned when creating a buffer of size <= 0.
	ErrInvalidBufferSize = errors.New("render: invalid buffer size")
)

// Material is the per-draw shading state applied before a draw call.
type Material struct {
	// Tint multiplies the vertex colour.
	Tint color.RGBA
}

// DrawCall describes one indexed draw.
type DrawCall struct {
	// Topology is the primitive topology; ribbons use TriangleStrip.
	Topology gputypes.PrimitiveTopology

	// VertexBuffer and IndexBuffer are bound for the draw.
	VertexBuffer BufferID
	IndexBuffer  BufferID

	// VertexCount is the number of vertices (and identity indices) drawn.
	VertexCount int

	// PrimitiveCount is the number of primitives; for a triangle strip it
	// is VertexCount - 2.
	PrimitiveCount int
}

// IndexCount returns the number of indices consumed by the draw.
func (c DrawCall) IndexCount() int {
	switch c.Topology {
	case gputypes.PrimitiveTopologyTriangleStrip:
		return c.PrimitiveCount + 2
	case gputypes.PrimitiveTopologyTriangleList:
		return c.PrimitiveCount * 3
	case gputypes.PrimitiveTopologyLineStrip:
		return c.PrimitiveCount + 1
	case gputypes.PrimitiveTopologyLineList:
		return c.PrimitiveCount * 2
	default:
		return c.PrimitiveCount
	}
}

// Validate checks the draw call for obvious errors.
func (c DrawCall) Validate() error {
	if c.VertexBuffer == InvalidBuffer || c.IndexBuffer == InvalidBuffer {
		return fmt.Errorf("%w: missing vertex or index buffer", ErrInvalidDraw)
	}
	if c.PrimitiveCount <= 0 {
		return fmt.Errorf("%w: primitive count %d", ErrInvalidDraw, c.PrimitiveCount)
	}
	if c.IndexCount() > c.VertexCount {
		return fmt.Errorf("%w: %d indices for %d vertices", ErrInvalidDraw, c.IndexCount(), c.VertexCount)
	}
	return nil
}

// Device is the buffer and draw API a drawable needs from the graphics
// device. Implementations: SoftwareDevice (CPU) and backend/native (wgpu HAL).
//
// Devices are used from the thread that owns the graphics device and are
// not required to be safe for concurrent use.
type Device interface {
	// CreateVertexBuffer allocates a writable vertex buffer of size bytes.
	CreateVertexBuffer(label string, size int) (BufferID, error)

	// CreateIndexBuffer allocates an index buffer initialized with indices.
	// Its contents never change afterwards.
	CreateIndexBuffer(label string, indices []uint16) (BufferID, error)

	// WriteBuffer copies data into a buffer at offset.
	WriteBuffer(id BufferID, offset uint64, data []byte) error

	// DestroyBuffer releases a buffer. Unknown IDs are ignored.
	DestroyBuffer(id BufferID)

	// ApplyMaterial sets the shading state for subsequent draws.
	ApplyMaterial(m Material) error

	// DrawIndexed issues one indexed draw with explicit counts.
	DrawIndexed(call DrawCall) error
}

// NullDeviceHandle is a DeviceHandle that provides nil implementations.
// Used for CPU-only rendering where no GPU is available.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// AdapterInfo reports a software adapter.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "null", Type: gpucontext.AdapterTypeSoftware}
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}
