package ribbon

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/ribbon/render"
	"github.com/gogpu/ribbon/tessellate"
)

// bufferManager owns the vertex and index buffers of one curve.
//
// The index buffer is created once per allocation and never written again.
// The vertex buffer is fully overwritten every frame. staging is the encoded
// vertex data, reused across frames while its capacity suffices.
type bufferManager struct {
	device render.Device
	log    *slog.Logger

	vertex render.BufferID
	index  render.BufferID

	// stale buffers no longer match the curve size and are replaced by
	// the next ensure.
	stale bool

	staging []byte
}

// invalidate marks the buffers for replacement at the next draw. The
// device is not touched until then.
func (m *bufferManager) invalidate() {
	if m.vertex != render.InvalidBuffer || m.index != render.InvalidBuffer {
		m.stale = true
	}
}

// ensure replaces stale buffers and creates any missing one. The index
// buffer is created first so the identity indices are in place before the
// first vertex upload.
func (m *bufferManager) ensure(indices []uint16, vertexBytes int) error {
	if m.stale {
		m.release()
	}
	if m.index == render.InvalidBuffer {
		id, err := m.device.CreateIndexBuffer("ribbon.indices", indices)
		if err != nil {
			return fmt.Errorf("ribbon: create index buffer: %w", err)
		}
		m.index = id
		m.log.Debug("ribbon: index buffer created", "id", id, "indices", len(indices))
	}
	if m.vertex == render.InvalidBuffer {
		id, err := m.device.CreateVertexBuffer("ribbon.vertices", vertexBytes)
		if err != nil {
			return fmt.Errorf("ribbon: create vertex buffer: %w", err)
		}
		m.vertex = id
		m.log.Debug("ribbon: vertex buffer created", "id", id, "bytes", vertexBytes)
	}
	return nil
}

// upload replaces the whole vertex buffer with vertices.
func (m *bufferManager) upload(indices []uint16, vertices []tessellate.Vertex) error {
	m.staging = tessellate.EncodeVertices(m.staging, vertices)
	if err := m.ensure(indices, len(m.staging)); err != nil {
		return err
	}
	if err := m.device.WriteBuffer(m.vertex, 0, m.staging); err != nil {
		return fmt.Errorf("ribbon: upload vertices: %w", err)
	}
	return nil
}

// draw issues the strip draw for vertexCount vertices.
func (m *bufferManager) draw(vertexCount int) error {
	call := render.DrawCall{
		Topology:       gputypes.PrimitiveTopologyTriangleStrip,
		VertexBuffer:   m.vertex,
		IndexBuffer:    m.index,
		VertexCount:    vertexCount,
		PrimitiveCount: tessellate.PrimitiveCount(vertexCount),
	}
	if err := m.device.DrawIndexed(call); err != nil {
		return fmt.Errorf("ribbon: draw: %w", err)
	}
	return nil
}

// release destroys both buffers if present. Safe to call repeatedly.
func (m *bufferManager) release() {
	m.stale = false
	if m.vertex != render.InvalidBuffer {
		m.device.DestroyBuffer(m.vertex)
		m.log.Debug("ribbon: vertex buffer released", "id", m.vertex)
		m.vertex = render.InvalidBuffer
	}
	if m.index != render.InvalidBuffer {
		m.device.DestroyBuffer(m.index)
		m.log.Debug("ribbon: index buffer released", "id", m.index)
		m.index = render.InvalidBuffer
	}
}
