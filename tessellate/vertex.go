// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package tessellate

import (
	"encoding/binary"
	"image/color"
	"math"
)

// VertexStride is the byte stride per vertex in the encoded vertex buffer.
// Layout per vertex:
//
//	position (vec3<f32>)   = 12 bytes (location 0)
//	texcoord (vec2<f32>)   =  8 bytes (location 1)
//	color    (unorm8x4)    =  4 bytes (location 2)
//
// Total = 24 bytes per vertex.
const VertexStride = 24

// Vertex is a single ribbon vertex.
type Vertex struct {
	Position [3]float32
	TexCoord [2]float32
	Color    color.RGBA
}

// EncodeVertices packs vertices into dst using the [VertexStride] layout,
// growing dst only when its capacity is too small. Returns the encoded
// slice, which aliases dst when dst was large enough.
func EncodeVertices(dst []byte, vertices []Vertex) []byte {
	needed := len(vertices) * VertexStride
	if cap(dst) < needed {
		dst = make([]byte, needed)
	} else {
		dst = dst[:needed]
	}
	for i := range vertices {
		writeVertex(dst[i*VertexStride:], &vertices[i])
	}
	return dst
}

// DecodeVertex reads one vertex from buf, which must hold at least
// VertexStride bytes.
func DecodeVertex(buf []byte) Vertex {
	var v Vertex
	v.Position[0] = math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4]))
	v.Position[1] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4:8]))
	v.Position[2] = math.Float32frombits(binary.LittleEndian.Uint32(buf[8:12]))
	v.TexCoord[0] = math.Float32frombits(binary.LittleEndian.Uint32(buf[12:16]))
	v.TexCoord[1] = math.Float32frombits(binary.LittleEndian.Uint32(buf[16:20]))
	v.Color = color.RGBA{R: buf[20], G: buf[21], B: buf[22], A: buf[23]}
	return v
}

func writeVertex(buf []byte, v *Vertex) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(v.TexCoord[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(v.TexCoord[1]))
	buf[20] = v.Color.R
	buf[21] = v.Color.G
	buf[22] = v.Color.B
	buf[23] = v.Color.A
}

// EncodeIndices packs 16-bit indices little-endian. The result is padded
// to a multiple of four bytes, as required for GPU buffer writes.
func EncodeIndices(indices []uint16) []byte {
	size := (len(indices)*2 + 3) &^ 3
	buf := make([]byte, size)
	for i, idx := range indices {
		binary.LittleEndian.PutUint16(buf[i*2:], idx)
	}
	return buf
}
