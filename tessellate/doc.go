// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package tessellate converts polylines into constant-width ribbon meshes.
//
// A ribbon is built by offsetting every polyline point along the unit
// perpendicular of its segment, once to each side. A curve of n points
// produces 2n vertices that form a continuous triangle strip:
//
//	A0    A1    A2          side A = point + perpendicular
//	| \   | \   |
//	|  \  |  \  |
//	B0    B1    B2          side B = point - perpendicular
//
// Indexed with the identity sequence 0..2n-1 the strip yields 2(n-1)
// triangles. The half-width is one builder-space unit; scaling is left to
// the viewport mapping and the material.
//
// # Storage
//
// [Builder] owns its vertex and index arrays. They are allocated by
// [Builder.Allocate] and overwritten in place by every [Builder.Rebuild].
// Callers must not retain the slices returned by [Builder.Vertices] across
// a rebuild, and must not rebuild while another goroutine reads them.
//
// # Degenerate Segments
//
// Duplicate consecutive points give a zero-length direction with no
// perpendicular. The builder reuses the perpendicular of the previous
// segment (or [DefaultPerpendicular] on the first segment) so the strip
// never contains NaN positions.
package tessellate
