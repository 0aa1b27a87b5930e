// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import "errors"

// Native device errors.
var (
	// ErrNoRenderPass is returned by DrawIndexed outside BeginPass/EndPass.
	ErrNoRenderPass = errors.New("native: no active render pass")

	// ErrNotHALProvider is returned when a device provider does not expose
	// HAL device and queue.
	ErrNotHALProvider = errors.New("native: provider does not expose HAL types")

	// ErrDeviceDestroyed is returned when a destroyed device is used.
	ErrDeviceDestroyed = errors.New("native: device destroyed")

	// ErrUnsupportedTopology is returned for draws the strip pipeline cannot
	// execute.
	ErrUnsupportedTopology = errors.New("native: unsupported primitive topology")
)
