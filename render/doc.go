// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render provides the integration layer between ribbon and graphics
// devices.
//
// # Key Principle
//
// ribbon RECEIVES a graphics device from the host application, it does NOT
// create its own. The host owns the device, the render loop and the passes;
// drawables only allocate buffers and issue draws when a pass runs them.
//
// # Core Types
//
//   - Device: buffer lifecycle and indexed draws
//   - DrawCall: one draw with explicit topology and counts
//   - Material: per-draw shading state
//   - Frame and Pass: per-frame registration and priority-ordered execution
//   - LineDrawer: diagnostic line output
//
// # Device Implementations
//
//   - SoftwareDevice: CPU rasterization into a PixmapTarget
//   - backend/native.Device: wgpu HAL device with a triangle-strip pipeline
//
// # Usage
//
// Software rendering:
//
//	target := render.NewPixmapTarget(800, 600)
//	dev := render.NewSoftwareDevice(target)
//	frame := render.NewFrame("world")
//
//	frame.Begin()
//	_ = curve.Draw(frame)
//	if err := frame.Execute(); err != nil {
//	    log.Fatal(err)
//	}
//	img := target.Image()
package render
