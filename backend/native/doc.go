// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package native implements render.Device on top of gogpu/wgpu HAL.
//
// The host owns the GPU device, the command encoder and the render pass.
// A [Device] allocates ribbon buffers on the host's hal.Device, uploads
// through its hal.Queue and records draws into the hal.RenderPassEncoder
// passed to [Device.BeginPass]:
//
//	dev, err := native.NewDeviceFromProvider(provider)
//	if err != nil {
//	    return err
//	}
//	defer dev.Destroy()
//
//	rp := encoder.BeginRenderPass(passDesc)
//	dev.BeginPass(rp, width, height)
//	err = frame.Execute() // curves draw through dev
//	dev.EndPass()
//	rp.End()
//	// ...more passes, then submit and wait on the fence...
//	dev.Submitted()
//
// Submitted marks the point where recorded commands no longer reference
// device resources. Uniform slots are recycled and buffers destroyed in
// the meantime are freed only then.
//
// The pipeline draws indexed triangle strips with 16-bit indices and
// premultiplied alpha blending. Its WGSL shader is compiled to SPIR-V with
// gogpu/naga when the pipeline is first needed.
package native
