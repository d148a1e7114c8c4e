// Copyright 2026 The openpit Authors
// SPDX-License-Identifier: MIT

package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// The host (the windowing shell that owns the swapchain) implements
// gpucontext.DeviceProvider and passes it in; the render layer RECEIVES
// the device, it does not create one. Shared resource management and
// zero device-creation overhead follow from that.
//
// DeviceHandle is an alias so the render package has its own name for
// the interface while staying fully compatible with the gpucontext
// ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

// Uploader pushes finished vertex data to the device. It is the one
// seam between the manager's CPU-side bookkeeping and the actual GPU
// backend, so tests and the software canvas can run without a device.
type Uploader interface {
	// UploadLines creates a device buffer holding a line-strip chunk
	// and returns its reference.
	UploadLines(label string, data []float32) (BufferRef, error)

	// Release frees a device buffer. Implementations must tolerate
	// references that are already gone (after device loss).
	Release(ref BufferRef) error
}

// BufferRef identifies an uploaded device buffer.
type BufferRef uint64

// TargetDescriptor describes the offscreen target a host allocates for
// a view. It mirrors the WebGPU texture descriptor fields the render
// layer cares about.
type TargetDescriptor struct {
	Label  string
	Width  uint32
	Height uint32
	Format gputypes.TextureFormat
	// SampleCount is the multisample count; 1 means no MSAA.
	SampleCount uint32
}

// DefaultTargetDescriptor returns a descriptor with sensible defaults;
// only width and height are required.
func DefaultTargetDescriptor(width, height uint32) TargetDescriptor {
	return TargetDescriptor{
		Width:       width,
		Height:      height,
		Format:      gputypes.TextureFormatRGBA8Unorm,
		SampleCount: 1,
	}
}

// NullDeviceHandle is a DeviceHandle with nil implementations, used
// when no GPU is available (software canvas, tests).
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

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}
