// Package wgpu acquires and releases a standalone WebGPU device for
// headless operation (tests, batch exports) where no windowing host
// provides one. Acquire wraps the result as a render.DeviceHandle, so
// the render manager sees the same provider shape either way.
// Interactive sessions receive their device from the host instead and
// never touch this package.
package wgpu

import (
	"fmt"
	"log/slog"

	types "github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"

	"github.com/openpit/blast"
)

// GPUInfo describes the selected adapter.
type GPUInfo struct {
	Name       string
	Vendor     string
	DeviceType types.DeviceType
	Backend    types.Backend
	Driver     string
}

// String returns a human-readable description of the GPU.
func (g *GPUInfo) String() string {
	return fmt.Sprintf("%s (%s, %s)", g.Name, g.DeviceType, g.Backend)
}

// AdapterInfo retrieves information about a GPU adapter.
func AdapterInfo(adapterID core.AdapterID) (*GPUInfo, error) {
	info, err := core.GetAdapterInfo(adapterID)
	if err != nil {
		return nil, fmt.Errorf("wgpu: adapter info: %w", err)
	}
	return &GPUInfo{
		Name:       info.Name,
		Vendor:     info.Vendor,
		DeviceType: info.DeviceType,
		Backend:    info.Backend,
		Driver:     info.Driver,
	}, nil
}

// CreateDevice creates a logical device from an adapter.
func CreateDevice(adapterID core.AdapterID, label string) (core.DeviceID, error) {
	desc := &types.DeviceDescriptor{
		Label:            label,
		RequiredFeatures: nil,
		RequiredLimits:   types.DefaultLimits(),
	}
	deviceID, err := core.RequestDevice(adapterID, desc)
	if err != nil {
		return core.DeviceID{}, fmt.Errorf("wgpu: create device: %w", err)
	}
	if info, err := AdapterInfo(adapterID); err == nil {
		blast.Logger().Info("GPU device acquired",
			slog.String("gpu", info.String()),
			slog.String("driver", info.Driver))
	}
	return deviceID, nil
}

// DeviceQueue retrieves the queue associated with a device.
func DeviceQueue(deviceID core.DeviceID) (core.QueueID, error) {
	queueID, err := core.GetDeviceQueue(deviceID)
	if err != nil {
		return core.QueueID{}, fmt.Errorf("wgpu: device queue: %w", err)
	}
	return queueID, nil
}

// ReleaseDevice releases a device and its associated resources.
// Releasing a zero device is a no-op.
func ReleaseDevice(deviceID core.DeviceID) error {
	if deviceID.IsZero() {
		return nil
	}
	if err := core.DeviceDrop(deviceID); err != nil {
		return fmt.Errorf("wgpu: release device: %w", err)
	}
	return nil
}

// ReleaseAdapter releases an adapter. Releasing a zero adapter is a
// no-op.
func ReleaseAdapter(adapterID core.AdapterID) error {
	if adapterID.IsZero() {
		return nil
	}
	if err := core.AdapterDrop(adapterID); err != nil {
		return fmt.Errorf("wgpu: release adapter: %w", err)
	}
	return nil
}

// CheckDeviceLimits verifies a device can hold the buffer sizes the
// render layer produces at its chunk ceiling. Chunks are capped
// client-side, so a failure here means a severely limited device.
func CheckDeviceLimits(deviceID core.DeviceID, minBufferBytes uint64) error {
	limits, err := core.GetDeviceLimits(deviceID)
	if err != nil {
		return fmt.Errorf("wgpu: device limits: %w", err)
	}
	if !limitsFit(uint64(limits.MaxBufferSize), minBufferBytes) {
		return fmt.Errorf("wgpu: max buffer size %d below required %d",
			limits.MaxBufferSize, minBufferBytes)
	}
	blast.Logger().Debug("device limits",
		slog.Uint64("max_buffer_size", uint64(limits.MaxBufferSize)),
		slog.Uint64("max_texture_2d", uint64(limits.MaxTextureDimension2D)))
	return nil
}

// limitsFit reports whether a buffer of minBufferBytes fits within the
// device's maximum buffer size.
func limitsFit(maxBufferSize, minBufferBytes uint64) bool {
	return maxBufferSize >= minBufferBytes
}
