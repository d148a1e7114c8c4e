package wgpu

import (
	"log/slog"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"

	"github.com/openpit/blast"
	"github.com/openpit/blast/render"
)

// Provider adapts an acquired standalone device to render.DeviceHandle,
// so a headless session hands its device to render.NewManager the same
// way a windowing host would.
type Provider struct {
	deviceID  core.DeviceID
	queueID   core.QueueID
	adapterID core.AdapterID
	format    gputypes.TextureFormat
}

var _ render.DeviceHandle = (*Provider)(nil)

// Acquire creates a device and queue on the adapter and wraps them as
// a render.DeviceHandle. target supplies the surface format the
// offscreen output will use. Callers own the result and must Release
// it when done.
func Acquire(adapterID core.AdapterID, label string, target render.TargetDescriptor) (*Provider, error) {
	deviceID, err := CreateDevice(adapterID, label)
	if err != nil {
		return nil, err
	}
	queueID, err := DeviceQueue(deviceID)
	if err != nil {
		_ = ReleaseDevice(deviceID)
		return nil, err
	}
	return NewProvider(adapterID, deviceID, queueID, target), nil
}

// NewProvider wraps already-acquired identifiers. An undefined target
// format falls back to the default descriptor's format, so the
// provider never reports undefined the way a null handle does.
func NewProvider(adapterID core.AdapterID, deviceID core.DeviceID, queueID core.QueueID, target render.TargetDescriptor) *Provider {
	format := target.Format
	if format == gputypes.TextureFormatUndefined {
		format = render.DefaultTargetDescriptor(target.Width, target.Height).Format
	}
	return &Provider{
		deviceID:  deviceID,
		queueID:   queueID,
		adapterID: adapterID,
		format:    format,
	}
}

// Device returns the wrapped device.
func (p *Provider) Device() gpucontext.Device { return headlessDevice{p.deviceID} }

// Queue returns the wrapped queue.
func (p *Provider) Queue() gpucontext.Queue { return headlessQueue{p.queueID} }

// Adapter returns the wrapped adapter.
func (p *Provider) Adapter() gpucontext.Adapter { return headlessAdapter{p.adapterID} }

// SurfaceFormat returns the format offscreen targets are allocated
// with.
func (p *Provider) SurfaceFormat() gputypes.TextureFormat { return p.format }

// DeviceID exposes the raw device identifier for limit checks.
func (p *Provider) DeviceID() core.DeviceID { return p.deviceID }

// Release drops the device and adapter. Zero identifiers are no-ops,
// so releasing twice is safe.
func (p *Provider) Release() error {
	err := ReleaseDevice(p.deviceID)
	p.deviceID = core.DeviceID{}
	if aerr := ReleaseAdapter(p.adapterID); err == nil {
		err = aerr
	}
	p.adapterID = core.AdapterID{}
	return err
}

type headlessDevice struct{ id core.DeviceID }

// Poll is a no-op: the standalone upload path completes work before
// returning, so there is nothing to pump.
func (headlessDevice) Poll(wait bool) {}

func (d headlessDevice) Destroy() {
	if err := ReleaseDevice(d.id); err != nil {
		blast.Logger().Warn("device release failed", slog.Any("err", err))
	}
}

type headlessQueue struct{ id core.QueueID }

type headlessAdapter struct{ id core.AdapterID }
