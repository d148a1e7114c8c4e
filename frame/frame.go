// Package frame maintains the precision-safe local coordinate frame
// used by both renderers.
//
// World coordinates are UTM-scale (6-7 digit) values. Uploading them
// into single-precision GPU buffers exhausts the float32 mantissa and
// produces visible jitter during pan and zoom, so every vertex is
// translated into a small-magnitude local frame first. The frame is
// re-centered when the working set's centroid drifts far enough from
// the current origin that accumulated float error would grow past the
// millimetre scale; a reset bumps the frame generation, which tells
// the render layer that every GPU-resident buffer references a stale
// origin and must be regenerated.
//
// Elevation passes through unmodified: UTM elevations are already
// small in magnitude.
package frame

import (
	"log/slog"

	"cogentcore.org/core/math32"

	"github.com/openpit/blast"
)

// DefaultDriftThreshold is the centroid drift, in metres, past which
// the origin is recomputed. Half the span over which float32 keeps
// roughly millimetre resolution at UTM magnitudes.
const DefaultDriftThreshold = 10000

// Config holds frame parameters.
type Config struct {
	// DriftThreshold is the centroid drift in metres that triggers an
	// origin reset. Zero or negative means DefaultDriftThreshold.
	DriftThreshold float64
}

// DefaultConfig returns the default frame configuration.
func DefaultConfig() Config {
	return Config{DriftThreshold: DefaultDriftThreshold}
}

// Frame maps world coordinates to a small-magnitude local frame and
// back. One Frame exists per design session, owned by the session and
// shared by both renderers; it has a single writer at a time (the
// active input handler).
type Frame struct {
	originX, originY float64
	initialized      bool
	drift            float64
	generation       uint64
}

// New creates a frame with no origin. The first Reset or ObserveCentroid
// call initializes it, typically from the first loaded hole or the
// current view centroid.
func New(cfg Config) *Frame {
	d := cfg.DriftThreshold
	if d <= 0 {
		d = DefaultDriftThreshold
	}
	return &Frame{drift: d}
}

// Initialized reports whether an origin has been set.
func (f *Frame) Initialized() bool { return f.initialized }

// Origin returns the current world origin.
func (f *Frame) Origin() (x, y float64) { return f.originX, f.originY }

// Generation is incremented on every origin reset. Renderer-resident
// geometry records the generation it was built against; a mismatch
// means the buffers reference the old origin and must be rebuilt.
func (f *Frame) Generation() uint64 { return f.generation }

// Reset moves the origin and bumps the generation.
func (f *Frame) Reset(originX, originY float64) {
	f.originX = originX
	f.originY = originY
	f.initialized = true
	f.generation++
	blast.Logger().Info("local origin reset",
		slog.Float64("x", originX),
		slog.Float64("y", originY),
		slog.Uint64("generation", f.generation))
}

// ObserveCentroid feeds the current working-set centroid to the frame.
// The first observation initializes the origin; later observations
// reset it only when the centroid has drifted past the threshold.
// It returns true when a reset happened, in which case the caller must
// regenerate all renderer-resident geometry.
func (f *Frame) ObserveCentroid(cx, cy float64) bool {
	if !f.initialized {
		f.Reset(cx, cy)
		return true
	}
	dx := cx - f.originX
	dy := cy - f.originY
	if dx*dx+dy*dy <= f.drift*f.drift {
		return false
	}
	f.Reset(cx, cy)
	return true
}

// ToLocal translates a world XY into the local frame.
func (f *Frame) ToLocal(worldX, worldY float64) (lx, ly float64) {
	return worldX - f.originX, worldY - f.originY
}

// ToWorld translates a local XY back into world coordinates.
func (f *Frame) ToWorld(lx, ly float64) (worldX, worldY float64) {
	return lx + f.originX, ly + f.originY
}

// LocalPoint converts a world position into a float32 local-space
// vertex ready for a GPU buffer. The translation happens in float64;
// only the small-magnitude result is narrowed.
func (f *Frame) LocalPoint(p blast.Vec3) math32.Vector3 {
	lx, ly := f.ToLocal(p.X, p.Y)
	return math32.Vec3(float32(lx), float32(ly), float32(p.Z))
}

// WorldPoint converts a local-space vertex back to a world position.
func (f *Frame) WorldPoint(v math32.Vector3) blast.Vec3 {
	wx, wy := f.ToWorld(float64(v.X), float64(v.Y))
	return blast.V3(wx, wy, float64(v.Z))
}
