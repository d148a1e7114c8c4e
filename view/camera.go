// Package view keeps the 2D and 3D renderers in lock-step.
//
// Exactly one Camera exists per design session. Both the 2D screen
// transform and the 3D projection are derived from it on demand; the
// renderers never hold their own copy of pan/zoom state, so the two
// views cannot drift apart.
package view

import "math"

// Zoom limits. The same clamp applies to wheel, pinch and programmatic
// zoom so no input path can escape the range.
const (
	MinScale = 0.001
	MaxScale = 10000
	// ZoomStep is the per-wheel-notch scale factor.
	ZoomStep = 1.25
)

// Camera is the shared view state: the world point at the center of
// both views, the zoom scale (screen pixels per local-frame metre) and
// the view rotation in radians. It is the single source of truth; the
// 2D transform and the 3D frustum/zoom are pure functions of it plus
// the viewport size.
type Camera struct {
	// CentroidX, CentroidY is the world coordinate at the view center.
	CentroidX, CentroidY float64
	// Scale is pixels per metre.
	Scale float64
	// Rotation is radians counter-clockwise.
	Rotation float64
}

// DefaultCamera returns a camera at the world origin with 1:1 scale.
func DefaultCamera() Camera {
	return Camera{Scale: 1}
}

// ClampScale returns the scale clamped to the supported zoom range.
func ClampScale(s float64) float64 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}

// ZoomBy multiplies the scale by factor, clamped. steps > 0 zooms in.
func (c *Camera) ZoomBy(steps float64) {
	c.Scale = ClampScale(c.Scale * math.Pow(ZoomStep, steps))
}

// PanTo recenters both views on a world coordinate.
func (c *Camera) PanTo(worldX, worldY float64) {
	c.CentroidX = worldX
	c.CentroidY = worldY
}

// PanBy shifts the center by a world-space delta.
func (c *Camera) PanBy(dx, dy float64) {
	c.CentroidX += dx
	c.CentroidY += dy
}

// Viewport is the render target size in physical pixels.
type Viewport struct {
	Width, Height int
}

// Aspect returns width/height, guarding against a zero height.
func (v Viewport) Aspect() float64 {
	if v.Height == 0 {
		return 1
	}
	return float64(v.Width) / float64(v.Height)
}
