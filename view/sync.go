package view

import (
	"log/slog"
	"math"

	"cogentcore.org/core/math32"

	"github.com/openpit/blast"
	"github.com/openpit/blast/frame"
)

// 3D projection constants. The frustum half-extents are a pure
// function of the viewport pixel size; all user zoom is expressed
// through the Zoom scalar. Resizing the frustum bounds by the zoom
// would reintroduce the precision jitter the local frame exists to
// remove, and any second code path computing bounds differently would
// visibly disagree with the first.
const (
	nearPlane = 0.1
	farPlane  = 100000
	// camElevation is where the 3D camera sits above the local frame's
	// zero elevation when looking straight down.
	camElevation = 10000
	// perspectiveFOV is the vertical field of view in degrees for the
	// perspective projection mode.
	perspectiveFOV = 30
)

// Config3D is everything the 3D renderer needs for a frame: the
// projection and view matrices plus the zoom scalar. It is produced
// fresh from (Camera, Viewport) on every request and never cached by
// the renderer.
type Config3D struct {
	Projection math32.Matrix4
	View       math32.Matrix4
	// Zoom carries the user zoom; the projection bounds never do.
	Zoom float32
}

// Synchronizer derives both renderers' view parameters from the one
// shared Camera. Construct one per session with the session's frame.
type Synchronizer struct {
	frame *frame.Frame
	cam   Camera
	vp    Viewport

	// perspective switches the 3D projection from orthographic to
	// perspective; the 2D view is unaffected.
	perspective bool
}

// NewSynchronizer creates a synchronizer over the session's local
// coordinate frame.
func NewSynchronizer(f *frame.Frame) *Synchronizer {
	return &Synchronizer{frame: f, cam: DefaultCamera()}
}

// Camera returns the current shared camera state.
func (s *Synchronizer) Camera() Camera { return s.cam }

// SetCamera replaces the shared camera state. Scale is clamped.
func (s *Synchronizer) SetCamera(c Camera) {
	c.Scale = ClampScale(c.Scale)
	s.cam = c
}

// Viewport returns the current viewport.
func (s *Synchronizer) Viewport() Viewport { return s.vp }

// Resize records a new viewport pixel size. It never touches the
// camera: zoom state survives a window resize unchanged.
func (s *Synchronizer) Resize(width, height int) {
	s.vp = Viewport{Width: width, Height: height}
	blast.Logger().Debug("viewport resized",
		slog.Int("width", width), slog.Int("height", height))
}

// Zoom applies wheel/pinch zoom steps to the shared camera. Both
// views pick the change up on their next transform request.
func (s *Synchronizer) Zoom(steps float64) {
	s.cam.ZoomBy(steps)
}

// Pan shifts the shared center by a world-space delta.
func (s *Synchronizer) Pan(dx, dy float64) {
	s.cam.PanBy(dx, dy)
}

// SetPerspective switches the 3D projection mode.
func (s *Synchronizer) SetPerspective(on bool) { s.perspective = on }

// Transform2D returns the local-frame to screen-pixel transform for
// the 2D canvas: screen = center + scale·rotate(local − pan), with Y
// flipped (screen Y grows downward).
func (s *Synchronizer) Transform2D() Matrix {
	panX, panY := s.frame.ToLocal(s.cam.CentroidX, s.cam.CentroidY)
	m := Translate(float64(s.vp.Width)/2, float64(s.vp.Height)/2)
	m = m.Multiply(Scale(s.cam.Scale, -s.cam.Scale))
	m = m.Multiply(Rotate(s.cam.Rotation))
	return m.Multiply(Translate(-panX, -panY))
}

// WorldAtScreen maps a screen pixel back to world coordinates, for
// picking and cursor readout.
func (s *Synchronizer) WorldAtScreen(sx, sy float64) (wx, wy float64, ok bool) {
	inv, ok := s.Transform2D().Invert()
	if !ok {
		return 0, 0, false
	}
	lx, ly := inv.Apply(sx, sy)
	wx, wy = s.frame.ToWorld(lx, ly)
	return wx, wy, true
}

// Config3D returns the 3D camera configuration for the current camera
// and viewport. The projection is a pure function of the viewport
// pixel size (and the projection mode); pan enters through the view
// matrix and zoom only through the Zoom scalar, so wheel, pinch and
// resize paths cannot disagree.
func (s *Synchronizer) Config3D() Config3D {
	var cfg Config3D

	w := float32(s.vp.Width)
	h := float32(s.vp.Height)
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	if s.perspective {
		cfg.Projection.SetPerspective(perspectiveFOV, w/h, nearPlane, farPlane)
	} else {
		cfg.Projection.SetOrthographic(w, h, nearPlane, farPlane)
	}

	panX, panY := s.frame.ToLocal(s.cam.CentroidX, s.cam.CentroidY)
	pos := math32.Vec3(float32(panX), float32(panY), camElevation)
	target := math32.Vec3(float32(panX), float32(panY), 0)
	up := math32.Vec3(
		float32(-math.Sin(s.cam.Rotation)),
		float32(math.Cos(s.cam.Rotation)),
		0,
	)

	var lookq math32.Quat
	lookq.SetFromRotationMatrix(math32.NewLookAt(pos, target, up))
	var pose math32.Matrix4
	pose.SetTransform(pos, lookq, math32.Vec3(1, 1, 1))
	view, _ := pose.Inverse()
	cfg.View = *view

	cfg.Zoom = float32(s.cam.Scale)
	return cfg
}
