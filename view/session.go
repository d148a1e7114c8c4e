package view

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/openpit/blast"
	"github.com/openpit/blast/frame"
)

// Session owns the per-session shared state: the local coordinate
// frame and the camera synchronizer. It replaces what would otherwise
// be ambient globals with one explicitly owned context object, with a
// defined lifecycle: init on NewSession, reset-on-drift while running,
// teardown on Close.
type Session struct {
	id    string
	frame *frame.Frame
	sync  *Synchronizer

	onTeardown []func()
	closed     bool
}

// NewSession creates a session with a fresh, uninitialized frame.
func NewSession(cfg frame.Config) *Session {
	f := frame.New(cfg)
	s := &Session{
		id:    uuid.NewString(),
		frame: f,
		sync:  NewSynchronizer(f),
	}
	blast.Logger().Info("view session started", slog.String("session", s.id))
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Frame returns the session's local coordinate frame.
func (s *Session) Frame() *frame.Frame { return s.frame }

// Sync returns the session's camera synchronizer.
func (s *Session) Sync() *Synchronizer { return s.sync }

// OnTeardown registers a hook run when the session closes. The render
// layer registers its DisposeAll here so GPU resources cannot outlive
// the session.
func (s *Session) OnTeardown(fn func()) {
	s.onTeardown = append(s.onTeardown, fn)
}

// Observe feeds the working-set centroid to the frame and recenters
// the camera when the origin moved. It returns true when
// renderer-resident geometry must be regenerated.
func (s *Session) Observe(centroid blast.Vec3) bool {
	return s.frame.ObserveCentroid(centroid.X, centroid.Y)
}

// Close runs teardown hooks in reverse registration order. Closing a
// closed session is a no-op.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for i := len(s.onTeardown) - 1; i >= 0; i-- {
		s.onTeardown[i]()
	}
	blast.Logger().Info("view session closed", slog.String("session", s.id))
}
