package render

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"

	"github.com/openpit/blast"
	"github.com/openpit/blast/cache"
	"github.com/openpit/blast/frame"
)

// Config holds manager parameters.
type Config struct {
	// ChunkCeiling is the maximum vertices per uploaded chunk. Zero
	// means DefaultChunkCeiling.
	ChunkCeiling int
}

// DefaultConfig returns the default manager configuration.
func DefaultConfig() Config {
	return Config{ChunkCeiling: DefaultChunkCeiling}
}

// Handle is a tracked renderable resource: the chunked geometry and
// shared material for one entity. Handles are owned exclusively by the
// Manager; the geometry and selection layers never alias them.
type Handle struct {
	// Key is the entity identity the handle was built for.
	Key string
	// Generation is the frame generation the vertices were translated
	// against. A mismatch with the current frame generation means the
	// buffers reference a stale origin.
	Generation uint64

	Chunks   []Chunk
	Material *Material

	disposed bool
}

// Disposed reports whether the handle has been released.
func (h *Handle) Disposed() bool { return h.disposed }

// VertexCount returns the total vertices across chunks.
func (h *Handle) VertexCount() int {
	n := 0
	for _, c := range h.Chunks {
		n += len(c.Vertices)
	}
	return n
}

// Manager builds and tracks every GPU-resident resource. Disposal is
// explicit and caller-driven; replacing an entity's geometry disposes
// the prior handle in the same call, so edits cannot leak GPU memory.
type Manager struct {
	device   DeviceHandle
	uploader Uploader
	frame    *frame.Frame
	ceiling  int

	handles   map[string]*Handle
	materials *materialCache

	lost bool
}

// NewManager creates a manager over the session frame. device may be
// NullDeviceHandle and uploader may be nil for CPU-side operation.
func NewManager(device DeviceHandle, uploader Uploader, f *frame.Frame, cfg Config) *Manager {
	ceiling := cfg.ChunkCeiling
	if ceiling <= 0 {
		ceiling = DefaultChunkCeiling
	}
	return &Manager{
		device:    device,
		uploader:  uploader,
		frame:     f,
		ceiling:   ceiling,
		handles:   make(map[string]*Handle),
		materials: newMaterialCache(),
	}
}

// BuildOrUpdate builds geometry for an entity and installs it in the
// handle table, disposing any prior handle for the same entity. The
// context is checked between chunk uploads: a long rebuild of a large
// import can be cancelled cooperatively, in which case every buffer
// uploaded so far is released and ctx.Err() is returned.
func (m *Manager) BuildOrUpdate(ctx context.Context, e Renderable) (*Handle, error) {
	if m.lost {
		return nil, ErrContextLost
	}
	key, err := renderKey(e)
	if err != nil {
		return nil, err
	}
	verts, err := buildVertices(m.frame, e)
	if err != nil {
		return nil, err
	}

	h := &Handle{
		Key:        key,
		Generation: m.frame.Generation(),
		Chunks:     chunkVertices(verts, m.ceiling),
		Material:   m.materials.get(materialFor(e)),
	}

	if m.uploader != nil {
		for i := range h.Chunks {
			if err := ctx.Err(); err != nil {
				m.releaseChunks(h.Chunks[:i])
				return nil, fmt.Errorf("render: build %s cancelled: %w", key, err)
			}
			label := fmt.Sprintf("%s[%d]", key, i)
			ref, err := m.uploader.UploadLines(label, flatten(h.Chunks[i].Vertices))
			if err != nil {
				m.releaseChunks(h.Chunks[:i])
				return nil, fmt.Errorf("render: upload %s: %w", label, err)
			}
			h.Chunks[i].Buffer = ref
		}
	}

	if prior, ok := m.handles[key]; ok {
		m.dispose(prior)
	}
	m.handles[key] = h

	blast.Logger().Debug("geometry built",
		slog.String("key", key),
		slog.Int("vertices", len(verts)),
		slog.Int("chunks", len(h.Chunks)))
	return h, nil
}

// Handle returns the tracked handle for an entity, if any.
func (m *Manager) Handle(e Renderable) (*Handle, bool) {
	key, err := renderKey(e)
	if err != nil {
		return nil, false
	}
	h, ok := m.handles[key]
	return h, ok
}

// Stale reports whether a handle was built against an older frame
// origin and must be rebuilt before the next draw.
func (m *Manager) Stale(h *Handle) bool {
	return h.Generation != m.frame.Generation()
}

// Dispose releases a handle's device buffers and removes it from the
// table. Disposing twice returns ErrDisposed.
func (m *Manager) Dispose(h *Handle) error {
	if h == nil {
		return nil
	}
	if h.disposed {
		return ErrDisposed
	}
	m.dispose(h)
	delete(m.handles, h.Key)
	return nil
}

// DisposeAll releases every tracked handle. Called on session teardown
// and before a full regeneration after an origin reset.
func (m *Manager) DisposeAll() {
	for key, h := range m.handles {
		m.dispose(h)
		delete(m.handles, key)
	}
	m.materials.clear()
}

// dispose releases device buffers unless the device is gone.
func (m *Manager) dispose(h *Handle) {
	if !m.lost {
		m.releaseChunks(h.Chunks)
	}
	h.disposed = true
}

func (m *Manager) releaseChunks(chunks []Chunk) {
	if m.uploader == nil {
		return
	}
	for i := range chunks {
		if chunks[i].Buffer == 0 {
			continue
		}
		if err := m.uploader.Release(chunks[i].Buffer); err != nil {
			blast.Logger().Warn("buffer release failed",
				slog.Uint64("buffer", uint64(chunks[i].Buffer)),
				slog.Any("err", err))
		}
		chunks[i].Buffer = 0
	}
}

// TargetFor returns the descriptor a host should use when allocating
// an offscreen target for this manager's output. The format follows
// the attached device's surface format, so presenting needs no
// conversion blit; with no device, or a device that reports an
// undefined format, the default format stands.
func (m *Manager) TargetFor(width, height uint32) TargetDescriptor {
	desc := DefaultTargetDescriptor(width, height)
	if m.device == nil {
		return desc
	}
	if f := m.device.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
		desc.Format = f
	}
	return desc
}

// NumHandles returns the number of tracked handles.
func (m *Manager) NumHandles() int { return len(m.handles) }

// MaterialStats returns the material cache counters.
func (m *Manager) MaterialStats() cache.Stats { return m.materials.stats() }

// ContextLost reports whether the manager is in the lost state.
func (m *Manager) ContextLost() bool { return m.lost }

// MarkContextLost is called when the host detects a graphics-device
// loss. The manager stops issuing device calls, drops its logical
// references (the underlying resources are already gone), and returns
// ErrContextLost from every build until Recover. The error is
// recoverable; the render loop itself must not crash.
func (m *Manager) MarkContextLost() error {
	if m.lost {
		return ErrContextLost
	}
	m.lost = true
	n := len(m.handles)
	for key, h := range m.handles {
		h.disposed = true // logical release only; no device calls
		delete(m.handles, key)
	}
	m.materials.clear()
	blast.Logger().Warn("graphics context lost",
		slog.Int("handles_dropped", n))
	return ErrContextLost
}

// Recover installs a fresh device after a context loss. The caller
// then regenerates all geometry with BuildOrUpdate.
func (m *Manager) Recover(device DeviceHandle, uploader Uploader) {
	m.device = device
	m.uploader = uploader
	m.lost = false
	blast.Logger().Info("graphics context recovered")
}
