package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/openpit/blast"
)

// DefaultDebounce is the quiet period before a triggered save runs.
const DefaultDebounce = 2 * time.Second

// Config controls the Debouncer.
type Config struct {
	// Debounce is the quiet period after the last Trigger before the
	// save fires. Zero means DefaultDebounce.
	Debounce time.Duration
	// OnError receives save failures. Saves are best-effort; a failure
	// is reported and the debouncer keeps accepting triggers. Nil
	// means log-only.
	OnError func(error)
}

// Debouncer coalesces mutation bursts into saves. Each Trigger
// restarts the quiet-period timer; when it expires, the capture
// function runs and the snapshot goes to the store. Trigger is safe
// from the main thread; the save itself runs on the timer goroutine.
type Debouncer struct {
	store   Store
	capture func() Snapshot
	delay   time.Duration
	onError func(error)

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
}

// NewDebouncer wires a capture function to a store. capture runs on
// the timer goroutine, so it must be safe to call off the main thread
// or must be a closure over an already-captured snapshot source.
func NewDebouncer(st Store, capture func() Snapshot, cfg Config) *Debouncer {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	return &Debouncer{
		store:   st,
		capture: capture,
		delay:   cfg.Debounce,
		onError: cfg.OnError,
	}
}

// Trigger notes a mutation and (re)starts the quiet-period timer.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// Flush cancels any pending timer and saves immediately, returning the
// save error directly instead of routing it through OnError.
func (d *Debouncer) Flush(ctx context.Context) error {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	return d.save(ctx)
}

// Close stops the debouncer. A pending save is flushed first.
func (d *Debouncer) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	pending := d.timer != nil && d.timer.Stop()
	d.timer = nil
	d.mu.Unlock()

	if pending {
		return d.save(ctx)
	}
	return nil
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	if err := d.save(context.Background()); err != nil {
		blast.Logger().Warn("debounced save failed", slog.Any("error", err))
		if d.onError != nil {
			d.onError(err)
		}
	}
}

func (d *Debouncer) save(ctx context.Context) error {
	snap := d.capture()
	if err := d.store.Save(ctx, snap); err != nil {
		return err
	}
	blast.Logger().Debug("snapshot saved",
		slog.String("id", snap.ID),
		slog.Int("holes", len(snap.Holes)),
		slog.Int("entities", len(snap.Entities)))
	return nil
}
