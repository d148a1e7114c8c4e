package contour

import (
	"context"
	"log/slog"
	"sync"

	"github.com/openpit/blast"
)

// Worker runs contour computations on a single background goroutine.
// Submit is latest-wins: a new snapshot cancels the in-flight compute,
// so stale results never reach the caller. Results arrive on a channel
// the caller drains between frames.
type Worker struct {
	cfg      Config
	requests chan request
	results  chan *Result
	done     chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
	closed bool
}

type request struct {
	ctx   context.Context
	holes []blast.Hole
}

// NewWorker starts the background goroutine.
func NewWorker(cfg Config) *Worker {
	w := &Worker{
		cfg:      cfg.withDefaults(),
		requests: make(chan request, 1),
		results:  make(chan *Result, 1),
		done:     make(chan struct{}),
	}
	go w.run()
	return w
}

// Submit queues a hole snapshot for recomputation, cancelling any
// queued or in-flight compute. The slice must be a snapshot the caller
// no longer mutates.
func (w *Worker) Submit(ctx context.Context, holes []blast.Hole) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	if w.cancel != nil {
		w.cancel()
	}
	ctx, w.cancel = context.WithCancel(ctx)
	w.mu.Unlock()

	// Drop a queued-but-unstarted request in favor of this one.
	select {
	case <-w.requests:
	default:
	}
	select {
	case w.requests <- request{ctx: ctx, holes: holes}:
	case <-w.done:
	}
}

// Results delivers finished computations. Each result is consumed at
// most once; an unread result is replaced when a newer one lands.
func (w *Worker) Results() <-chan *Result { return w.results }

// Close stops the worker and cancels in-flight work. Idempotent.
func (w *Worker) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	if w.cancel != nil {
		w.cancel()
	}
	close(w.done)
}

func (w *Worker) run() {
	for {
		select {
		case <-w.done:
			return
		case req := <-w.requests:
			res, err := Compute(req.ctx, req.holes, w.cfg)
			if err != nil {
				if req.ctx.Err() == nil {
					blast.Logger().Warn("contour compute failed", slog.Any("error", err))
				}
				continue
			}
			// Replace an unconsumed older result.
			select {
			case <-w.results:
			default:
			}
			select {
			case w.results <- res:
			case <-w.done:
				return
			}
		}
	}
}
