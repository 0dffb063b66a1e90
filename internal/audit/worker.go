package audit

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	apperrors "github.com/framevault/studio-gate/internal/errors"
)

// drainTimeout bounds the post-shutdown flush of buffered events.
const drainTimeout = 5 * time.Second

// Worker decouples the request pipeline from the audit sink. Record enqueues
// onto a bounded channel and drops when full; Run drains the channel until
// the context is canceled.
type Worker struct {
	sink    Sink
	logger  *slog.Logger
	ch      chan Event
	dropped atomic.Int64
}

// NewWorker creates a Worker with the given buffer size.
func NewWorker(sink Sink, logger *slog.Logger, buffer int) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	if buffer <= 0 {
		buffer = 1024
	}
	return &Worker{
		sink:   sink,
		logger: logger,
		ch:     make(chan Event, buffer),
	}
}

// Record enqueues ev, dropping it when the buffer is full.
func (w *Worker) Record(ev Event) {
	select {
	case w.ch <- ev:
	default:
		w.dropped.Add(1)
	}
}

// Dropped returns the number of events discarded because the buffer was full.
func (w *Worker) Dropped() int64 {
	return w.dropped.Load()
}

// Run consumes events until ctx is canceled, then drains whatever is already
// buffered. Sink failures are logged and the worker keeps going; severity
// depends on whether the failure is the database being unreachable.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case ev := <-w.ch:
			w.write(ctx, ev)
		case <-ctx.Done():
			w.drain()
			return ctx.Err()
		}
	}
}

func (w *Worker) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	for {
		select {
		case ev := <-w.ch:
			w.write(ctx, ev)
		default:
			return
		}
	}
}

func (w *Worker) write(ctx context.Context, ev Event) {
	err := w.sink.Write(ctx, ev)
	if err == nil {
		return
	}
	mapped := apperrors.MapDBError(err)
	switch apperrors.CodeOf(mapped) {
	case apperrors.ErrCodeCanceled:
		// Shutdown race, not worth reporting.
	case apperrors.ErrCodeProviderTransient, apperrors.ErrCodeTimeout:
		w.logger.WarnContext(ctx, "audit sink unavailable", "error", mapped, "path", ev.Path)
	default:
		w.logger.ErrorContext(ctx, "audit write failed", "error", mapped, "path", ev.Path)
	}
}
