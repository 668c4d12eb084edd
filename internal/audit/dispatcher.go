package audit

import (
	"context"
	"log/slog"
	"sync"
)

const queueSize = 100

type Sink interface {
	Log(ctx context.Context, ev Event) error
}

// Dispatcher writes events off the request path. A full queue drops the
// event; auditing never fails a booking.
type Dispatcher struct {
	sink   Sink
	queue  chan Event
	logger *slog.Logger

	once sync.Once
	done chan struct{}
}

func NewDispatcher(sink Sink, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dispatcher{
		sink:   sink,
		queue:  make(chan Event, queueSize),
		logger: logger.With("module", "audit_dispatcher"),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.sink.Log(context.Background(), ev); err != nil {
			d.logger.Error("audit.write_failed", "action", ev.Action, "err", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.logger.Warn("audit.queue_full", "action", ev.Action)
	}
}

// Close stops accepting events and waits for the queue to drain or ctx to
// end. Dispatch must not be called after Close.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.once.Do(func() { close(d.queue) })
	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
