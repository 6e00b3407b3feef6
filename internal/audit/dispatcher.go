package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	queueSize     = 100
	recordTimeout = 5 * time.Second
)

type Event struct {
	ClinicID uuid.UUID
	UserID   *uuid.UUID
	Action   string
	Entity   string
	EntityID *uuid.UUID
	Metadata any
}

// Dispatcher records audit events on a single background worker so callers
// never wait on, or fail because of, the audit trail.
type Dispatcher struct {
	recorder Recorder
	log      zerolog.Logger
	queue    chan Event

	closeOnce sync.Once
	done      chan struct{}
}

func NewDispatcher(recorder Recorder, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		recorder: recorder,
		log:      log,
		queue:    make(chan Event, queueSize),
		done:     make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		if err := d.recorder.Record(ctx, ev); err != nil {
			d.log.Warn().Err(err).Str("audit_action", ev.Action).Msg("audit record failed")
		}
		cancel()
	}
}

// Dispatch enqueues ev, dropping it when the queue is full. Safe on a nil
// Dispatcher.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn().Str("audit_action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits for the queue to drain.
// Dispatch must not be called after Close.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	<-d.done
}
