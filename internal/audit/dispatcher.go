package audit

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

const (
	ActionSalonCreated       = "salon_created"
	ActionSalonUpdated       = "salon_updated"
	ActionSalonDeleted       = "salon_deleted"
	ActionSalonToggled       = "salon_toggled"
	ActionSalonLogoUploaded  = "salon_logo_uploaded"
	ActionClientCreated      = "client_created"
	ActionClientDeleted      = "client_deleted"
	ActionLeadSubmitted      = "lead_submitted"
	ActionMigrationCompleted = "migration_completed"
)

type Event struct {
	Actor    string
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

// Recorder é o que handlers e casos de uso recebem.
type Recorder interface {
	Dispatch(ev Event)
}

type sink interface {
	Log(ctx context.Context, ev Event) error
}

// Dispatcher grava eventos em segundo plano. Depois de Close, Dispatch
// descarta o evento com um aviso.
type Dispatcher struct {
	sink  sink
	log   *zap.Logger
	queue chan Event
	done  chan struct{}

	// mu protege closed e o envio na fila contra o close(queue)
	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(s sink, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Dispatcher{
		sink:  s,
		log:   log,
		queue: make(chan Event, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.sink.Log(context.Background(), ev); err != nil {
			d.log.Warn("audit error", zap.String("action", ev.Action), zap.Error(err))
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("audit dispatcher closed, dropping event", zap.String("action", ev.Action))
		return
	}

	select {
	case d.queue <- ev:
	default:
		// fila cheia: o evento é descartado, a requisição segue
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close grava o que ainda está na fila e encerra o worker.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done
}

// Nop descarta tudo.
type Nop struct{}

func (Nop) Dispatch(Event) {}
