package analysis

import (
	"context"
	"errors"
	"sync"
)

var ErrSuperseded = errors.New("analysis superseded by a newer request")

type flight struct {
	id     uint64
	cancel context.CancelCauseFunc
}

// Tracker deja una sola llamada IA en vuelo por clave (usuario): empezar una
// nueva cancela la anterior con causa ErrSuperseded.
type Tracker struct {
	mu       sync.Mutex
	seq      uint64
	inflight map[string]flight
}

func NewTracker() *Tracker {
	return &Tracker{inflight: map[string]flight{}}
}

// Start devuelve el contexto para la nueva llamada y un done que hay que
// llamar al terminar.
func (t *Tracker) Start(ctx context.Context, key string) (context.Context, func()) {
	ctx, cancel := context.WithCancelCause(ctx)

	t.mu.Lock()
	if prev, ok := t.inflight[key]; ok {
		prev.cancel(ErrSuperseded)
	}
	t.seq++
	id := t.seq
	t.inflight[key] = flight{id: id, cancel: cancel}
	t.mu.Unlock()

	done := func() {
		t.mu.Lock()
		if cur, ok := t.inflight[key]; ok && cur.id == id {
			delete(t.inflight, key)
		}
		t.mu.Unlock()
		cancel(nil)
	}
	return ctx, done
}

// InFlight cuenta llamadas activas (tests / métricas).
func (t *Tracker) InFlight() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.inflight)
}
