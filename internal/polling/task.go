package polling

import (
	"context"
	"errors"
	"sync"
)

var ErrAlreadyStarted = errors.New("polling: task already started")

// Task é o handle de um acompanhamento: Start dispara o loop, Cancel o
// interrompe e Done fecha quando existe um resultado definitivo.
// Depois de Done, Result é estável.
type Task[R any] struct {
	mu       sync.Mutex
	started  bool
	finished bool
	cancel   context.CancelFunc
	done     chan struct{}
	result   R

	run       func(ctx context.Context) R
	immediate func() (R, bool) // resultado síncrono, sem goroutine nem timer
	cancelled func() R
}

func newTask[R any](run func(context.Context) R, cancelled func() R) *Task[R] {
	return &Task[R]{run: run, cancelled: cancelled, done: make(chan struct{})}
}

func (t *Task[R]) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started {
		return ErrAlreadyStarted
	}
	t.started = true

	if t.immediate != nil {
		if r, ok := t.immediate(); ok {
			t.finishLocked(r)
			return nil
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	go func() {
		defer cancel()
		r := t.run(runCtx)
		t.mu.Lock()
		t.finishLocked(r)
		t.mu.Unlock()
	}()
	return nil
}

// Cancel é idempotente. Antes do Start, o task termina direto como cancelado.
func (t *Task[R]) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.started {
		t.started = true
		t.finishLocked(t.cancelled())
		return
	}
	if t.cancel != nil {
		t.cancel()
	}
}

func (t *Task[R]) finishLocked(r R) {
	if t.finished {
		return
	}
	t.finished = true
	t.result = r
	close(t.done)
}

func (t *Task[R]) Done() <-chan struct{} { return t.done }

// Result devolve o resultado e true quando o task já terminou.
func (t *Task[R]) Result() (R, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.result, t.finished
}

// Wait bloqueia até o fim do task ou até ctx expirar.
func (t *Task[R]) Wait(ctx context.Context) (R, error) {
	select {
	case <-t.done:
		r, _ := t.Result()
		return r, nil
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}
