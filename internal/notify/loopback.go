package notify

import (
	"context"
	"sync"

	"github.com/Werneck0live/vincipitch-dashboard/internal/models"
)

// Loopback entrega no próprio processo o que for publicado. Serve quando
// não há broker configurado.
type Loopback struct {
	mu sync.RWMutex
	fn func(models.AnalysisEvent)
}

func NewLoopback() *Loopback { return &Loopback{} }

func (l *Loopback) Subscribe(_ context.Context, fn func(models.AnalysisEvent)) error {
	l.mu.Lock()
	l.fn = fn
	l.mu.Unlock()
	return nil
}

func (l *Loopback) Unsubscribe() error {
	l.mu.Lock()
	l.fn = nil
	l.mu.Unlock()
	return nil
}

func (l *Loopback) PublishEvent(_ context.Context, ev models.AnalysisEvent) error {
	l.mu.RLock()
	fn := l.fn
	l.mu.RUnlock()
	if fn != nil {
		fn(ev)
	}
	return nil
}

func (l *Loopback) Close() error { return l.Unsubscribe() }
