package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Werneck0live/vincipitch-dashboard/internal/models"
	"github.com/Werneck0live/vincipitch-dashboard/internal/notify"
	"github.com/Werneck0live/vincipitch-dashboard/internal/polling"
)

type fetcherMock struct {
	mu    sync.Mutex
	calls map[string]int
	Fn    func(empresaID string, call int) (*models.Analise, error)
}

func (m *fetcherMock) ObterAnaliseEmpresa(_ context.Context, empresaID string) (*models.Analise, error) {
	m.mu.Lock()
	if m.calls == nil {
		m.calls = map[string]int{}
	}
	m.calls[empresaID]++
	n := m.calls[empresaID]
	m.mu.Unlock()
	return m.Fn(empresaID, n)
}

type pubMock struct {
	mu     sync.Mutex
	events []models.AnalysisEvent
}

func (p *pubMock) PublishEvent(_ context.Context, ev models.AnalysisEvent) error {
	p.mu.Lock()
	p.events = append(p.events, ev)
	p.mu.Unlock()
	return nil
}

func (p *pubMock) Events() []models.AnalysisEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.AnalysisEvent(nil), p.events...)
}

func nota(v float64) *float64 { return &v }

var fastCfg = Config{
	Single: polling.SingleConfig{Interval: 5 * time.Millisecond, Timeout: time.Second},
	Batch:  polling.BatchConfig{InitialDelay: 5 * time.Millisecond, Interval: 5 * time.Millisecond, MaxTicks: 50},
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting task")
	}
}

func TestSession_WatchPublishesAndNotifies(t *testing.T) {
	t.Parallel()
	fm := &fetcherMock{Fn: func(id string, call int) (*models.Analise, error) {
		if call < 3 {
			return &models.Analise{ID: "a1", EmpresaID: id, Status: models.StatusProcessando}, nil
		}
		return &models.Analise{ID: "a1", EmpresaID: id, Status: models.StatusConcluida, NotaFinal: nota(3.8)}, nil
	}}
	bus := notify.NewLoopback()
	s := New(fm, bus, fastCfg, nil)
	defer s.Close()
	require.NoError(t, s.Listen(bus, nil))

	w, err := s.Watch("e1", "Acme")
	require.NoError(t, err)
	waitDone(t, w.Done())

	res, ok := w.Result()
	require.True(t, ok)
	assert.Equal(t, polling.OutcomeConcluida, res.Outcome)

	list := s.Center().List()
	require.Len(t, list, 1)
	assert.Equal(t, `A análise de "Acme" foi finalizada com nota 3.80.`, list[0].Mensagem)
	assert.Equal(t, "a1", list[0].AnaliseID)
}

func TestSession_WatchSameKeyCancelsPrevious(t *testing.T) {
	t.Parallel()
	fm := &fetcherMock{Fn: func(id string, _ int) (*models.Analise, error) {
		return &models.Analise{EmpresaID: id, Status: models.StatusProcessando}, nil
	}}
	s := New(fm, nil, fastCfg, nil)
	defer s.Close()

	w1, err := s.Watch("e1", "")
	require.NoError(t, err)
	w2, err := s.Watch("e1", "")
	require.NoError(t, err)

	waitDone(t, w1.Done())
	r1, _ := w1.Result()
	assert.Equal(t, polling.OutcomeCancelado, r1.Outcome)

	got, ok := s.Analysis("e1")
	require.True(t, ok)
	assert.Same(t, w2, got)

	assert.True(t, s.CancelAnalysis("e1"))
	assert.False(t, s.CancelAnalysis("e1"))
	waitDone(t, w2.Done())
}

func TestSession_BatchEmitsOncePerJob(t *testing.T) {
	t.Parallel()
	fm := &fetcherMock{Fn: func(id string, call int) (*models.Analise, error) {
		switch {
		case id == "e1" && call == 1:
			return &models.Analise{EmpresaID: id, Status: models.StatusConcluida, NotaFinal: nota(4)}, nil
		case id == "e1" && call == 2:
			// falha transitória depois de concluída
			return nil, errors.New("503")
		case id == "e1":
			return &models.Analise{EmpresaID: id, Status: models.StatusConcluida, NotaFinal: nota(4)}, nil
		case call < 3:
			return &models.Analise{EmpresaID: id, Status: models.StatusProcessando}, nil
		default:
			return &models.Analise{EmpresaID: id, Status: models.StatusErro}, nil
		}
	}}
	pub := &pubMock{}
	s := New(fm, pub, fastCfg, nil)
	defer s.Close()

	b, id, err := s.StartBatch([]polling.Job{{EmpresaID: "e1", EmpresaNome: "A"}, {EmpresaID: "e2", EmpresaNome: "B"}})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	waitDone(t, b.Done())

	res, _ := b.Result()
	assert.Equal(t, polling.OutcomeErro, res.Outcome)

	evs := pub.Events()
	require.Len(t, evs, 2)
	assert.Equal(t, models.EventoAnaliseConcluida, evs[0].Tipo)
	assert.Equal(t, "e1", evs[0].EmpresaID)
	assert.Equal(t, models.StatusPendente, evs[0].StatusAnterior)
	assert.Equal(t, models.EventoErro, evs[1].Tipo)
	assert.Equal(t, "e2", evs[1].EmpresaID)
}

func TestSession_StartBatchReplacesPrevious(t *testing.T) {
	t.Parallel()
	fm := &fetcherMock{Fn: func(id string, _ int) (*models.Analise, error) {
		return &models.Analise{EmpresaID: id, Status: models.StatusProcessando}, nil
	}}
	s := New(fm, nil, fastCfg, nil)
	defer s.Close()

	b1, id1, err := s.StartBatch([]polling.Job{{EmpresaID: "e1"}})
	require.NoError(t, err)
	b2, id2, err := s.StartBatch([]polling.Job{{EmpresaID: "e2"}})
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	waitDone(t, b1.Done())
	got, gotID, ok := s.Batch()
	require.True(t, ok)
	assert.Same(t, b2, got)
	assert.Equal(t, id2, gotID)

	assert.True(t, s.CancelBatch())
	waitDone(t, b2.Done())
	_, _, ok = s.Batch()
	assert.False(t, ok)
}

type subMock struct{ unsub atomic.Int32 }

func (m *subMock) Subscribe(context.Context, func(models.AnalysisEvent)) error { return nil }
func (m *subMock) Unsubscribe() error {
	m.unsub.Add(1)
	return nil
}

func TestSession_CloseCancelsEverything(t *testing.T) {
	t.Parallel()
	fm := &fetcherMock{Fn: func(id string, _ int) (*models.Analise, error) {
		return &models.Analise{EmpresaID: id, Status: models.StatusPendente}, nil
	}}
	s := New(fm, nil, fastCfg, nil)
	sub := &subMock{}
	require.NoError(t, s.Listen(sub, nil))

	w, err := s.Watch("e1", "")
	require.NoError(t, err)
	b, _, err := s.StartBatch([]polling.Job{{EmpresaID: "e2"}})
	require.NoError(t, err)

	require.NoError(t, s.Close())
	waitDone(t, w.Done())
	waitDone(t, b.Done())
	assert.Equal(t, int32(1), sub.unsub.Load())

	// segunda chamada não faz nada
	require.NoError(t, s.Close())
	assert.Equal(t, int32(1), sub.unsub.Load())

	_, err = s.Watch("e1", "")
	assert.ErrorIs(t, err, ErrClosed)
	_, _, err = s.StartBatch(nil)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, s.Listen(sub, nil), ErrClosed)
}

func TestSession_FinishedWatchIsPruned(t *testing.T) {
	t.Parallel()
	fm := &fetcherMock{Fn: func(id string, _ int) (*models.Analise, error) {
		return &models.Analise{EmpresaID: id, Status: models.StatusProcessando}, nil
	}}
	cfg := fastCfg
	cfg.Single.Timeout = 20 * time.Millisecond
	s := New(fm, nil, cfg, nil)
	defer s.Close()

	w, err := s.Watch("e1", "")
	require.NoError(t, err)
	waitDone(t, w.Done())
	r, _ := w.Result()
	assert.Equal(t, polling.OutcomeTimeout, r.Outcome)

	assert.Eventually(t, func() bool {
		_, ok := s.Analysis("e1")
		return !ok
	}, time.Second, 5*time.Millisecond)
	assert.False(t, s.CancelAnalysis("e1"))
}
