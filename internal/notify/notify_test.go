package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Werneck0live/vincipitch-dashboard/internal/models"
)

type subMock struct {
	mu           sync.Mutex
	fn           func(models.AnalysisEvent)
	subscribeErr error
	unsubscribes int
}

func (s *subMock) Subscribe(_ context.Context, fn func(models.AnalysisEvent)) error {
	if s.subscribeErr != nil {
		return s.subscribeErr
	}
	s.mu.Lock()
	s.fn = fn
	s.mu.Unlock()
	return nil
}

func (s *subMock) Unsubscribe() error {
	s.mu.Lock()
	s.fn = nil
	s.unsubscribes++
	s.mu.Unlock()
	return nil
}

func (s *subMock) emit(ev models.AnalysisEvent) {
	s.mu.Lock()
	fn := s.fn
	s.mu.Unlock()
	if fn != nil {
		fn(ev)
	}
}

type namesMock struct {
	ObterEmpresaFn func(ctx context.Context, id string) (*models.Empresa, error)
}

func (m namesMock) ObterEmpresa(ctx context.Context, id string) (*models.Empresa, error) {
	return m.ObterEmpresaFn(ctx, id)
}

func nota(v float64) *float64 { return &v }

func TestCenter_BoundedNewestFirst(t *testing.T) {
	c := NewCenter(20)
	for i := 0; i < 25; i++ {
		c.Add(models.Notificacao{Titulo: fmt.Sprintf("n%d", i)})
	}
	list := c.List()
	require.Len(t, list, 20)
	assert.Equal(t, "n24", list[0].Titulo)
	assert.Equal(t, "n5", list[19].Titulo)
	assert.NotEmpty(t, list[0].ID)
	assert.False(t, list[0].CriadaEm.IsZero())
	assert.Equal(t, 20, c.Unread())
}

func TestCenter_MarkRead(t *testing.T) {
	c := NewCenter(0)
	a := c.Add(models.Notificacao{Titulo: "a"})
	c.Add(models.Notificacao{Titulo: "b"})

	assert.True(t, c.MarkRead(a.ID))
	assert.False(t, c.MarkRead("nao-existe"))
	assert.Equal(t, 1, c.Unread())

	assert.Equal(t, 1, c.MarkAllRead())
	assert.Equal(t, 0, c.Unread())
	assert.Equal(t, 0, c.MarkAllRead())

	c.Clear()
	assert.Empty(t, c.List())
}

func TestCenter_ListIsCopy(t *testing.T) {
	c := NewCenter(5)
	c.Add(models.Notificacao{Titulo: "a"})
	l := c.List()
	l[0].Titulo = "mudou"
	assert.Equal(t, "a", c.List()[0].Titulo)
}

func TestListener_ConcluidaTransition(t *testing.T) {
	sub := &subMock{}
	c := NewCenter(20)
	l := NewListener(sub, c, nil, nil)

	var forwarded []models.Notificacao
	l.Forward = func(n models.Notificacao) { forwarded = append(forwarded, n) }

	require.NoError(t, l.Start(context.Background()))

	sub.emit(models.AnalysisEvent{
		Tipo: models.EventoAnaliseConcluida, EmpresaID: "e1", EmpresaNome: "Acme",
		Status: models.StatusConcluida, StatusAnterior: models.StatusProcessando, NotaFinal: nota(3.456),
	})

	list := c.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Análise Concluída!", list[0].Titulo)
	assert.Equal(t, `A análise de "Acme" foi finalizada com nota 3.46.`, list[0].Mensagem)
	assert.Equal(t, models.EventoAnaliseConcluida, list[0].Tipo)
	assert.Equal(t, "e1", list[0].EmpresaID)
	require.Len(t, forwarded, 1)
	assert.Equal(t, list[0].ID, forwarded[0].ID)

	require.NoError(t, l.Stop())
	assert.Equal(t, 1, sub.unsubscribes)

	// depois do unsubscribe nada chega
	sub.emit(models.AnalysisEvent{EmpresaID: "e2", Status: models.StatusConcluida})
	assert.Len(t, c.List(), 1)
}

func TestListener_IgnoresRepeatedConcluida(t *testing.T) {
	c := NewCenter(20)
	l := NewListener(&subMock{}, c, nil, nil)

	_, ok := l.Handle(context.Background(), models.AnalysisEvent{
		EmpresaID: "e1", Status: models.StatusConcluida, StatusAnterior: models.StatusConcluida,
	})
	assert.False(t, ok)

	_, ok = l.Handle(context.Background(), models.AnalysisEvent{
		EmpresaID: "e1", Status: models.StatusProcessando, StatusAnterior: models.StatusPendente,
	})
	assert.False(t, ok)
	assert.Empty(t, c.List())
}

func TestListener_NameLookupAndFallbacks(t *testing.T) {
	c := NewCenter(20)
	names := namesMock{ObterEmpresaFn: func(_ context.Context, id string) (*models.Empresa, error) {
		if id == "e1" {
			return &models.Empresa{ID: "e1", Nome: "Vinci"}, nil
		}
		return nil, errors.New("boom")
	}}
	l := NewListener(&subMock{}, c, names, nil)

	n, ok := l.Handle(context.Background(), models.AnalysisEvent{EmpresaID: "e1", Status: models.StatusConcluida})
	require.True(t, ok)
	assert.Equal(t, `A análise de "Vinci" foi finalizada com nota 0.00.`, n.Mensagem)

	n, ok = l.Handle(context.Background(), models.AnalysisEvent{EmpresaID: "e9", Status: models.StatusConcluida, NotaFinal: nota(4)})
	require.True(t, ok)
	assert.Equal(t, `A análise de "empresa" foi finalizada com nota 4.00.`, n.Mensagem)
}

func TestListener_OtherEvents(t *testing.T) {
	c := NewCenter(20)
	l := NewListener(&subMock{}, c, nil, nil)
	ctx := context.Background()

	n, ok := l.Handle(ctx, models.AnalysisEvent{EmpresaNome: "Acme", Status: models.StatusErro, StatusAnterior: models.StatusProcessando})
	require.True(t, ok)
	assert.Equal(t, models.EventoErro, n.Tipo)

	n, ok = l.Handle(ctx, models.AnalysisEvent{Tipo: models.EventoNovaEmpresa, EmpresaNome: "Nova"})
	require.True(t, ok)
	assert.Equal(t, `"Nova" foi cadastrada.`, n.Mensagem)

	_, ok = l.Handle(ctx, models.AnalysisEvent{Tipo: models.EventoRankingAtualizado})
	assert.True(t, ok)
	assert.Len(t, c.List(), 3)
}

func TestListener_SubscribeError(t *testing.T) {
	l := NewListener(&subMock{subscribeErr: errors.New("sem broker")}, NewCenter(1), nil, nil)
	assert.Error(t, l.Start(context.Background()))
}

func TestCenter_Concurrent(t *testing.T) {
	c := NewCenter(20)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n := c.Add(models.Notificacao{CriadaEm: time.Now()})
			c.MarkRead(n.ID)
			_ = c.List()
		}()
	}
	wg.Wait()
	assert.Len(t, c.List(), 20)
}
