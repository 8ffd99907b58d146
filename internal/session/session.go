// Package session agrupa o estado de um usuário do painel: avisos,
// acompanhamentos em andamento e a assinatura de eventos. Tudo é
// encerrado por Close; não há estado global.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Werneck0live/vincipitch-dashboard/internal/config"
	"github.com/Werneck0live/vincipitch-dashboard/internal/models"
	"github.com/Werneck0live/vincipitch-dashboard/internal/notify"
	"github.com/Werneck0live/vincipitch-dashboard/internal/polling"
)

var ErrClosed = errors.New("session closed")

// EventPublisher recebe as transições observadas pelos acompanhamentos.
type EventPublisher interface {
	PublishEvent(ctx context.Context, ev models.AnalysisEvent) error
}

type Config struct {
	Single           polling.SingleConfig
	Batch            polling.BatchConfig
	NotificationsMax int
}

type Session struct {
	ID string

	fetcher polling.StatusFetcher
	pub     EventPublisher
	cfg     Config
	log     *slog.Logger
	center  *notify.Center

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	closed   bool
	watches  map[string]*polling.AnalysisWatch
	batch    *polling.BatchWatch
	batchID  string
	listener *notify.Listener
}

// New cria a sessão. pub pode ser nil (nenhum evento é publicado).
func New(fetcher polling.StatusFetcher, pub EventPublisher, cfg Config, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	id := uuid.NewString()
	return &Session{
		ID:      id,
		fetcher: fetcher,
		pub:     pub,
		cfg:     cfg,
		log:     log.With("cmp", "session", "session_id", id),
		center:  notify.NewCenter(cfg.NotificationsMax),
		ctx:     ctx,
		cancel:  cancel,
		watches: make(map[string]*polling.AnalysisWatch),
	}
}

func (s *Session) Center() *notify.Center { return s.center }

// Listen liga a central de avisos ao canal de eventos.
func (s *Session) Listen(sub notify.Subscriber, names notify.NameLookup) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.listener != nil {
		if err := s.listener.Stop(); err != nil {
			s.log.Warn("listener_stop_error", "err", err)
		}
	}
	l := notify.NewListener(sub, s.center, names, s.log)
	if err := l.Start(s.ctx); err != nil {
		return err
	}
	s.listener = l
	return nil
}

// Watch inicia o acompanhamento da empresa. Um acompanhamento anterior da
// mesma empresa é cancelado.
func (s *Session) Watch(empresaID, empresaNome string) (*polling.AnalysisWatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	if old := s.watches[empresaID]; old != nil {
		old.Cancel()
	}

	w := polling.NewAnalysisWatch(empresaID, s.fetcher, s.cfg.Single, s.log)
	w.OnChange = func(prev, next polling.State, a *models.Analise) {
		s.emit(empresaID, empresaNome, prev, next, a)
	}
	if err := w.Start(s.ctx); err != nil {
		return nil, err
	}
	s.watches[empresaID] = w
	go s.prune(empresaID, w)
	return w, nil
}

// prune tira o acompanhamento do mapa quando ele termina, desde que
// ainda seja o corrente da empresa.
func (s *Session) prune(empresaID string, w *polling.AnalysisWatch) {
	<-w.Done()
	s.Forget(empresaID, w)
}

func (s *Session) Analysis(empresaID string) (*polling.AnalysisWatch, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.watches[empresaID]
	return w, ok
}

// Forget remove o acompanhamento já encerrado sem cancelar nada.
func (s *Session) Forget(empresaID string, w *polling.AnalysisWatch) {
	s.mu.Lock()
	if s.watches[empresaID] == w {
		delete(s.watches, empresaID)
	}
	s.mu.Unlock()
}

func (s *Session) CancelAnalysis(empresaID string) bool {
	s.mu.Lock()
	w := s.watches[empresaID]
	delete(s.watches, empresaID)
	s.mu.Unlock()
	if w == nil {
		return false
	}
	w.Cancel()
	return true
}

// StartBatch troca o lote corrente por um novo.
func (s *Session) StartBatch(jobs []polling.Job) (*polling.BatchWatch, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, "", ErrClosed
	}
	if s.batch != nil {
		s.batch.Cancel()
	}

	b := polling.NewBatchWatch(jobs, s.fetcher, s.cfg.Batch, s.log)
	prev := make(map[string]models.StatusAnalise, len(jobs))
	for _, j := range jobs {
		prev[j.EmpresaID] = models.StatusPendente
	}
	emitted := make(map[string]bool, len(jobs))
	// OnTick roda só na goroutine do lote; os mapas não precisam de trava.
	// Uma falha de consulta pode voltar o job a pendente por um tick, por
	// isso cada empresa gera no máximo um evento terminal.
	b.OnTick = func(_ polling.Progress, statuses []polling.JobStatus) {
		for _, js := range statuses {
			before := prev[js.EmpresaID]
			prev[js.EmpresaID] = js.Status
			if before == js.Status || emitted[js.EmpresaID] {
				continue
			}
			if s.emitJob(js, before) {
				emitted[js.EmpresaID] = true
			}
		}
	}
	if err := b.Start(s.ctx); err != nil {
		return nil, "", err
	}
	s.batch = b
	s.batchID = uuid.NewString()
	s.log.Info("batch_started", "batch_id", s.batchID, "total", len(jobs))
	return b, s.batchID, nil
}

func (s *Session) Batch() (*polling.BatchWatch, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batch, s.batchID, s.batch != nil
}

func (s *Session) CancelBatch() bool {
	s.mu.Lock()
	b := s.batch
	s.batch, s.batchID = nil, ""
	s.mu.Unlock()
	if b == nil {
		return false
	}
	b.Cancel()
	return true
}

// Close cancela tudo que a sessão iniciou. Idempotente.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	watches := s.watches
	s.watches = map[string]*polling.AnalysisWatch{}
	b, l := s.batch, s.listener
	s.batch, s.listener = nil, nil
	s.mu.Unlock()

	for _, w := range watches {
		w.Cancel()
	}
	if b != nil {
		b.Cancel()
	}
	var err error
	if l != nil {
		err = l.Stop()
	}
	s.cancel()
	s.log.Info("session_closed", "watches", len(watches))
	return err
}

func (s *Session) emit(empresaID, nome string, prev, next polling.State, a *models.Analise) {
	if next != polling.StateConcluida && next != polling.StateErro {
		return
	}
	ev := models.AnalysisEvent{
		Tipo:        models.EventoAnaliseConcluida,
		EmpresaID:   empresaID,
		EmpresaNome: nome,
		Status:      models.StatusAnalise(next),
	}
	if prev != polling.StateUnknown {
		ev.StatusAnterior = models.StatusAnalise(prev)
	}
	if next == polling.StateErro {
		ev.Tipo = models.EventoErro
	}
	if a != nil {
		ev.AnaliseID = a.ID
		ev.NotaFinal = a.NotaFinal
	}
	s.publish(ev)
}

func (s *Session) emitJob(js polling.JobStatus, before models.StatusAnalise) bool {
	if js.Status != models.StatusConcluida && js.Status != models.StatusErro {
		return false
	}
	ev := models.AnalysisEvent{
		Tipo:           models.EventoAnaliseConcluida,
		EmpresaID:      js.EmpresaID,
		EmpresaNome:    js.EmpresaNome,
		Status:         js.Status,
		StatusAnterior: before,
		NotaFinal:      js.NotaFinal,
	}
	if js.Status == models.StatusErro {
		ev.Tipo = models.EventoErro
	}
	s.publish(ev)
	return true
}

func (s *Session) publish(ev models.AnalysisEvent) {
	if s.pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.pub.PublishEvent(ctx, ev); err != nil {
		s.log.Warn("event_publish_error", "empresa_id", ev.EmpresaID, "err", err)
		return
	}
	s.log.Debug("event_published", "tipo", ev.Tipo, "empresa_id", ev.EmpresaID)
}

// ConfigFrom traduz os tempos carregados pelo pacote config.
func ConfigFrom(p config.PollingConfig, notificationsMax int) Config {
	return Config{
		Single: polling.SingleConfig{Interval: p.Interval, Timeout: p.Timeout},
		Batch: polling.BatchConfig{
			InitialDelay: p.BatchInitialDelay,
			Interval:     p.BatchInterval,
			MaxTicks:     p.BatchMaxTicks,
			Timeout:      p.BatchTimeout,
			Concurrency:  p.BatchConcurrency,
		},
		NotificationsMax: notificationsMax,
	}
}
