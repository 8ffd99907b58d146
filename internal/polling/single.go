package polling

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Werneck0live/vincipitch-dashboard/internal/models"
)

type SingleConfig struct {
	Interval time.Duration // padrão 3s
	Timeout  time.Duration // prazo absoluto, padrão 5min
}

func (c SingleConfig) withDefaults() SingleConfig {
	if c.Interval <= 0 {
		c.Interval = 3 * time.Second
	}
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Minute
	}
	return c
}

type SingleResult struct {
	EmpresaID string          `json:"empresa_id"`
	Outcome   Outcome         `json:"outcome"`
	State     State           `json:"state"`
	Analise   *models.Analise `json:"analise,omitempty"`
	Ticks     int             `json:"ticks"`
	Err       error           `json:"-"`
}

// AnalysisWatch acompanha a análise de uma única empresa.
type AnalysisWatch struct {
	*Task[SingleResult]

	empresaID string
	fetcher   StatusFetcher
	cfg       SingleConfig
	log       *slog.Logger

	// OnChange é chamado (na goroutine do watch) a cada mudança de estado.
	OnChange func(prev, next State, a *models.Analise)

	mu    sync.RWMutex
	state State
	ticks int
}

func NewAnalysisWatch(empresaID string, fetcher StatusFetcher, cfg SingleConfig, log *slog.Logger) *AnalysisWatch {
	if log == nil {
		log = slog.Default()
	}
	w := &AnalysisWatch{
		empresaID: empresaID,
		fetcher:   fetcher,
		cfg:       cfg.withDefaults(),
		log:       log.With("cmp", "polling.single", "empresa_id", empresaID),
		state:     StateUnknown,
	}
	w.Task = newTask(w.run, func() SingleResult {
		return w.result(OutcomeCancelado, nil, ErrCancelado)
	})
	return w
}

func (w *AnalysisWatch) EmpresaID() string { return w.empresaID }

func (w *AnalysisWatch) State() State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

func (w *AnalysisWatch) run(ctx context.Context) SingleResult {
	deadlineAt := time.Now().Add(w.cfg.Timeout)
	deadline := time.NewTimer(w.cfg.Timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	w.log.Debug("watch_start", "interval", w.cfg.Interval.String(), "timeout", w.cfg.Timeout.String())

	for {
		select {
		case <-ctx.Done():
			w.log.Info("watch_cancelled", "ticks", w.tickCount())
			return w.result(OutcomeCancelado, nil, ErrCancelado)

		case <-deadline.C:
			return w.timeout()

		case <-ticker.C:
			// ticker e prazo podem disparar juntos; o prazo vence
			if !time.Now().Before(deadlineAt) {
				return w.timeout()
			}
			if res, done := w.tick(ctx, deadlineAt); done {
				return res
			}
		}
	}
}

func (w *AnalysisWatch) tick(ctx context.Context, deadlineAt time.Time) (SingleResult, bool) {
	fctx, cancel := context.WithDeadline(ctx, deadlineAt)
	a, err := w.fetcher.ObterAnaliseEmpresa(fctx, w.empresaID)
	cancel()

	w.mu.Lock()
	w.ticks++
	w.mu.Unlock()

	if err != nil {
		if ctx.Err() != nil {
			return SingleResult{}, false // o select trata o cancelamento
		}
		// falha de consulta não encerra o acompanhamento
		w.log.Warn("watch_fetch_error", "err", err)
		return SingleResult{}, false
	}

	w.observe(State(a.Status), a)

	switch a.Status {
	case models.StatusConcluida:
		w.log.Info("watch_done", "ticks", w.tickCount())
		return w.result(OutcomeConcluida, a, nil), true
	case models.StatusErro:
		w.log.Warn("watch_failed", "ticks", w.tickCount())
		return w.result(OutcomeErro, a, ErrAnaliseFalhou), true
	}
	return SingleResult{}, false
}

func (w *AnalysisWatch) observe(next State, a *models.Analise) {
	if next == "" {
		next = StateProcessando
	}
	w.mu.Lock()
	prev := w.state
	w.state = next
	w.mu.Unlock()

	if prev != next {
		w.log.Debug("watch_state", "from", prev, "to", next)
		if w.OnChange != nil {
			w.OnChange(prev, next, a)
		}
	}
}

func (w *AnalysisWatch) timeout() SingleResult {
	w.observe(StateTimeout, nil)
	w.log.Warn("watch_timeout", "ticks", w.tickCount())
	return w.result(OutcomeTimeout, nil, ErrTimeout)
}

func (w *AnalysisWatch) tickCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.ticks
}

func (w *AnalysisWatch) result(o Outcome, a *models.Analise, err error) SingleResult {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return SingleResult{EmpresaID: w.empresaID, Outcome: o, State: w.state, Analise: a, Ticks: w.ticks, Err: err}
}
