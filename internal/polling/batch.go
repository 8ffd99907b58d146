package polling

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Werneck0live/vincipitch-dashboard/internal/models"
)

type BatchConfig struct {
	InitialDelay time.Duration // primeira consulta, padrão 3s
	Interval     time.Duration // entre o fim de um tick e o próximo, padrão 5s
	MaxTicks     int           // padrão 60
	Timeout      time.Duration // prazo absoluto opcional (0 = só MaxTicks)
	Concurrency  int           // consultas simultâneas por tick (0 = todas)
}

func (c BatchConfig) withDefaults() BatchConfig {
	if c.InitialDelay <= 0 {
		c.InitialDelay = 3 * time.Second
	}
	if c.Interval <= 0 {
		c.Interval = 5 * time.Second
	}
	if c.MaxTicks <= 0 {
		c.MaxTicks = 60
	}
	return c
}

type Job struct {
	EmpresaID   string       `json:"empresa_id"`
	EmpresaNome string       `json:"empresa_nome"`
	Setor       models.Setor `json:"setor"`
}

// JobStatus é a linha de uma empresa no snapshot do lote.
type JobStatus struct {
	EmpresaID           string               `json:"empresa_id"`
	EmpresaNome         string               `json:"empresa_nome"`
	Setor               models.Setor         `json:"setor"`
	Status              models.StatusAnalise `json:"status"`
	NotaFinal           *float64             `json:"nota_final,omitempty"`
	NotaFinalPercentual *float64             `json:"nota_final_percentual,omitempty"`
	Notas               map[string]float64   `json:"notas,omitempty"`
	Justificativas      map[string]string    `json:"justificativas,omitempty"`
	ResumoExecutivo     string               `json:"resumo_executivo,omitempty"`
	Erro                string               `json:"erro,omitempty"`
}

type Progress struct {
	Tick       int `json:"tick"`
	Concluidas int `json:"concluidas"`
	Erros      int `json:"erros"`
	Total      int `json:"total"`
}

func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 100
	}
	return float64(p.Concluidas) * 100 / float64(p.Total)
}

type BatchResult struct {
	Outcome  Outcome     `json:"outcome"`
	Jobs     []JobStatus `json:"jobs"`
	Progress Progress    `json:"progress"`
	Err      error       `json:"-"`
}

// BatchWatch acompanha N empresas. Cada tick consulta as N em paralelo,
// espera todas e troca o snapshot de uma vez só.
type BatchWatch struct {
	*Task[BatchResult]

	jobs    []Job
	fetcher StatusFetcher
	cfg     BatchConfig
	log     *slog.Logger

	// OnTick recebe uma cópia do snapshot ao fim de cada tick.
	OnTick func(p Progress, jobs []JobStatus)

	mu       sync.RWMutex
	snapshot []JobStatus
	progress Progress
}

func NewBatchWatch(jobs []Job, fetcher StatusFetcher, cfg BatchConfig, log *slog.Logger) *BatchWatch {
	if log == nil {
		log = slog.Default()
	}
	b := &BatchWatch{
		jobs:     append([]Job(nil), jobs...),
		fetcher:  fetcher,
		cfg:      cfg.withDefaults(),
		log:      log.With("cmp", "polling.batch"),
		snapshot: make([]JobStatus, len(jobs)),
		progress: Progress{Total: len(jobs)},
	}
	for i, j := range b.jobs {
		b.snapshot[i] = JobStatus{EmpresaID: j.EmpresaID, EmpresaNome: j.EmpresaNome, Setor: j.Setor, Status: models.StatusPendente}
	}
	b.Task = newTask(b.run, func() BatchResult {
		return b.result(OutcomeCancelado, ErrCancelado)
	})
	// lote vazio: conclui já, sem agendar timer
	b.Task.immediate = func() (BatchResult, bool) {
		if len(b.jobs) > 0 {
			return BatchResult{}, false
		}
		return b.result(OutcomeConcluida, nil), true
	}
	return b
}

// Snapshot devolve uma cópia do último estado publicado.
func (b *BatchWatch) Snapshot() (Progress, []JobStatus) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.progress, append([]JobStatus(nil), b.snapshot...)
}

func (b *BatchWatch) run(ctx context.Context) BatchResult {
	var (
		deadline   <-chan time.Time
		deadlineAt time.Time
	)
	if b.cfg.Timeout > 0 {
		deadlineAt = time.Now().Add(b.cfg.Timeout)
		t := time.NewTimer(b.cfg.Timeout)
		defer t.Stop()
		deadline = t.C
	}
	expired := func() bool { return !deadlineAt.IsZero() && !time.Now().Before(deadlineAt) }

	next := time.NewTimer(b.cfg.InitialDelay)
	defer next.Stop()

	b.log.Info("batch_start", "total", len(b.jobs), "max_ticks", b.cfg.MaxTicks)

	for tick := 1; ; tick++ {
		select {
		case <-ctx.Done():
			b.log.Info("batch_cancelled", "tick", tick-1)
			return b.result(OutcomeCancelado, ErrCancelado)
		case <-deadline:
			b.log.Warn("batch_timeout", "tick", tick-1)
			return b.result(OutcomeTimeout, ErrTimeout)
		case <-next.C:
			// timer e prazo podem disparar juntos; o prazo vence
			if expired() {
				b.log.Warn("batch_timeout", "tick", tick-1)
				return b.result(OutcomeTimeout, ErrTimeout)
			}
		}

		tctx, cancel := ctx, context.CancelFunc(func() {})
		if !deadlineAt.IsZero() {
			tctx, cancel = context.WithDeadline(ctx, deadlineAt)
		}
		statuses := b.poll(tctx)
		cancel()
		if ctx.Err() != nil {
			// consultas abortadas pelo cancelamento não viram snapshot
			return b.result(OutcomeCancelado, ErrCancelado)
		}
		if expired() {
			// tick interrompido pelo prazo: o snapshot anterior fica
			b.log.Warn("batch_timeout", "tick", tick-1)
			return b.result(OutcomeTimeout, ErrTimeout)
		}
		p := b.publish(tick, statuses)
		b.log.Info("batch_tick", "tick", tick, "concluidas", p.Concluidas, "erros", p.Erros, "total", p.Total)

		if p.Concluidas+p.Erros == p.Total {
			if p.Erros > 0 {
				return b.result(OutcomeErro, ErrAnaliseFalhou)
			}
			return b.result(OutcomeConcluida, nil)
		}
		if tick >= b.cfg.MaxTicks {
			b.log.Warn("batch_timeout", "tick", tick)
			return b.result(OutcomeTimeout, ErrTimeout)
		}
		next.Reset(b.cfg.Interval)
	}
}

// poll faz exatamente uma consulta por empresa e devolve o resultado na
// mesma ordem da entrada.
func (b *BatchWatch) poll(ctx context.Context) []JobStatus {
	out := make([]JobStatus, len(b.jobs))
	var g errgroup.Group
	if b.cfg.Concurrency > 0 {
		g.SetLimit(b.cfg.Concurrency)
	}
	for i, job := range b.jobs {
		g.Go(func() error {
			out[i] = b.check(ctx, job)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (b *BatchWatch) check(ctx context.Context, job Job) JobStatus {
	js := JobStatus{EmpresaID: job.EmpresaID, EmpresaNome: job.EmpresaNome, Setor: job.Setor}

	a, err := b.fetcher.ObterAnaliseEmpresa(ctx, job.EmpresaID)
	if err != nil {
		// vale só para este tick
		b.log.Debug("batch_fetch_error", "empresa_id", job.EmpresaID, "err", err)
		js.Status = models.StatusPendente
		return js
	}

	switch a.Status {
	case models.StatusConcluida:
		js.Status = models.StatusConcluida
		js.NotaFinal = a.NotaFinal
		js.NotaFinalPercentual = a.NotaFinalPercentual
		js.Notas = a.Notas()
		js.Justificativas = a.Justificativas()
		js.ResumoExecutivo = a.ResumoExecutivo
	case models.StatusErro:
		js.Status = models.StatusErro
		js.Erro = "Erro na análise"
	case "":
		js.Status = models.StatusProcessando
	default:
		js.Status = a.Status
	}
	return js
}

func (b *BatchWatch) publish(tick int, statuses []JobStatus) Progress {
	p := Progress{Tick: tick, Total: len(statuses)}
	for _, s := range statuses {
		switch s.Status {
		case models.StatusConcluida:
			p.Concluidas++
		case models.StatusErro:
			p.Erros++
		}
	}

	b.mu.Lock()
	b.snapshot = statuses
	b.progress = p
	b.mu.Unlock()

	if b.OnTick != nil {
		b.OnTick(p, append([]JobStatus(nil), statuses...))
	}
	return p
}

func (b *BatchWatch) result(o Outcome, err error) BatchResult {
	p, jobs := b.Snapshot()
	return BatchResult{Outcome: o, Jobs: jobs, Progress: p, Err: err}
}
