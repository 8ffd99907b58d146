package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Werneck0live/vincipitch-dashboard/internal/format"
	"github.com/Werneck0live/vincipitch-dashboard/internal/models"
)

// Subscriber é o canal de push. A implementação (RabbitMQ, etc.) fica
// fora do núcleo; Unsubscribe deve ser idempotente.
type Subscriber interface {
	Subscribe(ctx context.Context, fn func(models.AnalysisEvent)) error
	Unsubscribe() error
}

// NameLookup resolve o nome da empresa quando o evento não traz.
type NameLookup interface {
	ObterEmpresa(ctx context.Context, id string) (*models.Empresa, error)
}

type Listener struct {
	sub    Subscriber
	center *Center
	names  NameLookup
	log    *slog.Logger

	// Forward recebe cada notificação criada (fan-out, persistência).
	Forward func(models.Notificacao)
}

func NewListener(sub Subscriber, center *Center, names NameLookup, log *slog.Logger) *Listener {
	if log == nil {
		log = slog.Default()
	}
	return &Listener{sub: sub, center: center, names: names, log: log.With("cmp", "notify.listener")}
}

func (l *Listener) Start(ctx context.Context) error {
	return l.sub.Subscribe(ctx, func(ev models.AnalysisEvent) {
		l.Handle(ctx, ev)
	})
}

func (l *Listener) Stop() error { return l.sub.Unsubscribe() }

// Handle converte o evento em notificação quando ele for relevante.
func (l *Listener) Handle(ctx context.Context, ev models.AnalysisEvent) (models.Notificacao, bool) {
	n, ok := l.build(ctx, ev)
	if !ok {
		l.log.Debug("event_ignored", "tipo", ev.Tipo, "empresa_id", ev.EmpresaID, "status", ev.Status)
		return models.Notificacao{}, false
	}
	n = l.center.Add(n)
	l.log.Info("notification_added", "tipo", n.Tipo, "empresa_id", n.EmpresaID, "id", n.ID)
	if l.Forward != nil {
		l.Forward(n)
	}
	return n, true
}

func (l *Listener) build(ctx context.Context, ev models.AnalysisEvent) (models.Notificacao, bool) {
	base := models.Notificacao{EmpresaID: ev.EmpresaID, AnaliseID: ev.AnaliseID}

	switch {
	// só a transição para concluida gera aviso; reenvios do mesmo estado não
	case ev.Status == models.StatusConcluida && ev.StatusAnterior != models.StatusConcluida:
		nota := 0.0
		if ev.NotaFinal != nil {
			nota = *ev.NotaFinal
		}
		base.Tipo = models.EventoAnaliseConcluida
		base.Titulo = "Análise Concluída!"
		base.Mensagem = fmt.Sprintf("A análise de \"%s\" foi finalizada com nota %s.", l.nome(ctx, ev), format.NotaValue(nota))
		return base, true

	case ev.Status == models.StatusErro && ev.StatusAnterior != models.StatusErro:
		base.Tipo = models.EventoErro
		base.Titulo = "Erro na análise"
		base.Mensagem = fmt.Sprintf("A análise de \"%s\" terminou com erro.", l.nome(ctx, ev))
		return base, true

	case ev.Tipo == models.EventoNovaEmpresa:
		base.Tipo = models.EventoNovaEmpresa
		base.Titulo = "Nova empresa"
		base.Mensagem = fmt.Sprintf("\"%s\" foi cadastrada.", l.nome(ctx, ev))
		return base, true

	case ev.Tipo == models.EventoRankingAtualizado:
		base.Tipo = models.EventoRankingAtualizado
		base.Titulo = "Ranking atualizado"
		base.Mensagem = "O ranking foi recalculado com novas análises."
		return base, true
	}
	return models.Notificacao{}, false
}

func (l *Listener) nome(ctx context.Context, ev models.AnalysisEvent) string {
	if ev.EmpresaNome != "" {
		return ev.EmpresaNome
	}
	if l.names != nil && ev.EmpresaID != "" {
		lctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		e, err := l.names.ObterEmpresa(lctx, ev.EmpresaID)
		if err == nil && e != nil && e.DisplayName() != "" {
			return e.DisplayName()
		}
		if err != nil {
			l.log.Warn("empresa_lookup_error", "empresa_id", ev.EmpresaID, "err", err)
		}
	}
	return "empresa"
}
