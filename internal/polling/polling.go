// Package polling acompanha jobs de análise que rodam no backend até um
// estado terminal, um prazo absoluto ou o cancelamento pelo chamador.
// Nenhum cancelamento é enviado ao backend.
package polling

import (
	"context"
	"errors"

	"github.com/Werneck0live/vincipitch-dashboard/internal/models"
)

// StatusFetcher é a única dependência do polling no cliente da API.
type StatusFetcher interface {
	ObterAnaliseEmpresa(ctx context.Context, empresaID string) (*models.Analise, error)
}

// State é a visão local do job. Além dos status do backend existem
// "unknown" (antes da primeira consulta) e "timeout" (prazo esgotado).
type State string

const (
	StateUnknown     State = "unknown"
	StatePendente    State = State(models.StatusPendente)
	StateProcessando State = State(models.StatusProcessando)
	StateConcluida   State = State(models.StatusConcluida)
	StateErro        State = State(models.StatusErro)
	StateTimeout     State = "timeout"
)

type Outcome string

const (
	OutcomeConcluida Outcome = "concluida"
	OutcomeErro      Outcome = "erro"
	OutcomeTimeout   Outcome = "timeout"
	OutcomeCancelado Outcome = "cancelado"
)

var (
	ErrTimeout       = errors.New("a análise ainda não terminou dentro do prazo")
	ErrAnaliseFalhou = errors.New("a análise terminou com erro no backend")
	ErrCancelado     = errors.New("acompanhamento cancelado")
)

// Message é o texto exibido ao usuário para cada desfecho.
func (o Outcome) Message() string {
	switch o {
	case OutcomeConcluida:
		return "A avaliação da IA foi finalizada com sucesso."
	case OutcomeErro:
		return "Ocorreu um erro durante o processamento. Tente novamente."
	case OutcomeTimeout:
		return "A análise está demorando mais que o esperado. Verifique novamente em alguns minutos."
	case OutcomeCancelado:
		return "Acompanhamento cancelado"
	default:
		return string(o)
	}
}
