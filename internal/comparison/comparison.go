// Package comparison prepara a comparação lado a lado de duas empresas já
// avaliadas. O vencedor por critério aparece de duas formas: o sinal
// estrito da diferença (o mesmo campo "vencedor" do backend) e a regra do
// tooltip do gráfico, que trata |diferença| <= 0.15 como empate técnico.
// As duas regras divergem de propósito e não devem ser unificadas.
package comparison

import (
	"errors"
	"math"

	"github.com/Werneck0live/vincipitch-dashboard/internal/models"
)

var (
	ErrSelecaoIncompleta = errors.New("selecione duas empresas para comparar")
	ErrEmpresasIguais    = errors.New("selecione duas empresas diferentes")
)

// ValidateSelection roda antes de qualquer chamada ao backend.
func ValidateSelection(empresaAID, empresaBID string) error {
	if empresaAID == "" || empresaBID == "" {
		return ErrSelecaoIncompleta
	}
	if empresaAID == empresaBID {
		return ErrEmpresasIguais
	}
	return nil
}

type Winner string

const (
	WinnerA      Winner = "A"
	WinnerB      Winner = "B"
	WinnerEmpate Winner = "empate"
)

const TooltipTieThreshold = 0.15

// folga para ruído de ponto flutuante em diferenças como 2.00 - 1.85
const epsilon = 1e-9

func StrictWinner(diff float64) Winner {
	switch {
	case diff > 0:
		return WinnerA
	case diff < 0:
		return WinnerB
	default:
		return WinnerEmpate
	}
}

func TooltipWinner(diff float64) Winner {
	if math.Abs(diff) <= TooltipTieThreshold+epsilon {
		return WinnerEmpate
	}
	return StrictWinner(diff)
}

type Row struct {
	Criterio        string  `json:"criterio"`
	Label           string  `json:"label"`
	NotaA           float64 `json:"nota_a"`
	NotaB           float64 `json:"nota_b"`
	Diferenca       float64 `json:"diferenca"`
	Vencedor        Winner  `json:"vencedor"`
	VencedorTooltip Winner  `json:"vencedor_tooltip"`
	Diverge         bool    `json:"diverge"`
}

// Rows monta uma linha por critério, na ordem fixa dos doze critérios.
// Critério ausente vale 0.
func Rows(notasA, notasB map[string]float64) []Row {
	rows := make([]Row, 0, len(models.Criterios))
	for _, key := range models.Criterios {
		a, b := notasA[key], notasB[key]
		d := a - b
		r := Row{
			Criterio:        key,
			Label:           models.CriterioLabel(key),
			NotaA:           a,
			NotaB:           b,
			Diferenca:       d,
			Vencedor:        StrictWinner(d),
			VencedorTooltip: TooltipWinner(d),
		}
		r.Diverge = r.Vencedor != r.VencedorTooltip
		rows = append(rows, r)
	}
	return rows
}

// Scores extrai os dois mapas de notas do comparativo do backend.
func Scores(c *models.Comparacao) (notasA, notasB map[string]float64) {
	notasA = make(map[string]float64, len(models.Criterios))
	notasB = make(map[string]float64, len(models.Criterios))
	if c == nil {
		return notasA, notasB
	}
	for key, crit := range c.Comparativo {
		notasA[key] = crit.NotaA
		notasB[key] = crit.NotaB
	}
	return notasA, notasB
}

type Summary struct {
	VencedorID string  `json:"vencedor_id,omitempty"`
	Margem     float64 `json:"margem_diferenca"`
	VitoriasA  int     `json:"vitorias_a"`
	VitoriasB  int     `json:"vitorias_b"`
	Empates    int     `json:"empates"`
	MediaA     float64 `json:"media_a"`
	MediaB     float64 `json:"media_b"`
}

// Summarize usa o vencedor e a margem calculados pelo backend. Contagens
// de vitórias ausentes são derivadas do vencedor estrito de cada linha.
func Summarize(c *models.Comparacao, rows []Row) Summary {
	var s Summary
	var sumA, sumB float64
	for _, r := range rows {
		sumA += r.NotaA
		sumB += r.NotaB
		switch r.Vencedor {
		case WinnerA:
			s.VitoriasA++
		case WinnerB:
			s.VitoriasB++
		default:
			s.Empates++
		}
	}
	if len(rows) > 0 {
		s.MediaA = sumA / float64(len(rows))
		s.MediaB = sumB / float64(len(rows))
	}
	if c != nil {
		s.VencedorID = c.VencedorID
		if c.MargemDiferenca != nil {
			s.Margem = *c.MargemDiferenca
		}
		if c.VitoriasA != nil {
			s.VitoriasA = *c.VitoriasA
		}
		if c.VitoriasB != nil {
			s.VitoriasB = *c.VitoriasB
		}
	}
	return s
}

type Result struct {
	Comparacao *models.Comparacao `json:"comparacao"`
	Rows       []Row              `json:"criterios"`
	Summary    Summary            `json:"resumo"`
}

func Build(c *models.Comparacao) Result {
	a, b := Scores(c)
	rows := Rows(a, b)
	return Result{Comparacao: c, Rows: rows, Summary: Summarize(c, rows)}
}
