// Package ranking deriva rankings a partir de notas já calculadas pelo
// backend. Nenhuma nota é recalculada aqui.
package ranking

import (
	"sort"

	"github.com/Werneck0live/vincipitch-dashboard/internal/models"
	"github.com/Werneck0live/vincipitch-dashboard/internal/polling"
)

type Candidate struct {
	EmpresaID           string
	Nome                string
	Setor               models.Setor
	Status              models.StatusAnalise
	NotaFinal           *float64
	NotaFinalPercentual *float64
}

type Entry struct {
	Posicao             int          `json:"posicao"`
	EmpresaID           string       `json:"empresa_id"`
	Nome                string       `json:"nome"`
	Setor               models.Setor `json:"setor"`
	NotaFinal           float64      `json:"nota_final"`
	NotaFinalPercentual *float64     `json:"nota_final_percentual,omitempty"`
	CorSetor            string       `json:"cor_setor"`
}

// Build filtra as análises concluídas com nota definida, ordena por nota
// decrescente (empates mantêm a ordem de entrada) e numera 1..n pela
// posição ordenada. Empates recebem posições distintas.
func Build(cs []Candidate) []Entry {
	kept := make([]Candidate, 0, len(cs))
	for _, c := range cs {
		if c.Status == models.StatusConcluida && c.NotaFinal != nil {
			kept = append(kept, c)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return *kept[i].NotaFinal > *kept[j].NotaFinal
	})

	out := make([]Entry, len(kept))
	for i, c := range kept {
		out[i] = Entry{
			Posicao:             i + 1,
			EmpresaID:           c.EmpresaID,
			Nome:                c.Nome,
			Setor:               c.Setor,
			NotaFinal:           *c.NotaFinal,
			NotaFinalPercentual: c.NotaFinalPercentual,
			CorSetor:            SectorColor(string(c.Setor)),
		}
	}
	return out
}

// FromJobs adapta o snapshot do lote.
func FromJobs(jobs []polling.JobStatus) []Candidate {
	out := make([]Candidate, len(jobs))
	for i, j := range jobs {
		out[i] = Candidate{
			EmpresaID:           j.EmpresaID,
			Nome:                j.EmpresaNome,
			Setor:               j.Setor,
			Status:              j.Status,
			NotaFinal:           j.NotaFinal,
			NotaFinalPercentual: j.NotaFinalPercentual,
		}
	}
	return out
}

// FromItems adapta itens do ranking do backend, que só traz análises concluídas.
func FromItems(items []models.RankingItem) []Candidate {
	out := make([]Candidate, len(items))
	for i, it := range items {
		nf := it.NotaFinal
		out[i] = Candidate{
			EmpresaID:           it.ID,
			Nome:                it.Nome,
			Setor:               it.Setor,
			Status:              models.StatusConcluida,
			NotaFinal:           &nf,
			NotaFinalPercentual: it.NotaFinalPercentual,
		}
	}
	return out
}

type Summary struct {
	Analisadas int     `json:"analisadas"`
	Media      float64 `json:"media"`
	MelhorNota float64 `json:"melhor_nota"`
	PiorNota   float64 `json:"pior_nota"`
	Lider      *Entry  `json:"lider,omitempty"`
}

func Summarize(entries []Entry) Summary {
	s := Summary{Analisadas: len(entries)}
	if len(entries) == 0 {
		return s
	}
	sum := 0.0
	s.MelhorNota = entries[0].NotaFinal
	s.PiorNota = entries[0].NotaFinal
	for _, e := range entries {
		sum += e.NotaFinal
		if e.NotaFinal > s.MelhorNota {
			s.MelhorNota = e.NotaFinal
		}
		if e.NotaFinal < s.PiorNota {
			s.PiorNota = e.NotaFinal
		}
	}
	s.Media = sum / float64(len(entries))
	lider := entries[0]
	s.Lider = &lider
	return s
}
