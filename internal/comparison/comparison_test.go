package comparison

import (
	"errors"
	"testing"

	"github.com/Werneck0live/vincipitch-dashboard/internal/models"
)

func TestValidateSelection(t *testing.T) {
	cases := []struct {
		a, b string
		want error
	}{
		{"", "", ErrSelecaoIncompleta},
		{"x", "", ErrSelecaoIncompleta},
		{"", "y", ErrSelecaoIncompleta},
		{"x", "x", ErrEmpresasIguais},
		{"x", "y", nil},
	}
	for _, tc := range cases {
		if got := ValidateSelection(tc.a, tc.b); !errors.Is(got, tc.want) {
			t.Fatalf("ValidateSelection(%q,%q)=%v want=%v", tc.a, tc.b, got, tc.want)
		}
	}
}

// As duas regras divergem para |d| em (0, 0.15] e concordam fora disso.
func TestWinnerRulesDiverge(t *testing.T) {
	cases := []struct {
		a, b        float64
		strict      Winner
		tooltip     Winner
		shouldSplit bool
	}{
		{3.10, 3.00, WinnerA, WinnerEmpate, true},
		{3.00, 3.10, WinnerB, WinnerEmpate, true},
		{2.00, 1.85, WinnerA, WinnerEmpate, true}, // |d| == 0.15
		{3.01, 3.00, WinnerA, WinnerEmpate, true},
		{2.50, 2.50, WinnerEmpate, WinnerEmpate, false},
		{3.50, 3.00, WinnerA, WinnerA, false},
		{1.00, 2.00, WinnerB, WinnerB, false},
	}
	for _, tc := range cases {
		d := tc.a - tc.b
		s, tt := StrictWinner(d), TooltipWinner(d)
		if s != tc.strict || tt != tc.tooltip {
			t.Fatalf("d=%.4f strict=%s tooltip=%s want %s/%s", d, s, tt, tc.strict, tc.tooltip)
		}
		if (s != tt) != tc.shouldSplit {
			t.Fatalf("d=%.4f divergence=%v want=%v", d, s != tt, tc.shouldSplit)
		}
	}
}

func TestRows_FixedCriteriaOrder(t *testing.T) {
	a := map[string]float64{models.CriterioPropostaValor: 3.1, models.CriterioParceiros: 2}
	b := map[string]float64{models.CriterioPropostaValor: 3.0, models.CriterioParceiros: 3}

	rows := Rows(a, b)
	if len(rows) != 12 {
		t.Fatalf("len=%d want=12", len(rows))
	}
	for i, r := range rows {
		if r.Criterio != models.Criterios[i] {
			t.Fatalf("row %d criterio=%s want=%s", i, r.Criterio, models.Criterios[i])
		}
	}
	pv := rows[1]
	if pv.Vencedor != WinnerA || pv.VencedorTooltip != WinnerEmpate || !pv.Diverge {
		t.Fatalf("proposta_valor row=%#v", pv)
	}
	if pv.Label != "Proposta de Valor" {
		t.Fatalf("label=%q", pv.Label)
	}
	if rows[0].Vencedor != WinnerEmpate || rows[0].Diverge {
		t.Fatalf("missing criterion must tie: %#v", rows[0])
	}
}

func TestBuild_UsesBackendWinnerAndMargin(t *testing.T) {
	margem := 0.42
	c := &models.Comparacao{
		EmpresaAID:      "a",
		EmpresaBID:      "b",
		VencedorID:      "b",
		MargemDiferenca: &margem,
		Comparativo: map[string]models.ComparativoCriterio{
			models.CriterioSumarioExecutivo: {NotaA: 3, NotaB: 2, Diferenca: 1, Vencedor: "A"},
			models.CriterioConcorrencia:     {NotaA: 1, NotaB: 4, Diferenca: -3, Vencedor: "B"},
			models.CriterioMercadoAlvo:      {NotaA: 2, NotaB: 3, Diferenca: -1, Vencedor: "B"},
		},
	}
	res := Build(c)
	if res.Summary.VencedorID != "b" || res.Summary.Margem != 0.42 {
		t.Fatalf("summary=%#v", res.Summary)
	}
	if res.Summary.VitoriasA != 1 || res.Summary.VitoriasB != 2 || res.Summary.Empates != 9 {
		t.Fatalf("derived victories=%#v", res.Summary)
	}
	if res.Summary.MediaA != 0.5 || res.Summary.MediaB != 0.75 {
		t.Fatalf("medias=%v/%v", res.Summary.MediaA, res.Summary.MediaB)
	}

	va, vb := 5, 7
	c.VitoriasA, c.VitoriasB = &va, &vb
	if s := Build(c).Summary; s.VitoriasA != 5 || s.VitoriasB != 7 {
		t.Fatalf("backend victories must win: %#v", s)
	}
}
