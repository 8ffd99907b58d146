package ranking

import (
	"math"
	"testing"

	"github.com/Werneck0live/vincipitch-dashboard/internal/models"
	"github.com/Werneck0live/vincipitch-dashboard/internal/polling"
)

func n(v float64) *float64 { return &v }

func concluida(id string, nf float64) Candidate {
	return Candidate{EmpresaID: id, Nome: "Empresa " + id, Setor: models.SetorFintech, Status: models.StatusConcluida, NotaFinal: n(nf)}
}

func TestBuild_TieKeepsInputOrder(t *testing.T) {
	got := Build([]Candidate{concluida("1", 3.8), concluida("2", 3.8), concluida("3", 2.1)})

	if len(got) != 3 {
		t.Fatalf("len=%d want=3", len(got))
	}
	wantIDs := []string{"1", "2", "3"}
	for i, e := range got {
		if e.Posicao != i+1 {
			t.Fatalf("pos[%d]=%d want=%d", i, e.Posicao, i+1)
		}
		if e.EmpresaID != wantIDs[i] {
			t.Fatalf("id[%d]=%s want=%s", i, e.EmpresaID, wantIDs[i])
		}
	}
}

func TestBuild_FiltersAndSorts(t *testing.T) {
	in := []Candidate{
		concluida("a", 1.5),
		{EmpresaID: "b", Status: models.StatusProcessando, NotaFinal: n(4)},
		{EmpresaID: "c", Status: models.StatusConcluida},
		concluida("d", 3.9),
		{EmpresaID: "e", Status: models.StatusErro},
		concluida("f", 2.7),
		concluida("g", 3.9),
	}
	got := Build(in)

	wantIDs := []string{"d", "g", "f", "a"}
	if len(got) != len(wantIDs) {
		t.Fatalf("len=%d want=%d (%#v)", len(got), len(wantIDs), got)
	}
	for i := range got {
		if got[i].EmpresaID != wantIDs[i] {
			t.Fatalf("order[%d]=%s want=%s", i, got[i].EmpresaID, wantIDs[i])
		}
		if got[i].Posicao != i+1 {
			t.Fatalf("positions must be 1..n without gaps: %#v", got)
		}
		if i > 0 && got[i].NotaFinal > got[i-1].NotaFinal {
			t.Fatalf("not descending at %d", i)
		}
	}
	if got[0].CorSetor != "#00E676" {
		t.Fatalf("cor=%s", got[0].CorSetor)
	}
}

func TestBuild_Empty(t *testing.T) {
	if got := Build(nil); len(got) != 0 {
		t.Fatalf("want empty, got %#v", got)
	}
}

func TestFromJobs(t *testing.T) {
	jobs := []polling.JobStatus{
		{EmpresaID: "x", EmpresaNome: "X", Status: models.StatusConcluida, NotaFinal: n(2)},
		{EmpresaID: "y", EmpresaNome: "Y", Status: models.StatusPendente},
	}
	got := Build(FromJobs(jobs))
	if len(got) != 1 || got[0].Nome != "X" {
		t.Fatalf("unexpected: %#v", got)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(Build([]Candidate{concluida("1", 3), concluida("2", 2), concluida("3", 1)}))
	if s.Analisadas != 3 || s.Media != 2 || s.MelhorNota != 3 || s.PiorNota != 1 {
		t.Fatalf("summary=%#v", s)
	}
	if s.Lider == nil || s.Lider.EmpresaID != "1" {
		t.Fatalf("lider=%#v", s.Lider)
	}

	empty := Summarize(nil)
	if empty.Analisadas != 0 || empty.Lider != nil || math.IsNaN(empty.Media) {
		t.Fatalf("empty summary=%#v", empty)
	}
}

func TestDashboard_WeightedMean(t *testing.T) {
	d := Dashboard([]models.EstatisticasSetor{
		{Setor: models.SetorFintech, TotalEmpresas: 3, MediaNota: 3.0},
		{Setor: models.SetorEdtech, TotalEmpresas: 1, MediaNota: 3.4},
		{Setor: models.SetorOutro, TotalEmpresas: 0, MediaNota: 0},
	})
	if d.TotalEmpresas != 4 {
		t.Fatalf("total=%d", d.TotalEmpresas)
	}
	if math.Abs(d.MediaGeral-3.1) > 1e-9 {
		t.Fatalf("media=%v want=3.1", d.MediaGeral)
	}
	if d.TopSetor != models.SetorEdtech {
		t.Fatalf("top=%s", d.TopSetor)
	}
	if z := Dashboard(nil); z.MediaGeral != 0 || z.TopSetor != "" {
		t.Fatalf("empty dashboard=%#v", z)
	}
}

func TestSectorColor(t *testing.T) {
	cases := []struct {
		setor string
		want  string
	}{
		{"fintech", "#00E676"},
		{"FinTech", "#00E676"},
		{"biotech", "#EC4899"},
		{"outro", DefaultSectorColor},
		{"cosmetica_natural", DefaultSectorColor},
		{"", DefaultSectorColor},
		{"nao-existe", DefaultSectorColor},
	}
	for _, tc := range cases {
		for i := 0; i < 3; i++ {
			if got := SectorColor(tc.setor); got != tc.want {
				t.Fatalf("SectorColor(%q)=%s want=%s", tc.setor, got, tc.want)
			}
		}
	}

	m := SectorColors()
	m["fintech"] = "#000000"
	if SectorColor("fintech") != "#00E676" {
		t.Fatal("SectorColors must return a copy")
	}
}
