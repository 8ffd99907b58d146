package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/Werneck0live/vincipitch-dashboard/internal/admin"
	"github.com/Werneck0live/vincipitch-dashboard/internal/apiclient"
	"github.com/Werneck0live/vincipitch-dashboard/internal/comparison"
	"github.com/Werneck0live/vincipitch-dashboard/internal/format"
	"github.com/Werneck0live/vincipitch-dashboard/internal/models"
	"github.com/Werneck0live/vincipitch-dashboard/internal/polling"
	"github.com/Werneck0live/vincipitch-dashboard/internal/ranking"
)

// API é o subconjunto do cliente usado pela CLI.
type API interface {
	admin.Seeder
	polling.StatusFetcher
	ObterEmpresa(ctx context.Context, id string) (*models.Empresa, error)
	ProcessarAnalise(ctx context.Context, empresaID string) (apiclient.Resultado, error)
	ProcessarLote(ctx context.Context, empresaIDs []string) (apiclient.Resultado, error)
	ObterRankingGeral(ctx context.Context, limite, offset int) (*models.RankingResponse, error)
	ObterRankingSetor(ctx context.Context, setor models.Setor, limite int) (*models.RankingResponse, error)
	CompararEmpresas(ctx context.Context, empresaAID, empresaBID string) (*models.Comparacao, error)
	ExportarEmpresa(ctx context.Context, empresaID string, f apiclient.Formato) (*apiclient.Blob, error)
	ExportarComparacao(ctx context.Context, empresaAID, empresaBID string, f apiclient.Formato) (*apiclient.Blob, error)
	ExportarRanking(ctx context.Context, setor models.Setor, limite int, f apiclient.Formato) (*apiclient.Blob, error)
}

var _ API = (*apiclient.Client)(nil)

func (c *cli) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.errw)
	return fs
}

// analisar sai com 0 quando a análise conclui e 1 em erro, timeout ou cancelamento.
func (c *cli) analisar(ctx context.Context, args []string) int {
	fs := c.flags("analisar")
	id := fs.String("empresa", "", "id da empresa")
	if err := fs.Parse(args); err != nil || *id == "" {
		fmt.Fprintln(c.errw, "uso: pitchctl analisar -empresa ID")
		return exitUso
	}

	if _, err := c.api.ProcessarAnalise(ctx, *id); err != nil {
		return c.fail(err, "Não foi possível iniciar a análise")
	}
	fmt.Fprintf(c.out, "Análise iniciada para %s\n", *id)

	w := polling.NewAnalysisWatch(*id, c.api, c.cfg.Single, c.log)
	w.OnChange = func(_, next polling.State, _ *models.Analise) {
		fmt.Fprintf(c.out, "  status: %s\n", next)
	}
	if err := w.Start(ctx); err != nil {
		return c.fail(err, "Não foi possível acompanhar a análise")
	}
	// ctx cancelado (Ctrl-C) encerra o watch e o resultado sai como cancelado
	<-w.Done()
	res, _ := w.Result()

	fmt.Fprintln(c.out, res.Outcome.Message())
	if res.Outcome != polling.OutcomeConcluida {
		return exitFalha
	}
	printAnalise(c.out, res.Analise)
	return exitOK
}

func printAnalise(out io.Writer, a *models.Analise) {
	if a == nil {
		return
	}
	fmt.Fprintf(out, "Nota final: %s (%s)\n", format.Nota(a.NotaFinal), format.Percent(a.NotaFinalPercentual))
	if a.ClassificacaoRisco != "" {
		fmt.Fprintf(out, "Risco: %s\n", a.ClassificacaoRisco)
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	notas := a.Notas()
	for _, key := range models.Criterios {
		fmt.Fprintf(tw, "  %s\t%s\n", models.CriterioLabel(key), format.NotaValue(notas[key]))
	}
	_ = tw.Flush()
	if a.ResumoExecutivo != "" {
		fmt.Fprintf(out, "\n%s\n", format.Truncate(a.ResumoExecutivo, 400))
	}
}

func splitIDs(s string) []string {
	var ids []string
	seen := map[string]bool{}
	for _, id := range strings.Split(s, ",") {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

func (c *cli) lote(ctx context.Context, args []string) int {
	fs := c.flags("lote")
	raw := fs.String("empresas", "", "ids separados por vírgula (vazio = todas)")
	if err := fs.Parse(args); err != nil {
		return exitUso
	}

	ids := splitIDs(*raw)
	page, err := c.api.ListarEmpresas(ctx, apiclient.ListarEmpresasParams{Limite: 100})
	if err != nil {
		return c.fail(err, "Não foi possível carregar as empresas")
	}
	byID := make(map[string]models.Empresa, len(page.Data))
	for _, e := range page.Data {
		byID[e.ID] = e
		if *raw == "" {
			ids = append(ids, e.ID)
		}
	}
	if len(ids) == 0 {
		fmt.Fprintln(c.errw, "Nenhuma empresa cadastrada para analisar.")
		return exitFalha
	}

	jobs := make([]polling.Job, 0, len(ids))
	for _, id := range ids {
		j := polling.Job{EmpresaID: id, EmpresaNome: id}
		if e, ok := byID[id]; ok {
			j.EmpresaNome, j.Setor = e.DisplayName(), e.Setor
		}
		jobs = append(jobs, j)
	}

	if _, err := c.api.ProcessarLote(ctx, ids); err != nil {
		return c.fail(err, "Não foi possível iniciar o lote")
	}
	fmt.Fprintf(c.out, "Lote iniciado: %s empresas\n", humanize.Comma(int64(len(jobs))))

	b := polling.NewBatchWatch(jobs, c.api, c.cfg.Batch, c.log)
	b.OnTick = func(p polling.Progress, _ []polling.JobStatus) {
		fmt.Fprintf(c.out, "  tick %d: %d/%d concluídas, %d com erro (%.0f%%)\n", p.Tick, p.Concluidas, p.Total, p.Erros, p.Percent())
	}
	if err := b.Start(ctx); err != nil {
		return c.fail(err, "Não foi possível acompanhar o lote")
	}
	<-b.Done()
	res, _ := b.Result()

	fmt.Fprintln(c.out, res.Outcome.Message())
	entries := ranking.Build(ranking.FromJobs(res.Jobs))
	printEntries(c.out, entries)
	s := ranking.Summarize(entries)
	if s.Analisadas > 0 {
		fmt.Fprintf(c.out, "Média: %s  Melhor: %s  Pior: %s\n", format.NotaValue(s.Media), format.NotaValue(s.MelhorNota), format.NotaValue(s.PiorNota))
	}
	if res.Outcome != polling.OutcomeConcluida {
		return exitFalha
	}
	return exitOK
}

func printEntries(out io.Writer, entries []ranking.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "Nenhuma análise concluída.")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tEMPRESA\tSETOR\tNOTA\t%")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", e.Posicao, format.Truncate(e.Nome, 40), models.SetorLabel(e.Setor), format.NotaValue(e.NotaFinal), format.Percent(e.NotaFinalPercentual))
	}
	_ = tw.Flush()
}

func (c *cli) ranking(ctx context.Context, args []string) int {
	fs := c.flags("ranking")
	setor := fs.String("setor", "", "setor (vazio = geral)")
	limite := fs.Int("limite", 20, "quantidade de empresas")
	if err := fs.Parse(args); err != nil {
		return exitUso
	}

	var (
		resp *models.RankingResponse
		err  error
	)
	if *setor == "" {
		resp, err = c.api.ObterRankingGeral(ctx, *limite, 0)
	} else {
		s := models.Setor(strings.ToLower(*setor))
		if !s.Valid() {
			fmt.Fprintf(c.errw, "setor inválido: %s\n", *setor)
			return exitUso
		}
		resp, err = c.api.ObterRankingSetor(ctx, s, *limite)
	}
	if err != nil {
		return c.fail(err, "Não foi possível carregar o ranking")
	}

	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tEMPRESA\tSETOR\tNOTA\tFATURAMENTO")
	for i, it := range resp.Items {
		pos := i + 1
		if it.Posicao != nil {
			pos = *it.Posicao
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", pos, format.Truncate(it.Nome, 40), models.SetorLabel(it.Setor), format.NotaValue(it.NotaFinal), format.Currency(it.FaturamentoAnual))
	}
	_ = tw.Flush()
	fmt.Fprintf(c.out, "Total: %s\n", humanize.Comma(int64(resp.Total)))
	return exitOK
}

func (c *cli) comparar(ctx context.Context, args []string) int {
	fs := c.flags("comparar")
	a := fs.String("a", "", "id da empresa A")
	b := fs.String("b", "", "id da empresa B")
	if err := fs.Parse(args); err != nil {
		return exitUso
	}
	if err := comparison.ValidateSelection(*a, *b); err != nil {
		fmt.Fprintf(c.errw, "erro: %v\n", err)
		return exitUso
	}

	cmp, err := c.api.CompararEmpresas(ctx, *a, *b)
	if err != nil {
		return c.fail(err, "Não foi possível comparar as empresas")
	}
	res := comparison.Build(cmp)

	nomeA, nomeB := "Empresa A", "Empresa B"
	if cmp.EmpresaA != nil {
		nomeA = cmp.EmpresaA.DisplayName()
	}
	if cmp.EmpresaB != nil {
		nomeB = cmp.EmpresaB.DisplayName()
	}

	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "CRITÉRIO\t%s\t%s\tDIF\tVENCEDOR\n", nomeA, nomeB)
	for _, r := range res.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%+.2f\t%s\n", r.Label, format.NotaValue(r.NotaA), format.NotaValue(r.NotaB), r.Diferenca, r.Vencedor)
	}
	_ = tw.Flush()

	s := res.Summary
	fmt.Fprintf(c.out, "Vitórias: %s %d x %d %s (%d empates)\n", nomeA, s.VitoriasA, s.VitoriasB, nomeB, s.Empates)
	switch s.VencedorID {
	case cmp.EmpresaAID:
		fmt.Fprintf(c.out, "Vencedor: %s por %s\n", nomeA, format.NotaValue(s.Margem))
	case cmp.EmpresaBID:
		fmt.Fprintf(c.out, "Vencedor: %s por %s\n", nomeB, format.NotaValue(s.Margem))
	default:
		fmt.Fprintln(c.out, "Empate")
	}
	return exitOK
}

func (c *cli) exportar(ctx context.Context, args []string) int {
	fs := c.flags("exportar")
	tipo := fs.String("tipo", "empresa", "empresa, comparacao ou ranking")
	formatoRaw := fs.String("formato", "pdf", "pdf, docx ou xlsx")
	empresa := fs.String("empresa", "", "id da empresa (tipo empresa)")
	a := fs.String("a", "", "empresa A (tipo comparacao)")
	b := fs.String("b", "", "empresa B (tipo comparacao)")
	setor := fs.String("setor", "", "setor (tipo ranking)")
	limite := fs.Int("limite", 50, "limite (tipo ranking)")
	dir := fs.String("dir", ".", "diretório de destino")
	if err := fs.Parse(args); err != nil {
		return exitUso
	}
	f, err := apiclient.ParseFormato(strings.ToLower(*formatoRaw))
	if err != nil {
		fmt.Fprintf(c.errw, "erro: %v\n", err)
		return exitUso
	}
	ext := string(f)

	var (
		blob *apiclient.Blob
		name string
	)
	switch *tipo {
	case "empresa":
		if *empresa == "" {
			fmt.Fprintln(c.errw, "uso: pitchctl exportar -tipo empresa -empresa ID")
			return exitUso
		}
		blob, err = c.api.ExportarEmpresa(ctx, *empresa, f)
		if err == nil {
			name = format.ExportFilename("analise", c.nomeEmpresa(ctx, *empresa), ext)
		}
	case "comparacao":
		if err := comparison.ValidateSelection(*a, *b); err != nil {
			fmt.Fprintf(c.errw, "erro: %v\n", err)
			return exitUso
		}
		blob, err = c.api.ExportarComparacao(ctx, *a, *b, f)
		if err == nil {
			name = format.ComparisonFilename(c.nomeEmpresa(ctx, *a), c.nomeEmpresa(ctx, *b), ext)
		}
	case "ranking":
		blob, err = c.api.ExportarRanking(ctx, models.Setor(strings.ToLower(*setor)), *limite, f)
		name = format.RankingFilename(strings.ToLower(*setor), ext)
	default:
		fmt.Fprintf(c.errw, "tipo inválido: %s\n", *tipo)
		return exitUso
	}
	if err != nil {
		return c.fail(err, fmt.Sprintf("Não foi possível gerar o arquivo %s.", strings.ToUpper(ext)))
	}

	path := filepath.Join(*dir, name)
	if err := os.WriteFile(path, blob.Data, 0o644); err != nil {
		fmt.Fprintf(c.errw, "erro: %v\n", err)
		return exitFalha
	}
	fmt.Fprintf(c.out, "Arquivo salvo: %s (%s)\n", path, format.Bytes(int64(len(blob.Data))))
	return exitOK
}

// nomeEmpresa é só para o nome do arquivo; falha de lookup não aborta.
func (c *cli) nomeEmpresa(ctx context.Context, id string) string {
	e, err := c.api.ObterEmpresa(ctx, id)
	if err != nil {
		c.log.Debug("empresa_lookup_failed", "empresa_id", id, "err", err)
		return ""
	}
	return e.DisplayName()
}

func (c *cli) seed(ctx context.Context) int {
	rep, err := admin.SeedEmpresas(ctx, c.api, c.log)
	if err != nil {
		return c.fail(err, "Falha ao cadastrar as empresas de demonstração")
	}
	fmt.Fprintf(c.out, "Seed: %d criadas, %d já existiam, %d inválidas\n", rep.Criadas, rep.Existentes, rep.Invalidas)
	return exitOK
}
