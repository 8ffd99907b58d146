package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Werneck0live/vincipitch-dashboard/internal/apiclient"
	"github.com/Werneck0live/vincipitch-dashboard/internal/models"
	"github.com/Werneck0live/vincipitch-dashboard/internal/polling"
	"github.com/Werneck0live/vincipitch-dashboard/internal/ranking"
	"github.com/Werneck0live/vincipitch-dashboard/internal/utils"
)

// AnaliseStatusResponse é o estado do acompanhamento de uma empresa.
type AnaliseStatusResponse struct {
	EmpresaID string          `json:"empresa_id"`
	State     polling.State   `json:"state"`
	Ativo     bool            `json:"ativo"`
	Outcome   polling.Outcome `json:"outcome,omitempty"`
	Analise   *models.Analise `json:"analise,omitempty"`
	Notice    *utils.Notice   `json:"notice,omitempty"`
}

type LoteResponse struct {
	BatchID    string              `json:"batch_id"`
	Ativo      bool                `json:"ativo"`
	Outcome    polling.Outcome     `json:"outcome,omitempty"`
	Progress   polling.Progress    `json:"progress"`
	Percentual float64             `json:"percentual"`
	Jobs       []polling.JobStatus `json:"jobs"`
	Ranking    []ranking.Entry     `json:"ranking"`
	Resumo     ranking.Summary     `json:"resumo"`
	Notice     *utils.Notice       `json:"notice,omitempty"`
}

func outcomeNotice(o polling.Outcome) *utils.Notice {
	switch o {
	case polling.OutcomeConcluida:
		return &utils.Notice{Tipo: utils.NoticeSuccess, Titulo: "Análise concluída!", Mensagem: o.Message()}
	case polling.OutcomeErro:
		return &utils.Notice{Tipo: utils.NoticeError, Titulo: "Erro na análise", Mensagem: o.Message()}
	case polling.OutcomeTimeout:
		return &utils.Notice{Tipo: utils.NoticeWarning, Titulo: "Timeout", Mensagem: o.Message()}
	case polling.OutcomeCancelado:
		return &utils.Notice{Tipo: utils.NoticeInfo, Titulo: "Cancelado", Mensagem: o.Message()}
	}
	return nil
}

func watchStatus(wt *polling.AnalysisWatch) AnaliseStatusResponse {
	resp := AnaliseStatusResponse{EmpresaID: wt.EmpresaID(), State: wt.State(), Ativo: true}
	if res, done := wt.Result(); done {
		resp.Ativo = false
		resp.State = res.State
		resp.Outcome = res.Outcome
		resp.Analise = res.Analise
		resp.Notice = outcomeNotice(res.Outcome)
	}
	return resp
}

func (h *Handler) StartAnalise(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	ctx, cancel := h.ctx(r)
	defer cancel()

	if _, err := h.API.ProcessarAnalise(ctx, id); err != nil {
		h.backendError(w, r, err, "Erro ao iniciar análise", "Tente novamente mais tarde.")
		return
	}

	// o nome só enriquece a notificação; falha aqui não impede o acompanhamento
	nome := ""
	if e, err := h.API.ObterEmpresa(ctx, id); err == nil {
		nome = e.DisplayName()
	}
	wt, err := h.Session.Watch(id, nome)
	if err != nil {
		utils.WriteNotice(w, http.StatusServiceUnavailable, utils.Notice{Titulo: "Erro ao iniciar análise", Mensagem: err.Error()})
		return
	}

	resp := watchStatus(wt)
	resp.Notice = &utils.Notice{
		Tipo:     utils.NoticeSuccess,
		Titulo:   "Análise iniciada!",
		Mensagem: "A IA está avaliando o pitch deck. Isso pode levar alguns minutos.",
	}
	utils.WriteJSON(w, http.StatusAccepted, resp)
}

// AnaliseStatus devolve o acompanhamento local. Sem acompanhamento (ex.:
// após recarregar o painel) o status é lido uma vez e, se o job ainda
// estiver em andamento, o acompanhamento é retomado.
func (h *Handler) AnaliseStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if wt, ok := h.Session.Analysis(id); ok {
		res, done := wt.Result()
		if !done || res.Outcome == polling.OutcomeConcluida {
			utils.WriteJSON(w, http.StatusOK, watchStatus(wt))
			return
		}
		// timeout ou cancelado: o backend pode ter avançado desde então
		h.Session.Forget(id, wt)
	}

	ctx, cancel := h.ctx(r)
	defer cancel()
	a, err := h.API.ObterAnaliseEmpresa(ctx, id)
	if err != nil {
		h.backendError(w, r, err, "Análise não encontrada", "Nenhuma análise para esta empresa.")
		return
	}

	resp := AnaliseStatusResponse{EmpresaID: id, State: polling.State(a.Status), Analise: a}
	switch a.Status {
	case models.StatusConcluida:
		resp.Outcome = polling.OutcomeConcluida
		resp.Notice = outcomeNotice(resp.Outcome)
	case models.StatusErro:
		resp.Outcome = polling.OutcomeErro
		resp.Notice = outcomeNotice(resp.Outcome)
	case models.StatusPendente, models.StatusProcessando:
		if wt, err := h.Session.Watch(id, ""); err == nil {
			resp.Ativo = true
			resp.State = wt.State()
			h.Log.Info("watch_resumed", "empresa_id", id, "status", a.Status)
		}
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) CancelAnalise(w http.ResponseWriter, r *http.Request) {
	if !h.Session.CancelAnalysis(r.PathValue("id")) {
		utils.WriteNotice(w, http.StatusNotFound, utils.Notice{Titulo: "Nada a cancelar", Mensagem: "Nenhuma análise em acompanhamento para esta empresa."})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetAnalise(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ctx(r)
	defer cancel()
	a, err := h.API.ObterAnalise(ctx, r.PathValue("id"))
	if err != nil {
		h.backendError(w, r, err, "Erro ao carregar análise", "Análise não encontrada.")
		return
	}
	utils.WriteJSON(w, http.StatusOK, analiseView(a))
}

func (h *Handler) StartLote(w http.ResponseWriter, r *http.Request) {
	var dto LoteDTO
	if r.ContentLength != 0 {
		// corpo vazio = todas as empresas
		if err := utils.DecodeStrict(r.Body, &dto); err != nil && !errors.Is(err, io.EOF) {
			utils.BadRequest(w, utils.FormatUnknownFieldError(err))
			return
		}
	}

	ctx, cancel := h.ctx(r)
	defer cancel()
	page, err := h.API.ListarEmpresas(ctx, apiclient.ListarEmpresasParams{Limite: 100})
	if err != nil {
		h.backendError(w, r, err, "Erro ao carregar empresas", "Tente novamente mais tarde.")
		return
	}

	jobs := batchJobs(page.Data, dto.EmpresaIDs)
	if len(jobs) == 0 {
		utils.WriteNotice(w, http.StatusUnprocessableEntity, utils.Notice{
			Tipo:     utils.NoticeWarning,
			Titulo:   "Sem empresas",
			Mensagem: "Cadastre empresas antes de iniciar a análise.",
		})
		return
	}

	ids := make([]string, len(jobs))
	for i, j := range jobs {
		ids[i] = j.EmpresaID
	}
	if _, err := h.API.ProcessarLote(ctx, ids); err != nil {
		h.backendError(w, r, err, "Erro", "Falha ao iniciar análise em lote.")
		return
	}

	b, batchID, err := h.Session.StartBatch(jobs)
	if err != nil {
		utils.WriteNotice(w, http.StatusServiceUnavailable, utils.Notice{Titulo: "Erro", Mensagem: err.Error()})
		return
	}

	resp := loteStatus(b, batchID)
	resp.Notice = &utils.Notice{
		Tipo:     utils.NoticeSuccess,
		Titulo:   "Análise iniciada!",
		Mensagem: fmt.Sprintf("Processando %d empresas...", len(jobs)),
	}
	utils.WriteJSON(w, http.StatusAccepted, resp)
}

// batchJobs monta os jobs na ordem pedida; sem ids, todas as empresas.
func batchJobs(empresas []models.Empresa, ids []string) []polling.Job {
	byID := make(map[string]models.Empresa, len(empresas))
	for _, e := range empresas {
		byID[e.ID] = e
	}
	if len(ids) == 0 {
		jobs := make([]polling.Job, len(empresas))
		for i, e := range empresas {
			jobs[i] = polling.Job{EmpresaID: e.ID, EmpresaNome: e.DisplayName(), Setor: e.Setor}
		}
		return jobs
	}
	seen := make(map[string]bool, len(ids))
	jobs := make([]polling.Job, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		j := polling.Job{EmpresaID: id, EmpresaNome: id}
		if e, ok := byID[id]; ok {
			j.EmpresaNome, j.Setor = e.DisplayName(), e.Setor
		}
		jobs = append(jobs, j)
	}
	return jobs
}

func loteStatus(b *polling.BatchWatch, batchID string) LoteResponse {
	p, jobs := b.Snapshot()
	resp := LoteResponse{BatchID: batchID, Ativo: true, Progress: p, Percentual: p.Percent(), Jobs: jobs}
	if res, done := b.Result(); done {
		resp.Ativo = false
		resp.Outcome = res.Outcome
		resp.Progress, resp.Jobs = res.Progress, res.Jobs
		resp.Percentual = res.Progress.Percent()
		resp.Notice = outcomeNotice(res.Outcome)
		if res.Outcome == polling.OutcomeConcluida {
			resp.Notice.Mensagem = fmt.Sprintf("%d empresas analisadas.", res.Progress.Concluidas)
		}
	}
	resp.Ranking = ranking.Build(ranking.FromJobs(resp.Jobs))
	resp.Resumo = ranking.Summarize(resp.Ranking)
	return resp
}

func (h *Handler) LoteStatus(w http.ResponseWriter, r *http.Request) {
	b, batchID, ok := h.Session.Batch()
	if !ok {
		utils.WriteNotice(w, http.StatusNotFound, utils.Notice{Titulo: "Nenhum lote", Mensagem: "Nenhuma análise em lote foi iniciada."})
		return
	}
	utils.WriteJSON(w, http.StatusOK, loteStatus(b, batchID))
}

func (h *Handler) CancelLote(w http.ResponseWriter, r *http.Request) {
	if !h.Session.CancelBatch() {
		utils.WriteNotice(w, http.StatusNotFound, utils.Notice{Titulo: "Nenhum lote", Mensagem: "Nenhuma análise em lote foi iniciada."})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
