package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/Werneck0live/vincipitch-dashboard/internal/comparison"
	"github.com/Werneck0live/vincipitch-dashboard/internal/models"
	"github.com/Werneck0live/vincipitch-dashboard/internal/ranking"
	"github.com/Werneck0live/vincipitch-dashboard/internal/utils"
)

type DashboardResponse struct {
	Top          []ranking.Entry            `json:"top"`
	Estatisticas ranking.DashboardStats     `json:"estatisticas"`
	Setores      []models.EstatisticasSetor `json:"setores"`
	Cores        map[string]string          `json:"cores"`
}

type RankingResponse struct {
	Ranking      *models.RankingResponse    `json:"ranking"`
	Entries      []ranking.Entry            `json:"entries"`
	Resumo       ranking.Summary            `json:"resumo"`
	Estatisticas []models.EstatisticasSetor `json:"estatisticas"`
	Cores        map[string]string          `json:"cores"`
}

func queryInt(r *http.Request, key string, def, max int) int {
	if v, err := strconv.Atoi(r.URL.Query().Get(key)); err == nil && v > 0 && v <= max {
		return v
	}
	return def
}

// Dashboard carrega o top 10 geral e as estatísticas por setor em paralelo.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ctx(r)
	defer cancel()

	var (
		rk    *models.RankingResponse
		stats []models.EstatisticasSetor
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		rk, err = h.API.ObterRankingGeral(gctx, 10, 0)
		return err
	})
	g.Go(func() (err error) {
		stats, err = h.API.ObterEstatisticas(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		h.backendError(w, r, err, "Erro ao carregar painel", "Tente novamente mais tarde.")
		return
	}
	if stats == nil {
		stats = []models.EstatisticasSetor{}
	}

	utils.WriteJSON(w, http.StatusOK, DashboardResponse{
		Top:          ranking.Build(ranking.FromItems(rk.Items)),
		Estatisticas: ranking.Dashboard(stats),
		Setores:      stats,
		Cores:        ranking.SectorColors(),
	})
}

func (h *Handler) Ranking(w http.ResponseWriter, r *http.Request) {
	setor, err := parseSetor(r.URL.Query().Get("setor"))
	if err != nil {
		utils.BadRequest(w, err.Error())
		return
	}
	limite := queryInt(r, "limite", 50, 500)

	ctx, cancel := h.ctx(r)
	defer cancel()

	var (
		rk    *models.RankingResponse
		stats []models.EstatisticasSetor
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if setor != "" {
			rk, err = h.API.ObterRankingSetor(gctx, setor, limite)
		} else {
			rk, err = h.API.ObterRankingGeral(gctx, limite, 0)
		}
		return err
	})
	g.Go(func() (err error) {
		stats, err = h.API.ObterEstatisticas(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		h.backendError(w, r, err, "Erro ao carregar ranking", "Tente novamente mais tarde.")
		return
	}
	utils.WriteJSON(w, http.StatusOK, rankingResponse(rk, stats))
}

func rankingResponse(rk *models.RankingResponse, stats []models.EstatisticasSetor) RankingResponse {
	if stats == nil {
		stats = []models.EstatisticasSetor{}
	}
	entries := ranking.Build(ranking.FromItems(rk.Items))
	return RankingResponse{
		Ranking:      rk,
		Entries:      entries,
		Resumo:       ranking.Summarize(entries),
		Estatisticas: stats,
		Cores:        ranking.SectorColors(),
	}
}

func (h *Handler) FiltrarRanking(w http.ResponseWriter, r *http.Request) {
	var f models.FiltrosRanking
	if err := utils.DecodeStrict(r.Body, &f); err != nil {
		utils.BadRequest(w, utils.FormatUnknownFieldError(err))
		return
	}
	for _, s := range f.Setores {
		if !s.Valid() {
			utils.BadRequest(w, "setor inválido: "+string(s))
			return
		}
	}

	ctx, cancel := h.ctx(r)
	defer cancel()
	rk, err := h.API.FiltrarRanking(ctx, f)
	if err != nil {
		h.backendError(w, r, err, "Erro ao filtrar ranking", "Tente novamente mais tarde.")
		return
	}
	utils.WriteJSON(w, http.StatusOK, rankingResponse(rk, nil))
}

// Comparar valida a seleção antes de qualquer chamada ao backend.
func (h *Handler) Comparar(w http.ResponseWriter, r *http.Request) {
	var dto CompararDTO
	if err := utils.DecodeStrict(r.Body, &dto); err != nil {
		utils.BadRequest(w, utils.FormatUnknownFieldError(err))
		return
	}
	switch err := comparison.ValidateSelection(dto.EmpresaAID, dto.EmpresaBID); {
	case err == nil:
	case errors.Is(err, comparison.ErrEmpresasIguais):
		utils.WriteNotice(w, http.StatusBadRequest, utils.Notice{Tipo: utils.NoticeError, Titulo: "Empresas iguais", Mensagem: "Selecione duas empresas diferentes para comparar."})
		return
	default:
		utils.WriteNotice(w, http.StatusBadRequest, utils.Notice{Tipo: utils.NoticeError, Titulo: "Selecione as empresas", Mensagem: "Escolha duas empresas para comparar."})
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()
	c, err := h.API.CompararEmpresas(ctx, dto.EmpresaAID, dto.EmpresaBID)
	if err != nil {
		h.backendError(w, r, err, "Erro na comparação", "Não foi possível comparar as empresas.")
		return
	}
	utils.WriteJSON(w, http.StatusOK, comparison.Build(c))
}
