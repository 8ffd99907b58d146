package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Werneck0live/vincipitch-dashboard/internal/models"
)

func (c *Client) ObterRankingGeral(ctx context.Context, limite, offset int) (*models.RankingResponse, error) {
	if limite <= 0 {
		limite = 50
	}
	q := url.Values{}
	q.Set("limite", strconv.Itoa(limite))
	q.Set("offset", strconv.Itoa(offset))

	var out models.RankingResponse
	if _, err := c.getJSON(ctx, "/rankings/geral", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ObterRankingSetor(ctx context.Context, setor models.Setor, limite int) (*models.RankingResponse, error) {
	if limite <= 0 {
		limite = 50
	}
	q := url.Values{}
	q.Set("limite", strconv.Itoa(limite))

	var out models.RankingResponse
	if _, err := c.getJSON(ctx, "/rankings/setor/"+seg(string(setor)), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ObterEstatisticas(ctx context.Context) ([]models.EstatisticasSetor, error) {
	var out []models.EstatisticasSetor
	if _, err := c.getJSON(ctx, "/rankings/estatisticas", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) FiltrarRanking(ctx context.Context, f models.FiltrosRanking) (*models.RankingResponse, error) {
	var out models.RankingResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/rankings/filtrar", f, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CompararEmpresas(ctx context.Context, empresaAID, empresaBID string) (*models.Comparacao, error) {
	payload := map[string]string{
		"empresa_a_id": empresaAID,
		"empresa_b_id": empresaBID,
	}
	var out models.Comparacao
	if err := c.sendJSON(ctx, http.MethodPost, "/rankings/comparar", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
