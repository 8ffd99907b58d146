package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Werneck0live/vincipitch-dashboard/internal/models"
)

// ProcessarAnalise dispara o pipeline de IA para uma empresa. O backend
// responde logo; o andamento é acompanhado por polling.
func (c *Client) ProcessarAnalise(ctx context.Context, empresaID string) (Resultado, error) {
	return c.postResultado(ctx, "/analises/processar/"+seg(empresaID), nil)
}

func (c *Client) ProcessarLote(ctx context.Context, empresaIDs []string) (Resultado, error) {
	if empresaIDs == nil {
		empresaIDs = []string{}
	}
	b, err := json.Marshal(empresaIDs)
	if err != nil {
		return Resultado{}, fmt.Errorf("encode lote: %w", err)
	}
	return c.postResultado(ctx, "/analises/processar-lote", b)
}

func (c *Client) postResultado(ctx context.Context, path string, payload []byte) (Resultado, error) {
	r := request{method: http.MethodPost, path: path}
	if payload != nil {
		r.body = bytes.NewReader(payload)
		r.contentType = "application/json"
	}
	body, _, err := c.do(ctx, r)
	if err != nil {
		return Resultado{}, err
	}
	var res Resultado
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &res); err != nil {
			return Resultado{}, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	return res, nil
}

func (c *Client) ObterAnalise(ctx context.Context, id string) (*models.Analise, error) {
	var a models.Analise
	if _, err := c.getJSON(ctx, "/analises/"+seg(id), nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// ObterAnaliseEmpresa busca a análise mais recente da empresa; é a
// consulta usada em cada tick do polling.
func (c *Client) ObterAnaliseEmpresa(ctx context.Context, empresaID string) (*models.Analise, error) {
	var a models.Analise
	if _, err := c.getJSON(ctx, "/empresas/"+seg(empresaID)+"/analise", nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}
