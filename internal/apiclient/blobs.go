package apiclient

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Werneck0live/vincipitch-dashboard/internal/models"
)

// Formato de exportação aceito pelo backend.
type Formato string

const (
	FormatoPDF  Formato = "pdf"
	FormatoDOCX Formato = "docx"
	FormatoXLSX Formato = "xlsx"
)

func (f Formato) ContentType() string {
	switch f {
	case FormatoPDF:
		return "application/pdf"
	case FormatoDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case FormatoXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

// ErrFormatoInvalido é devolvido antes de qualquer requisição.
var ErrFormatoInvalido = errors.New("formato de exportação inválido")

// Blob é uma resposta binária opaca (gráfico ou documento exportado).
// O conteúdo nunca é interpretado aqui.
type Blob struct {
	ContentType string
	Filename    string
	Data        []byte
}

func (c *Client) blob(ctx context.Context, method, path string, q url.Values, fallbackType string) (*Blob, error) {
	body, hdr, err := c.do(ctx, request{method: method, path: path, query: q, accept: "*/*"})
	if err != nil {
		return nil, err
	}
	ct := hdr.Get("Content-Type")
	if ct == "" {
		ct = fallbackType
	}
	return &Blob{ContentType: ct, Filename: filenameFrom(hdr.Get("Content-Disposition")), Data: body}, nil
}

func filenameFrom(disposition string) string {
	if disposition == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	return params["filename"]
}

func (c *Client) ObterGraficoRadar(ctx context.Context, analiseID string) (*Blob, error) {
	return c.blob(ctx, http.MethodGet, "/analises/"+seg(analiseID)+"/grafico-radar", nil, "image/png")
}

func (c *Client) ObterGraficoComparativo(ctx context.Context, empresaAID, empresaBID string) (*Blob, error) {
	return c.blob(ctx, http.MethodGet, "/rankings/comparar/"+seg(empresaAID)+"/"+seg(empresaBID)+"/grafico", nil, "image/png")
}

func (c *Client) ObterGraficoBarras(ctx context.Context, setor models.Setor, limite int) (*Blob, error) {
	if limite <= 0 {
		limite = 15
	}
	q := url.Values{}
	if setor != "" {
		q.Set("setor", string(setor))
	}
	q.Set("limite", strconv.Itoa(limite))
	return c.blob(ctx, http.MethodGet, "/rankings/grafico-barras", q, "image/png")
}

func (c *Client) ExportarEmpresa(ctx context.Context, empresaID string, f Formato) (*Blob, error) {
	if f != FormatoPDF && f != FormatoDOCX {
		return nil, fmt.Errorf("%w: %q", ErrFormatoInvalido, f)
	}
	return c.blob(ctx, http.MethodPost, "/exportacoes/empresa/"+seg(empresaID)+"/"+string(f), nil, f.ContentType())
}

func (c *Client) ExportarComparacao(ctx context.Context, empresaAID, empresaBID string, f Formato) (*Blob, error) {
	if f != FormatoPDF && f != FormatoDOCX {
		return nil, fmt.Errorf("%w: %q", ErrFormatoInvalido, f)
	}
	path := "/exportacoes/comparacao/" + seg(empresaAID) + "/" + seg(empresaBID) + "/" + string(f)
	return c.blob(ctx, http.MethodPost, path, nil, f.ContentType())
}

// ExportarRanking aceita xlsx (limite padrão 100) ou pdf (limite padrão 50).
func (c *Client) ExportarRanking(ctx context.Context, setor models.Setor, limite int, f Formato) (*Blob, error) {
	switch f {
	case FormatoXLSX:
		if limite <= 0 {
			limite = 100
		}
	case FormatoPDF:
		if limite <= 0 {
			limite = 50
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormatoInvalido, f)
	}
	q := url.Values{}
	if setor != "" {
		q.Set("setor", string(setor))
	}
	q.Set("limite", strconv.Itoa(limite))
	return c.blob(ctx, http.MethodPost, "/exportacoes/ranking/"+string(f), q, f.ContentType())
}

func ParseFormato(s string) (Formato, error) {
	switch f := Formato(s); f {
	case FormatoPDF, FormatoDOCX, FormatoXLSX:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrFormatoInvalido, s)
}
