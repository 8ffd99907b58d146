package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"

	"github.com/Werneck0live/vincipitch-dashboard/internal/models"
)

type ListarEmpresasParams struct {
	Setor  models.Setor
	Busca  string
	Limite int
	Offset int
}

func (p ListarEmpresasParams) query() url.Values {
	q := url.Values{}
	if p.Setor != "" {
		q.Set("setor", string(p.Setor))
	}
	if p.Busca != "" {
		q.Set("busca", p.Busca)
	}
	if p.Limite > 0 {
		q.Set("limite", strconv.Itoa(p.Limite))
	}
	if p.Offset > 0 {
		q.Set("offset", strconv.Itoa(p.Offset))
	}
	return q
}

type EmpresaPage struct {
	Data   []models.Empresa `json:"data"`
	Total  int              `json:"total"`
	Limit  *int             `json:"limit,omitempty"`
	Offset *int             `json:"offset,omitempty"`
}

// Resultado devolve {success, message} usado por exclusões e disparos.
type Resultado struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (c *Client) ListarEmpresas(ctx context.Context, p ListarEmpresasParams) (EmpresaPage, error) {
	var items []models.Empresa
	meta, err := c.getJSON(ctx, "/empresas", p.query(), &items)
	if err != nil {
		return EmpresaPage{}, err
	}
	page := EmpresaPage{Data: items, Total: len(items), Limit: meta.Limit, Offset: meta.Offset}
	if meta.Total != nil {
		page.Total = *meta.Total
	}
	return page, nil
}

func (c *Client) ObterEmpresa(ctx context.Context, id string) (*models.Empresa, error) {
	var e models.Empresa
	if _, err := c.getJSON(ctx, "/empresas/"+seg(id), nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *Client) CriarEmpresa(ctx context.Context, in models.EmpresaCreate) (*models.Empresa, error) {
	var e models.Empresa
	if err := c.sendJSON(ctx, http.MethodPost, "/empresas", in, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *Client) AtualizarEmpresa(ctx context.Context, id string, in models.EmpresaUpdate) (*models.Empresa, error) {
	var e models.Empresa
	if err := c.sendJSON(ctx, http.MethodPut, "/empresas/"+seg(id), in, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *Client) DeletarEmpresa(ctx context.Context, id string) (Resultado, error) {
	var res Resultado
	body, _, err := c.do(ctx, request{method: http.MethodDelete, path: "/empresas/" + seg(id)})
	if err != nil {
		return res, err
	}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &res); err != nil {
			return res, fmt.Errorf("decode delete empresa: %w", err)
		}
	}
	return res, nil
}

func (c *Client) ListarSetores(ctx context.Context) ([]models.Setor, error) {
	var out []models.Setor
	if _, err := c.getJSON(ctx, "/empresas/setores/lista", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// UploadDocumento envia o pitch deck como multipart (campo "arquivo") e
// pede processamento imediato.
func (c *Client) UploadDocumento(ctx context.Context, empresaID, filename string, r io.Reader) (*models.Documento, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="arquivo"; filename="%s"`, quoteEscaper.Replace(filename)))
	h.Set("Content-Type", "application/pdf")
	fw, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("multipart file: %w", err)
	}
	if _, err := io.Copy(fw, r); err != nil {
		return nil, fmt.Errorf("multipart copy: %w", err)
	}
	if err := mw.WriteField("processar", "true"); err != nil {
		return nil, fmt.Errorf("multipart field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("multipart close: %w", err)
	}

	body, _, err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/empresas/" + seg(empresaID) + "/documentos",
		body:        &buf,
		contentType: mw.FormDataContentType(),
	})
	if err != nil {
		return nil, err
	}
	var doc models.Documento
	if _, err := decodeBody(body, &doc); err != nil {
		return nil, fmt.Errorf("decode documento: %w", err)
	}
	return &doc, nil
}

func (c *Client) ListarDocumentos(ctx context.Context, empresaID string) ([]models.Documento, error) {
	var out []models.Documento
	if _, err := c.getJSON(ctx, "/empresas/"+seg(empresaID)+"/documentos", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeletarDocumento(ctx context.Context, empresaID, documentoID string) error {
	_, _, err := c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/empresas/" + seg(empresaID) + "/documentos/" + seg(documentoID),
	})
	return err
}
