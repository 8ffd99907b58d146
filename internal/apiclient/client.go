package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

const DefaultBaseURL = "http://localhost:8000/api/v1"

// Client fala com a API REST do backend de análise. Cada método faz
// exatamente uma requisição: sem retry, sem cache, sem deduplicação.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

func New(baseURL string, hc *http.Client, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		log:     log.With("cmp", "apiclient"),
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	accept      string
}

// do executa a requisição e devolve o corpo já lido. Respostas não-2xx
// viram *APIError com o detail do backend.
func (c *Client) do(ctx context.Context, r request) ([]byte, http.Header, error) {
	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, r.method, u, r.body)
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	accept := r.accept
	if accept == "" {
		accept = "application/json"
	}
	req.Header.Set("Accept", accept)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Warn("response_body_close_error", "path", r.path, "err", cerr)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read body %s: %w", r.path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Detail: parseDetail(body)}
		c.log.Debug("backend_error", "method", r.method, "path", r.path, "status", resp.StatusCode, "detail", apiErr.Detail)
		return nil, resp.Header, apiErr
	}
	return body, resp.Header, nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, dst any) (PageMeta, error) {
	body, _, err := c.do(ctx, request{method: http.MethodGet, path: path, query: q})
	if err != nil {
		return PageMeta{}, err
	}
	meta, err := decodeBody(body, dst)
	if err != nil {
		return PageMeta{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return meta, nil
}

func (c *Client) sendJSON(ctx context.Context, method, path string, payload, dst any) error {
	var rdr io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		rdr = bytes.NewReader(b)
	}
	body, _, err := c.do(ctx, request{method: method, path: path, body: rdr, contentType: "application/json"})
	if err != nil {
		return err
	}
	if _, err := decodeBody(body, dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func seg(s string) string { return url.PathEscape(s) }
