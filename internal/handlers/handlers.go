package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Werneck0live/vincipitch-dashboard/internal/apiclient"
	"github.com/Werneck0live/vincipitch-dashboard/internal/models"
	"github.com/Werneck0live/vincipitch-dashboard/internal/session"
	"github.com/Werneck0live/vincipitch-dashboard/internal/utils"
)

// Backend é o subconjunto do cliente da API usado pelo painel.
type Backend interface {
	ListarEmpresas(ctx context.Context, p apiclient.ListarEmpresasParams) (apiclient.EmpresaPage, error)
	ObterEmpresa(ctx context.Context, id string) (*models.Empresa, error)
	CriarEmpresa(ctx context.Context, in models.EmpresaCreate) (*models.Empresa, error)
	AtualizarEmpresa(ctx context.Context, id string, in models.EmpresaUpdate) (*models.Empresa, error)
	DeletarEmpresa(ctx context.Context, id string) (apiclient.Resultado, error)
	ListarSetores(ctx context.Context) ([]models.Setor, error)

	UploadDocumento(ctx context.Context, empresaID, filename string, r io.Reader) (*models.Documento, error)
	ListarDocumentos(ctx context.Context, empresaID string) ([]models.Documento, error)
	DeletarDocumento(ctx context.Context, empresaID, documentoID string) error

	ProcessarAnalise(ctx context.Context, empresaID string) (apiclient.Resultado, error)
	ProcessarLote(ctx context.Context, empresaIDs []string) (apiclient.Resultado, error)
	ObterAnalise(ctx context.Context, id string) (*models.Analise, error)
	ObterAnaliseEmpresa(ctx context.Context, empresaID string) (*models.Analise, error)

	ObterRankingGeral(ctx context.Context, limite, offset int) (*models.RankingResponse, error)
	ObterRankingSetor(ctx context.Context, setor models.Setor, limite int) (*models.RankingResponse, error)
	ObterEstatisticas(ctx context.Context) ([]models.EstatisticasSetor, error)
	FiltrarRanking(ctx context.Context, f models.FiltrosRanking) (*models.RankingResponse, error)
	CompararEmpresas(ctx context.Context, empresaAID, empresaBID string) (*models.Comparacao, error)

	ObterGraficoRadar(ctx context.Context, analiseID string) (*apiclient.Blob, error)
	ObterGraficoComparativo(ctx context.Context, empresaAID, empresaBID string) (*apiclient.Blob, error)
	ObterGraficoBarras(ctx context.Context, setor models.Setor, limite int) (*apiclient.Blob, error)
	ExportarEmpresa(ctx context.Context, empresaID string, f apiclient.Formato) (*apiclient.Blob, error)
	ExportarComparacao(ctx context.Context, empresaAID, empresaBID string, f apiclient.Formato) (*apiclient.Blob, error)
	ExportarRanking(ctx context.Context, setor models.Setor, limite int, f apiclient.Formato) (*apiclient.Blob, error)
}

var _ Backend = (*apiclient.Client)(nil)

type Publisher interface {
	PublishEvent(ctx context.Context, ev models.AnalysisEvent) error
}

type Handler struct {
	API     Backend
	Session *session.Session
	Pub     Publisher
	Log     *slog.Logger

	// Timeout de cada chamada ao backend; exportações usam ExportTimeout.
	Timeout       time.Duration
	ExportTimeout time.Duration
}

func New(api Backend, sess *session.Session, pub Publisher, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		API:           api,
		Session:       sess,
		Pub:           pub,
		Log:           log.With("cmp", "handlers"),
		Timeout:       15 * time.Second,
		ExportTimeout: 60 * time.Second,
	}
}

// Routes registra todas as rotas do painel.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.Health)
	mux.HandleFunc("GET /api/dashboard", h.Dashboard)
	mux.HandleFunc("GET /api/setores", h.Setores)

	mux.HandleFunc("GET /api/empresas", h.ListEmpresas)
	mux.HandleFunc("POST /api/empresas", h.CreateEmpresa)
	mux.HandleFunc("GET /api/empresas/{id}", h.GetEmpresa)
	mux.HandleFunc("PUT /api/empresas/{id}", h.UpdateEmpresa)
	mux.HandleFunc("DELETE /api/empresas/{id}", h.DeleteEmpresa)

	mux.HandleFunc("GET /api/empresas/{id}/documentos", h.ListDocumentos)
	mux.HandleFunc("POST /api/empresas/{id}/documentos", h.UploadDocumento)
	mux.HandleFunc("DELETE /api/empresas/{id}/documentos/{docID}", h.DeleteDocumento)

	mux.HandleFunc("POST /api/empresas/{id}/analise", h.StartAnalise)
	mux.HandleFunc("GET /api/empresas/{id}/analise", h.AnaliseStatus)
	mux.HandleFunc("DELETE /api/empresas/{id}/analise", h.CancelAnalise)
	mux.HandleFunc("GET /api/analises/{id}", h.GetAnalise)

	mux.HandleFunc("POST /api/analises/lote", h.StartLote)
	mux.HandleFunc("GET /api/analises/lote", h.LoteStatus)
	mux.HandleFunc("DELETE /api/analises/lote", h.CancelLote)

	mux.HandleFunc("GET /api/ranking", h.Ranking)
	mux.HandleFunc("POST /api/ranking/filtrar", h.FiltrarRanking)
	mux.HandleFunc("POST /api/comparar", h.Comparar)

	mux.HandleFunc("GET /api/graficos/radar/{analiseID}", h.GraficoRadar)
	mux.HandleFunc("GET /api/graficos/comparativo/{a}/{b}", h.GraficoComparativo)
	mux.HandleFunc("GET /api/graficos/barras", h.GraficoBarras)

	mux.HandleFunc("GET /api/exportar/empresa/{id}/{formato}", h.ExportEmpresa)
	mux.HandleFunc("GET /api/exportar/comparacao/{a}/{b}/{formato}", h.ExportComparacao)
	mux.HandleFunc("GET /api/exportar/ranking/{formato}", h.ExportRanking)

	mux.HandleFunc("GET /api/notificacoes", h.ListNotificacoes)
	mux.HandleFunc("POST /api/notificacoes/{id}/lida", h.MarkNotificacao)
	mux.HandleFunc("POST /api/notificacoes/lidas", h.MarkAllNotificacoes)
	mux.HandleFunc("DELETE /api/notificacoes", h.ClearNotificacoes)
	return mux
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func withTimeout(r *http.Request, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), d)
}

func (h *Handler) ctx(r *http.Request) (context.Context, context.CancelFunc) {
	return withTimeout(r, h.Timeout)
}

// backendError converte a falha do backend em um único aviso.
func (h *Handler) backendError(w http.ResponseWriter, r *http.Request, err error, titulo, fallback string) {
	code := http.StatusBadGateway
	var apiErr *apiclient.APIError
	switch {
	case errors.Is(err, apiclient.ErrNotFound):
		code = http.StatusNotFound
	case errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
		code = apiErr.StatusCode
	case errors.Is(err, context.DeadlineExceeded):
		code = http.StatusGatewayTimeout
	}
	h.Log.Error("backend_error", "path", r.URL.Path, "status", code, "err", err)
	utils.WriteNotice(w, code, utils.Notice{
		Tipo:     utils.NoticeError,
		Titulo:   titulo,
		Mensagem: apiclient.DetailOr(err, fallback),
	})
}

func (h *Handler) publish(ev models.AnalysisEvent) {
	if h.Pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := h.Pub.PublishEvent(ctx, ev); err != nil {
		h.Log.Warn("event_publish_error", "tipo", ev.Tipo, "err", err)
	}
}
