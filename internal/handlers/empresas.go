package handlers

import (
	"errors"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Werneck0live/vincipitch-dashboard/internal/apiclient"
	"github.com/Werneck0live/vincipitch-dashboard/internal/models"
	"github.com/Werneck0live/vincipitch-dashboard/internal/utils"
)

const maxUploadBytes = 50 << 20

var errNotPDF = errors.New("arquivo não é PDF")

func (h *Handler) ListEmpresas(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := apiclient.ListarEmpresasParams{Busca: q.Get("busca"), Limite: 100}
	setor, err := parseSetor(q.Get("setor"))
	if err != nil {
		utils.BadRequest(w, err.Error())
		return
	}
	p.Setor = setor
	if l := q.Get("limite"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 200 {
			p.Limite = v
		}
	}
	if o := q.Get("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			p.Offset = v
		}
	}

	ctx, cancel := h.ctx(r)
	defer cancel()
	page, err := h.API.ListarEmpresas(ctx, p)
	if err != nil {
		h.backendError(w, r, err, "Erro ao carregar empresas", "Tente novamente mais tarde.")
		return
	}
	utils.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) CreateEmpresa(w http.ResponseWriter, r *http.Request) {
	var dto EmpresaCreateDTO
	if err := utils.DecodeStrict(r.Body, &dto); err != nil {
		utils.BadRequest(w, utils.FormatUnknownFieldError(err))
		return
	}
	if err := validateCreateDTO(&dto); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()
	e, err := h.API.CriarEmpresa(ctx, dto.model())
	if err != nil {
		h.backendError(w, r, err, "Erro ao cadastrar empresa", "Não foi possível cadastrar a empresa.")
		return
	}

	h.publish(models.AnalysisEvent{
		Tipo:        models.EventoNovaEmpresa,
		EmpresaID:   e.ID,
		EmpresaNome: e.DisplayName(),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	})
	utils.WriteJSON(w, http.StatusCreated, e)
}

func (h *Handler) GetEmpresa(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ctx(r)
	defer cancel()
	e, err := h.API.ObterEmpresa(ctx, r.PathValue("id"))
	if err != nil {
		h.backendError(w, r, err, "Erro ao carregar empresa", "Empresa não encontrada.")
		return
	}
	utils.WriteJSON(w, http.StatusOK, empresaView(e))
}

func (h *Handler) UpdateEmpresa(w http.ResponseWriter, r *http.Request) {
	var dto EmpresaUpdateDTO
	if err := utils.DecodeStrict(r.Body, &dto); err != nil {
		utils.BadRequest(w, utils.FormatUnknownFieldError(err))
		return
	}
	if err := validateUpdateDTO(&dto); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()
	e, err := h.API.AtualizarEmpresa(ctx, r.PathValue("id"), dto)
	if err != nil {
		h.backendError(w, r, err, "Erro ao atualizar empresa", "Não foi possível salvar as alterações.")
		return
	}
	utils.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) DeleteEmpresa(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	ctx, cancel := h.ctx(r)
	defer cancel()
	if _, err := h.API.DeletarEmpresa(ctx, id); err != nil {
		h.backendError(w, r, err, "Erro ao excluir empresa", "Não foi possível excluir a empresa.")
		return
	}
	// nada mais a acompanhar para essa empresa
	if h.Session != nil {
		h.Session.CancelAnalysis(id)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Setores(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ctx(r)
	defer cancel()
	setores, err := h.API.ListarSetores(ctx)
	if err != nil {
		// lista estática quando o backend não responder
		h.Log.Warn("setores_fallback", "err", err)
		setores = models.Setores
	}
	type item struct {
		Setor models.Setor `json:"setor"`
		Label string       `json:"label"`
	}
	out := make([]item, len(setores))
	for i, s := range setores {
		out[i] = item{Setor: s, Label: models.SetorLabel(s)}
	}
	utils.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) ListDocumentos(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ctx(r)
	defer cancel()
	docs, err := h.API.ListarDocumentos(ctx, r.PathValue("id"))
	if err != nil {
		h.backendError(w, r, err, "Erro ao carregar documentos", "Tente novamente mais tarde.")
		return
	}
	if docs == nil {
		docs = []models.Documento{}
	}
	utils.WriteJSON(w, http.StatusOK, docs)
}

// isPDF aceita o arquivo pelo content-type da parte ou, quando o
// navegador não informar, pela extensão.
func isPDF(filename, contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err == nil && mt == "application/pdf" {
		return true
	}
	if contentType != "" && err == nil && mt != "application/octet-stream" {
		return false
	}
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}

func (h *Handler) UploadDocumento(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, hdr, err := r.FormFile("arquivo")
	if err != nil {
		utils.BadRequest(w, "campo \"arquivo\" ausente ou inválido")
		return
	}
	defer file.Close()

	if !isPDF(hdr.Filename, hdr.Header.Get("Content-Type")) {
		h.Log.Info("upload_rejected", "filename", hdr.Filename, "err", errNotPDF)
		utils.WriteNotice(w, http.StatusUnsupportedMediaType, utils.Notice{
			Tipo:     utils.NoticeError,
			Titulo:   "Formato inválido",
			Mensagem: "Por favor, selecione um arquivo PDF.",
		})
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()
	doc, err := h.API.UploadDocumento(ctx, r.PathValue("id"), filepath.Base(hdr.Filename), file)
	if err != nil {
		h.backendError(w, r, err, "Erro no upload", "Não foi possível enviar o arquivo.")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, doc)
}

func (h *Handler) DeleteDocumento(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ctx(r)
	defer cancel()
	if err := h.API.DeletarDocumento(ctx, r.PathValue("id"), r.PathValue("docID")); err != nil {
		h.backendError(w, r, err, "Erro ao excluir documento", "Não foi possível excluir o documento.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
