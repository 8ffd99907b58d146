package handlers

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/Werneck0live/vincipitch-dashboard/internal/apiclient"
	"github.com/Werneck0live/vincipitch-dashboard/internal/format"
	"github.com/Werneck0live/vincipitch-dashboard/internal/utils"
)

// writeBlob devolve o conteúdo do backend sem interpretá-lo. filename
// vazio mantém a resposta inline (gráficos).
func writeBlob(w http.ResponseWriter, b *apiclient.Blob, filename string) {
	w.Header().Set("Content-Type", b.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(b.Data)))
	if filename != "" {
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b.Data)
}

func exportNotice(f apiclient.Formato) utils.Notice {
	return utils.Notice{
		Tipo:     utils.NoticeError,
		Titulo:   "Erro na exportação",
		Mensagem: fmt.Sprintf("Não foi possível gerar o arquivo %s.", strings.ToUpper(string(f))),
	}
}

// exportError responde com um único aviso, qualquer que seja a falha.
func (h *Handler) exportError(w http.ResponseWriter, r *http.Request, f apiclient.Formato, err error) {
	code := http.StatusBadGateway
	if errors.Is(err, apiclient.ErrNotFound) {
		code = http.StatusNotFound
	}
	h.Log.Error("export_error", "path", r.URL.Path, "formato", f, "err", err)
	utils.WriteNotice(w, code, exportNotice(f))
}

func (h *Handler) formato(w http.ResponseWriter, r *http.Request, allowed ...apiclient.Formato) (apiclient.Formato, bool) {
	f, err := apiclient.ParseFormato(strings.ToLower(r.PathValue("formato")))
	if err == nil {
		for _, a := range allowed {
			if f == a {
				return f, true
			}
		}
	}
	utils.BadRequest(w, fmt.Sprintf("formato inválido: %q", r.PathValue("formato")))
	return "", false
}

func (h *Handler) ExportEmpresa(w http.ResponseWriter, r *http.Request) {
	f, ok := h.formato(w, r, apiclient.FormatoPDF, apiclient.FormatoDOCX)
	if !ok {
		return
	}
	ctx, cancel := withTimeout(r, h.ExportTimeout)
	defer cancel()
	b, err := h.API.ExportarEmpresa(ctx, r.PathValue("id"), f)
	if err != nil {
		h.exportError(w, r, f, err)
		return
	}
	name := b.Filename
	if name == "" {
		name = format.ExportFilename("analise", r.URL.Query().Get("nome"), string(f))
	}
	writeBlob(w, b, name)
}

func (h *Handler) ExportComparacao(w http.ResponseWriter, r *http.Request) {
	f, ok := h.formato(w, r, apiclient.FormatoPDF, apiclient.FormatoDOCX)
	if !ok {
		return
	}
	a, bID := r.PathValue("a"), r.PathValue("b")
	if a == bID {
		utils.WriteNotice(w, http.StatusBadRequest, utils.Notice{Tipo: utils.NoticeError, Titulo: "Empresas iguais", Mensagem: "Selecione duas empresas diferentes para comparar."})
		return
	}
	ctx, cancel := withTimeout(r, h.ExportTimeout)
	defer cancel()
	b, err := h.API.ExportarComparacao(ctx, a, bID, f)
	if err != nil {
		h.exportError(w, r, f, err)
		return
	}
	name := b.Filename
	if name == "" {
		q := r.URL.Query()
		name = format.ComparisonFilename(q.Get("nome_a"), q.Get("nome_b"), string(f))
	}
	writeBlob(w, b, name)
}

func (h *Handler) ExportRanking(w http.ResponseWriter, r *http.Request) {
	f, ok := h.formato(w, r, apiclient.FormatoXLSX, apiclient.FormatoPDF)
	if !ok {
		return
	}
	setor, err := parseSetor(r.URL.Query().Get("setor"))
	if err != nil {
		utils.BadRequest(w, err.Error())
		return
	}
	ctx, cancel := withTimeout(r, h.ExportTimeout)
	defer cancel()
	b, err := h.API.ExportarRanking(ctx, setor, queryInt(r, "limite", 0, 1000), f)
	if err != nil {
		h.exportError(w, r, f, err)
		return
	}
	name := b.Filename
	if name == "" {
		name = format.RankingFilename(string(setor), string(f))
	}
	writeBlob(w, b, name)
}

func (h *Handler) GraficoRadar(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ctx(r)
	defer cancel()
	b, err := h.API.ObterGraficoRadar(ctx, r.PathValue("analiseID"))
	if err != nil {
		h.backendError(w, r, err, "Erro ao carregar gráfico", "Tente novamente mais tarde.")
		return
	}
	writeBlob(w, b, "")
}

func (h *Handler) GraficoComparativo(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ctx(r)
	defer cancel()
	b, err := h.API.ObterGraficoComparativo(ctx, r.PathValue("a"), r.PathValue("b"))
	if err != nil {
		h.backendError(w, r, err, "Erro ao carregar gráfico", "Tente novamente mais tarde.")
		return
	}
	writeBlob(w, b, "")
}

func (h *Handler) GraficoBarras(w http.ResponseWriter, r *http.Request) {
	setor, err := parseSetor(r.URL.Query().Get("setor"))
	if err != nil {
		utils.BadRequest(w, err.Error())
		return
	}
	ctx, cancel := h.ctx(r)
	defer cancel()
	b, err := h.API.ObterGraficoBarras(ctx, setor, queryInt(r, "limite", 15, 100))
	if err != nil {
		h.backendError(w, r, err, "Erro ao carregar gráfico", "Tente novamente mais tarde.")
		return
	}
	writeBlob(w, b, "")
}
