package handlers

import (
	"net/http"

	"github.com/Werneck0live/vincipitch-dashboard/internal/models"
	"github.com/Werneck0live/vincipitch-dashboard/internal/utils"
)

type NotificacoesResponse struct {
	Items    []models.Notificacao `json:"items"`
	NaoLidas int                  `json:"nao_lidas"`
}

func (h *Handler) ListNotificacoes(w http.ResponseWriter, r *http.Request) {
	c := h.Session.Center()
	items := c.List()
	if items == nil {
		items = []models.Notificacao{}
	}
	utils.WriteJSON(w, http.StatusOK, NotificacoesResponse{Items: items, NaoLidas: c.Unread()})
}

func (h *Handler) MarkNotificacao(w http.ResponseWriter, r *http.Request) {
	if !h.Session.Center().MarkRead(r.PathValue("id")) {
		utils.WriteNotice(w, http.StatusNotFound, utils.Notice{Titulo: "Notificação não encontrada"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) MarkAllNotificacoes(w http.ResponseWriter, r *http.Request) {
	n := h.Session.Center().MarkAllRead()
	utils.WriteJSON(w, http.StatusOK, map[string]int{"marcadas": n})
}

func (h *Handler) ClearNotificacoes(w http.ResponseWriter, r *http.Request) {
	h.Session.Center().Clear()
	w.WriteHeader(http.StatusNoContent)
}
