package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Tipos de aviso exibidos pelo painel.
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
	NoticeWarning = "warning"
	NoticeInfo    = "info"
)

// Notice é o aviso curto mostrado ao usuário (título + mensagem).
type Notice struct {
	Tipo     string `json:"tipo"`
	Titulo   string `json:"titulo"`
	Mensagem string `json:"mensagem,omitempty"`
}

// ErrorBody é o corpo de toda resposta de falha: um único aviso.
type ErrorBody struct {
	Error  string `json:"error"`
	Notice Notice `json:"notice"`
}

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteNotice responde a falha com o aviso correspondente.
func WriteNotice(w http.ResponseWriter, code int, n Notice) {
	if n.Tipo == "" {
		n.Tipo = NoticeError
	}
	msg := n.Mensagem
	if msg == "" {
		msg = n.Titulo
	}
	WriteJSON(w, code, ErrorBody{Error: msg, Notice: n})
}

/*
decodeStrict decodifica JSON rejeitando chaves desconhecidas
e garantindo que exista exatamente UM objeto JSON.
*/
func DecodeStrict(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return err
	}
	// Garante que não tenha lixo após o objeto JSON
	if dec.More() {
		return errors.New("unexpected additional JSON content")
	}

	return nil
}

func BadRequest(w http.ResponseWriter, msg string) {
	WriteNotice(w, http.StatusBadRequest, Notice{Tipo: NoticeError, Titulo: "Requisição inválida", Mensagem: msg})
}

// FormatUnknownFieldError deixa o erro do decoder legível para o aviso.
func FormatUnknownFieldError(err error) string {
	if errors.Is(err, io.EOF) {
		return "corpo da requisição vazio"
	}
	msg := err.Error()
	if field, ok := strings.CutPrefix(msg, "json: unknown field "); ok {
		return fmt.Sprintf("campo desconhecido: %s", field)
	}
	return msg
}
