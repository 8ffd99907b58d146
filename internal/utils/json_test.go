package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDecodeStrict(t *testing.T) {
	var dst struct {
		Nome string `json:"nome"`
	}
	if err := DecodeStrict(strings.NewReader(`{"nome":"a"}`), &dst); err != nil || dst.Nome != "a" {
		t.Fatalf("decode ok: %v %+v", err, dst)
	}
	err := DecodeStrict(strings.NewReader(`{"foo":1}`), &dst)
	if err == nil {
		t.Fatal("expected unknown field error")
	}
	if got := FormatUnknownFieldError(err); got != `campo desconhecido: "foo"` {
		t.Fatalf("got %q", got)
	}
	if err := DecodeStrict(strings.NewReader(`{"nome":"a"}{"nome":"b"}`), &dst); err == nil {
		t.Fatal("expected trailing content error")
	}
	if got := FormatUnknownFieldError(io.EOF); got != "corpo da requisição vazio" {
		t.Fatalf("got %q", got)
	}
	if got := FormatUnknownFieldError(errors.New("x")); got != "x" {
		t.Fatalf("got %q", got)
	}
}

func TestWriteNotice(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteNotice(rec, http.StatusBadGateway, Notice{Titulo: "Erro na exportação", Mensagem: "Não foi possível gerar o arquivo PDF."})

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("code=%d", rec.Code)
	}
	var body ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Notice.Tipo != NoticeError || body.Error != "Não foi possível gerar o arquivo PDF." {
		t.Fatalf("got %+v", body)
	}
}
