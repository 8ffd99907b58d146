// Package format concentra a formatação de números, notas e nomes de
// arquivo exibidos no dashboard e na CLI.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

const Empty = "-"

// Nota formata uma nota de 0 a 4 com duas casas.
func Nota(v *float64) string {
	if v == nil {
		return Empty
	}
	return NotaValue(*v)
}

func NotaValue(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func Percent(v *float64) string {
	if v == nil {
		return Empty
	}
	return strconv.FormatFloat(*v, 'f', 1, 64) + "%"
}

// Currency formata em reais sem centavos: R$ 1.234.567.
func Currency(v *float64) string {
	if v == nil {
		return Empty
	}
	return "R$ " + humanize.FormatFloat("#.###,", *v)
}

// Number abrevia valores grandes (K, M, B) com uma casa.
func Number(v *float64) string {
	if v == nil {
		return Empty
	}
	n := *v
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", n/1_000_000_000)
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", n/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", n/1_000)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Bytes formata tamanho de arquivo (base 1024).
func Bytes(n int64) string {
	if n <= 0 {
		return "0 B"
	}
	return humanize.IBytes(uint64(n))
}

func Truncate(text string, length int) string {
	if utf8.RuneCountInString(text) <= length {
		return text
	}
	r := []rune(text)
	return string(r[:length]) + "..."
}

// Initials devolve até duas iniciais em maiúsculas.
func Initials(name string) string {
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(r))
		if utf8.RuneCountInString(b.String()) == 2 {
			break
		}
	}
	return b.String()
}
