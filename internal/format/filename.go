package format

import (
	"strings"
	"unicode"
)

// ExportFilename monta nomes como "analise_Acme.pdf" ou
// "comparacao_A_vs_B.docx", removendo caracteres que quebram headers.
func ExportFilename(prefix, name, ext string) string {
	name = safeName(name)
	if name == "" {
		name = "empresa"
	}
	return prefix + "_" + name + "." + ext
}

func ComparisonFilename(nomeA, nomeB, ext string) string {
	a, b := safeName(nomeA), safeName(nomeB)
	if a == "" {
		a = "empresa_a"
	}
	if b == "" {
		b = "empresa_b"
	}
	return "comparacao_" + a + "_vs_" + b + "." + ext
}

func RankingFilename(setor, ext string) string {
	if setor == "" {
		setor = "geral"
	}
	return "ranking_" + safeName(setor) + "." + ext
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '"' || r == '\\' || r == '/' || r == ';':
			return -1
		case unicode.IsSpace(r):
			return '_'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
}
