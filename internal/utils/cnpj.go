package utils

import "unicode"

// remove qualquer coisa que não seja dígito
func SanitizeCNPJ(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, r)
		}
	}
	return string(out)
}

var (
	cnpjPesos1 = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjPesos2 = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

func cnpjDigito(d string, pesos []int) byte {
	sum := 0
	for i, p := range pesos {
		sum += int(d[i]-'0') * p
	}
	r := sum % 11
	if r < 2 {
		return '0'
	}
	return byte('0' + 11 - r)
}

// ValidateCNPJ espera o CNPJ já sanitizado: 14 dígitos, não todos iguais
// e com os dois dígitos verificadores corretos.
func ValidateCNPJ(cnpj string) bool {
	if len(cnpj) != 14 {
		return false
	}
	allEq := true
	for i := 0; i < 14; i++ {
		if cnpj[i] < '0' || cnpj[i] > '9' {
			return false
		}
		if cnpj[i] != cnpj[0] {
			allEq = false
		}
	}
	if allEq {
		return false
	}
	return cnpj[12] == cnpjDigito(cnpj, cnpjPesos1) && cnpj[13] == cnpjDigito(cnpj, cnpjPesos2)
}

// FormatCNPJ aplica a máscara 00.000.000/0000-00; entradas que não têm
// 14 dígitos voltam como vieram.
func FormatCNPJ(s string) string {
	d := SanitizeCNPJ(s)
	if len(d) != 14 {
		return s
	}
	return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
}
