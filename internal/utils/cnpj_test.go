package utils

import "testing"

func TestValidateCNPJ(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"11.222.333/0001-81", true},
		{"11222333000181", true},
		{"11222333000182", false},
		{"11111111111111", false},
		{"1122233300018", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidateCNPJ(SanitizeCNPJ(tc.in)); got != tc.want {
			t.Fatalf("ValidateCNPJ(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFormatCNPJ(t *testing.T) {
	if got := FormatCNPJ("11222333000181"); got != "11.222.333/0001-81" {
		t.Fatalf("got %q", got)
	}
	if got := FormatCNPJ("123"); got != "123" {
		t.Fatalf("got %q", got)
	}
}
