package solicitacao

import "testing"

func TestFormatStatus(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"EM_ANALISE", "Em Análise"},
		{"RASCUNHO", "Rascunho"},
		{"EM_PREPARACAO", "Em Preparação"},
		{"ENTREGUE", "Entregue"},
		{"EM_ROTA", "EM_ROTA"}, // legacy vocabulary passes through unchanged
		{"", ""},
	}
	for _, tc := range cases {
		if got := FormatStatus(tc.in); got != tc.want {
			t.Fatalf("FormatStatus(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStatusColorNeutralWhenUnmapped(t *testing.T) {
	if StatusColor("APROVADA") == statusColorNeutral {
		t.Fatal("known status must not map to the neutral color")
	}
	if StatusColor("ALGO_NOVO") != statusColorNeutral {
		t.Fatal("unknown status must map to the neutral color")
	}
}

func TestValidarCodigoRastreio(t *testing.T) {
	cases := []struct {
		codigo string
		want   bool
	}{
		{"SAFRA-2025-AB12CD34", true},
		{"SAFRA-2025-F2QYAVLO", true},
		{"SAFRA-25-AB12CD34", false},
		{"SAFRA-2025-ab12cd34", false},
		{"SAFRA-2025-AB12CD3", false},
		{"foo", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidarCodigoRastreio(tc.codigo); got != tc.want {
			t.Fatalf("ValidarCodigoRastreio(%q) = %v, want %v", tc.codigo, got, tc.want)
		}
	}
}
