package solicitacao

import (
	"errors"
	"testing"
)

func TestValidateDadosAgricultor(t *testing.T) {
	s := Solicitacao{
		BeneficiarioNome: "João Silva",
		BeneficiarioCPF:  "555.666.777-88",
		TipoPropriedade:  "Sítio",
		BeneficiarioCEP:  "56500-000",
	}
	if err := s.ValidateDadosAgricultor(); err != nil {
		t.Fatalf("complete step 1 must validate: %v", err)
	}

	s.BeneficiarioCEP = "   "
	if !errors.Is(s.ValidateDadosAgricultor(), ErrCamposObrigatorios) {
		t.Fatal("blank CEP must fail step 1")
	}
}

func TestValidateDetalhesInsumo(t *testing.T) {
	s := Solicitacao{Cultura: "Milho", Quantidade: 200, AreaPlantada: 5}
	if err := s.ValidateDetalhesInsumo(); err != nil {
		t.Fatalf("complete step 2 must validate: %v", err)
	}
	s.Quantidade = 0
	if !errors.Is(s.ValidateDetalhesInsumo(), ErrCamposObrigatorios) {
		t.Fatal("zero quantity must fail step 2")
	}
}

func TestValidateLogistica(t *testing.T) {
	s := Solicitacao{
		MunicipioDestino:     "Arcoverde - PE",
		EnderecoEntrega:      "Rua Central, 10",
		CEPEntrega:           "56500-000",
		NomeDestinatario:     "José Almeida",
		TelefoneDestinatario: "(87) 98888-7777",
	}
	if err := s.ValidateLogistica(); err != nil {
		t.Fatalf("complete step 3 must validate: %v", err)
	}
	s.NomeDestinatario = ""
	if !errors.Is(s.ValidateLogistica(), ErrCamposObrigatorios) {
		t.Fatal("missing recipient must fail step 3")
	}
}

func TestParseQuantidade(t *testing.T) {
	if n, err := ParseQuantidade("200"); err != nil || n != 200 {
		t.Fatalf("ParseQuantidade(200) = %d, %v", n, err)
	}
	for _, raw := range []string{"", "abc", "12.5", "-3", "0"} {
		if _, err := ParseQuantidade(raw); err == nil {
			t.Fatalf("ParseQuantidade(%q) must fail", raw)
		}
	}
}

func TestParseArea(t *testing.T) {
	if a, err := ParseArea("5.25"); err != nil || a != 5.25 {
		t.Fatalf("ParseArea(5.25) = %v, %v", a, err)
	}
	// Brazilian decimal comma is accepted.
	if a, err := ParseArea("2,5"); err != nil || a != 2.5 {
		t.Fatalf("ParseArea(2,5) = %v, %v", a, err)
	}
	for _, raw := range []string{"", "muito", "-1"} {
		if _, err := ParseArea(raw); err == nil {
			t.Fatalf("ParseArea(%q) must fail", raw)
		}
	}
}

func TestFiltrar(t *testing.T) {
	items := []Solicitacao{
		{CodigoRastreio: "SAFRA-2025-AAAA1111", Cultura: "Milho", BeneficiarioNome: "José Almeida"},
		{CodigoRastreio: "SAFRA-2025-BBBB2222", Cultura: "Feijão", BeneficiarioNome: "Ana Lima"},
	}

	if got := Filtrar(items, "  "); len(got) != 2 {
		t.Fatalf("blank term must return everything, got %d", len(got))
	}
	if got := Filtrar(items, "bbbb"); len(got) != 1 || got[0].Cultura != "Feijão" {
		t.Fatalf("code match wrong: %+v", got)
	}
	if got := Filtrar(items, "FEIJÃO"); len(got) != 1 {
		t.Fatalf("crop match must be case-insensitive, got %d", len(got))
	}
	if got := Filtrar(items, "almeida"); len(got) != 1 || got[0].BeneficiarioNome != "José Almeida" {
		t.Fatalf("beneficiary match wrong: %+v", got)
	}
	if got := Filtrar(items, "mandioca"); len(got) != 0 {
		t.Fatalf("no match expected, got %+v", got)
	}
}

func TestContarPorStatus(t *testing.T) {
	items := []Solicitacao{
		{Status: StatusEmAnalise},
		{Status: StatusEmAnalise},
		{Status: StatusEntregue},
	}
	if got := ContarPorStatus(items, StatusEmAnalise); got != 2 {
		t.Fatalf("em análise = %d, want 2", got)
	}
	if got := ContarPorStatus(items, StatusAprovada); got != 0 {
		t.Fatalf("aprovadas = %d, want 0", got)
	}
}
