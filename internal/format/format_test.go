package format

import "testing"

func TestDataFallbacksNeverPanic(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", NaoInformado},
		{"   ", NaoInformado},
		{"not-a-date", DataInvalida},
		{"2025-13-45", DataInvalida},
		{"2025-03-10", "10/03/2025"},
		{"2025-03-10T14:30:00", "10/03/2025"},
		{"2025-03-10T14:30:00Z", "10/03/2025"},
	}
	for _, tc := range cases {
		if got := Data(tc.in); got != tc.want {
			t.Fatalf("Data(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDataCompleta(t *testing.T) {
	if got := DataCompleta("2025-03-10"); got != "10 de março de 2025" {
		t.Fatalf("DataCompleta = %q", got)
	}
	if got := DataCompleta("garbage"); got != DataInvalida {
		t.Fatalf("DataCompleta(garbage) = %q", got)
	}
	if got := DataCompleta(""); got != NaoInformado {
		t.Fatalf("DataCompleta(empty) = %q", got)
	}
}

func TestValor(t *testing.T) {
	if got := Valor(""); got != NaoInformado {
		t.Fatalf("Valor(empty) = %q", got)
	}
	if got := Valor("Milho"); got != "Milho" {
		t.Fatalf("Valor(Milho) = %q", got)
	}
	if got := ValorOu("", "un"); got != "un" {
		t.Fatalf("ValorOu = %q", got)
	}
}

func TestMasks(t *testing.T) {
	if got := CPF("11122233344"); got != "111.222.333-44" {
		t.Fatalf("CPF = %q", got)
	}
	if got := CPF("123"); got != "123" {
		t.Fatalf("short CPF must pass through, got %q", got)
	}
	if got := CEP("56500000"); got != "56500-000" {
		t.Fatalf("CEP = %q", got)
	}
	if got := Telefone("8198765432"); got != "(81) 9876-5432" {
		t.Fatalf("Telefone 10 = %q", got)
	}
	if got := Telefone("81998765432"); got != "(81) 99876-5432" {
		t.Fatalf("Telefone 11 = %q", got)
	}
	if got := Telefone("12345"); got != "12345" {
		t.Fatalf("odd phone must pass through, got %q", got)
	}
}
