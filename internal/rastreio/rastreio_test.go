package rastreio

import "testing"

func TestCodigoPrefersNumeroRastreio(t *testing.T) {
	p := &Pedido{NumeroRastreio: "SAFRA-2024-AAAA1111", CodigoRastreio: "SAFRA-2025-BBBB2222"}
	if got := p.Codigo(); got != "SAFRA-2024-AAAA1111" {
		t.Fatalf("Codigo() = %q", got)
	}
	p.NumeroRastreio = "  "
	if got := p.Codigo(); got != "SAFRA-2025-BBBB2222" {
		t.Fatalf("Codigo() fallback = %q", got)
	}
}

func TestDestinatarioFallbackChain(t *testing.T) {
	p := &Pedido{Produtor: "", BeneficiarioNome: "", SolicitanteNome: "Maria"}
	if got := p.Destinatario(); got != "Maria" {
		t.Fatalf("Destinatario() = %q", got)
	}
	p.BeneficiarioNome = "José"
	if got := p.Destinatario(); got != "José" {
		t.Fatalf("Destinatario() = %q", got)
	}
	p.Produtor = "Antônio"
	if got := p.Destinatario(); got != "Antônio" {
		t.Fatalf("Destinatario() = %q", got)
	}
}

func TestEnderecoAndMunicipioResolvers(t *testing.T) {
	p := &Pedido{LocalAtuacao: "Escritório Regional", MunicipioDestino: "Gravatá"}
	if got := p.Endereco(); got != "Escritório Regional" {
		t.Fatalf("Endereco() = %q", got)
	}
	if got := p.MunicipioResolvido(); got != "Gravatá" {
		t.Fatalf("MunicipioResolvido() = %q", got)
	}
	p.EnderecoEntrega = "Sítio Boa Vista"
	p.Municipio = "Caruaru"
	if p.Endereco() != "Sítio Boa Vista" || p.MunicipioResolvido() != "Caruaru" {
		t.Fatalf("explicit fields must win: %q / %q", p.Endereco(), p.MunicipioResolvido())
	}
}

func TestDataReferencia(t *testing.T) {
	p := &Pedido{DataAtualizacao: "2025-02-01"}
	if got := p.DataReferencia(); got != "2025-02-01" {
		t.Fatalf("DataReferencia() = %q", got)
	}
	p.DataSolicitacao = "2025-01-15"
	if got := p.DataReferencia(); got != "2025-01-15" {
		t.Fatalf("DataReferencia() = %q", got)
	}
}
