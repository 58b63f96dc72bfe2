// internal/rastreio/rastreio.go
//
// Tracking records are owned by the backend; the client only fetches and
// renders them. A record carries the request snapshot plus an ordered list
// of fulfillment stages (etapas) that the UI lays over a fixed five-position
// timeline.

package rastreio

import "strings"

// Etapa is one checkpoint in a request's fulfillment timeline.
type Etapa struct {
	Nome      string `json:"etapa"`
	Descricao string `json:"descricao"`
	Concluida bool   `json:"concluida"`
}

// Pedido is a fetched tracking record. Field pairs like NumeroRastreio /
// CodigoRastreio exist because two backend generations expose the same value
// under different keys; Codigo() resolves them.
type Pedido struct {
	ID             int64  `json:"id,omitempty"`
	NumeroRastreio string `json:"numeroRastreio,omitempty"`
	CodigoRastreio string `json:"codigoRastreio,omitempty"`

	DataSolicitacao  string `json:"dataSolicitacao,omitempty"`
	DataAtualizacao  string `json:"dataAtualizacao,omitempty"`
	PrevisaoDespacho string `json:"previsaoDespacho,omitempty"`
	PrazoFinal       string `json:"prazoFinal,omitempty"`

	Status        string `json:"status"`
	StatusEstoque string `json:"statusEstoque,omitempty"`

	TipoInsumo string `json:"tipoInsumo,omitempty"`
	Cultura    string `json:"cultura,omitempty"`
	Variedade  string `json:"variedade,omitempty"`
	Quantidade int    `json:"quantidade,omitempty"`
	Unidade    string `json:"unidade,omitempty"`

	Produtor         string `json:"produtor,omitempty"`
	BeneficiarioNome string `json:"beneficiarioNome,omitempty"`
	SolicitanteNome  string `json:"solicitanteNome,omitempty"`

	EnderecoEntrega  string `json:"enderecoEntrega,omitempty"`
	Municipio        string `json:"municipio,omitempty"`
	MunicipioDestino string `json:"municipioDestino,omitempty"`
	LocalAtuacao     string `json:"localAtuacao,omitempty"`

	Etapas []Etapa `json:"etapas,omitempty"`
}

// TimelineSize is the number of icon positions on the rendered timeline.
const TimelineSize = 5

// Codigo returns the tracking code regardless of which backend generation
// produced the record.
func (p *Pedido) Codigo() string {
	if strings.TrimSpace(p.NumeroRastreio) != "" {
		return p.NumeroRastreio
	}
	return p.CodigoRastreio
}

// Destinatario resolves the person to display for delivery, preferring the
// explicit producer name, then beneficiary, then the requesting agent.
func (p *Pedido) Destinatario() string {
	for _, name := range []string{p.Produtor, p.BeneficiarioNome, p.SolicitanteNome} {
		if strings.TrimSpace(name) != "" {
			return name
		}
	}
	return ""
}

// Endereco resolves the delivery address, falling back to the agent's work
// location on records predating the logistics fields.
func (p *Pedido) Endereco() string {
	if strings.TrimSpace(p.EnderecoEntrega) != "" {
		return p.EnderecoEntrega
	}
	return p.LocalAtuacao
}

// MunicipioResolvido resolves the municipality across backend generations.
func (p *Pedido) MunicipioResolvido() string {
	if strings.TrimSpace(p.Municipio) != "" {
		return p.Municipio
	}
	return p.MunicipioDestino
}

// DataReferencia is the date shown as "Data da Solicitação", falling back to
// the last update when the creation date is absent.
func (p *Pedido) DataReferencia() string {
	if strings.TrimSpace(p.DataSolicitacao) != "" {
		return p.DataSolicitacao
	}
	return p.DataAtualizacao
}
