// internal/solicitacao/solicitacao.go
//
// Domain model for a supply request (solicitação). A request aggregates four
// groups of fields, filled in by the wizard one step at a time: requester
// identity (seeded from the session), beneficiary, supply item and logistics.

package solicitacao

import (
	"errors"
	"strconv"
	"strings"
)

// Request statuses (current vocabulary).
const (
	StatusRascunho     = "RASCUNHO"
	StatusEnviada      = "ENVIADA"
	StatusEmAnalise    = "EM_ANALISE"
	StatusAprovada     = "APROVADA"
	StatusEmPreparacao = "EM_PREPARACAO"
	StatusDespachada   = "DESPACHADA"
	StatusEntregue     = "ENTREGUE"
	StatusCancelada    = "CANCELADA"
)

// Supply item types.
const (
	TipoSementes = "SEMENTES"
	TipoMudas    = "MUDAS"
)

// Delivery methods.
const (
	EntregaRetirada  = "RETIRADA"
	EntregaDomicilio = "ENTREGA_DOMICILIO"
)

// ErrCamposObrigatorios is surfaced when a step is submitted with its
// required subset empty.
var ErrCamposObrigatorios = errors.New("preencha todos os campos obrigatórios")

// Solicitacao is the full request record exchanged with the backend.
type Solicitacao struct {
	ID int64 `json:"id,omitempty" yaml:"id,omitempty"`

	// Solicitante (authenticated field agent).
	SolicitanteNome      string `json:"solicitanteNome,omitempty" yaml:"solicitanteNome,omitempty"`
	SolicitanteCPF       string `json:"solicitanteCpf,omitempty" yaml:"solicitanteCpf,omitempty"`
	SolicitanteMatricula string `json:"solicitanteMatricula,omitempty" yaml:"solicitanteMatricula,omitempty"`
	SolicitanteTelefone  string `json:"solicitanteTelefone,omitempty" yaml:"solicitanteTelefone,omitempty"`
	LocalAtuacao         string `json:"localAtuacao,omitempty" yaml:"localAtuacao,omitempty"`

	// Beneficiário (farmer receiving the supplies).
	BeneficiarioNome        string `json:"beneficiarioNome,omitempty" yaml:"beneficiarioNome,omitempty"`
	BeneficiarioCPF         string `json:"beneficiarioCpf,omitempty" yaml:"beneficiarioCpf,omitempty"`
	BeneficiarioCAF         string `json:"beneficiarioCaf,omitempty" yaml:"beneficiarioCaf,omitempty"`
	TipoPropriedade         string `json:"tipoPropriedade,omitempty" yaml:"tipoPropriedade,omitempty"`
	BeneficiarioCEP         string `json:"beneficiarioCep,omitempty" yaml:"beneficiarioCep,omitempty"`
	BeneficiarioComplemento string `json:"beneficiarioComplemento,omitempty" yaml:"beneficiarioComplemento,omitempty"`
	PontoReferencia         string `json:"pontoReferencia,omitempty" yaml:"pontoReferencia,omitempty"`

	// Insumo.
	TipoInsumo       string  `json:"tipoInsumo,omitempty" yaml:"tipoInsumo,omitempty"`
	Cultura          string  `json:"cultura,omitempty" yaml:"cultura,omitempty"`
	Variedade        string  `json:"variedade,omitempty" yaml:"variedade,omitempty"`
	Quantidade       int     `json:"quantidade,omitempty" yaml:"quantidade,omitempty"`
	UnidadeMedida    string  `json:"unidadeMedida,omitempty" yaml:"unidadeMedida,omitempty"`
	AreaPlantada     float64 `json:"areaPlantada,omitempty" yaml:"areaPlantada,omitempty"`
	AreaUnidade      string  `json:"areaUnidade,omitempty" yaml:"areaUnidade,omitempty"`
	DataIdealPlantio string  `json:"dataIdealPlantio,omitempty" yaml:"dataIdealPlantio,omitempty"`
	Finalidade       string  `json:"finalidade,omitempty" yaml:"finalidade,omitempty"`

	// Logística.
	FormaEntrega         string `json:"formaEntrega,omitempty" yaml:"formaEntrega,omitempty"`
	MunicipioDestino     string `json:"municipioDestino,omitempty" yaml:"municipioDestino,omitempty"`
	EnderecoEntrega      string `json:"enderecoEntrega,omitempty" yaml:"enderecoEntrega,omitempty"`
	CEPEntrega           string `json:"cepEntrega,omitempty" yaml:"cepEntrega,omitempty"`
	ComplementoEntrega   string `json:"complementoEntrega,omitempty" yaml:"complementoEntrega,omitempty"`
	NomeDestinatario     string `json:"nomeDestinatario,omitempty" yaml:"nomeDestinatario,omitempty"`
	TelefoneDestinatario string `json:"telefoneDestinatario,omitempty" yaml:"telefoneDestinatario,omitempty"`

	// Controle (owned by the backend after submission).
	Status          string `json:"status,omitempty" yaml:"status,omitempty"`
	DataCriacao     string `json:"dataCriacao,omitempty" yaml:"dataCriacao,omitempty"`
	DataAtualizacao string `json:"dataAtualizacao,omitempty" yaml:"dataAtualizacao,omitempty"`
	CodigoRastreio  string `json:"codigoRastreio,omitempty" yaml:"codigoRastreio,omitempty"`
	Observacoes     string `json:"observacoes,omitempty" yaml:"observacoes,omitempty"`
}

// Patch is a partial Solicitacao: nil fields are absent, non-nil fields
// overwrite. Each wizard step submits one Patch.
type Patch struct {
	BeneficiarioNome        *string
	BeneficiarioCPF         *string
	BeneficiarioCAF         *string
	TipoPropriedade         *string
	BeneficiarioCEP         *string
	BeneficiarioComplemento *string
	PontoReferencia         *string

	TipoInsumo       *string
	Cultura          *string
	Variedade        *string
	Quantidade       *int
	UnidadeMedida    *string
	AreaPlantada     *float64
	AreaUnidade      *string
	DataIdealPlantio *string
	Finalidade       *string

	FormaEntrega         *string
	MunicipioDestino     *string
	EnderecoEntrega      *string
	CEPEntrega           *string
	ComplementoEntrega   *string
	NomeDestinatario     *string
	TelefoneDestinatario *string

	Observacoes *string
}

// Apply merges the patch into s, last write per field wins.
func (p Patch) Apply(s *Solicitacao) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&s.BeneficiarioNome, p.BeneficiarioNome)
	setString(&s.BeneficiarioCPF, p.BeneficiarioCPF)
	setString(&s.BeneficiarioCAF, p.BeneficiarioCAF)
	setString(&s.TipoPropriedade, p.TipoPropriedade)
	setString(&s.BeneficiarioCEP, p.BeneficiarioCEP)
	setString(&s.BeneficiarioComplemento, p.BeneficiarioComplemento)
	setString(&s.PontoReferencia, p.PontoReferencia)

	setString(&s.TipoInsumo, p.TipoInsumo)
	setString(&s.Cultura, p.Cultura)
	setString(&s.Variedade, p.Variedade)
	if p.Quantidade != nil {
		s.Quantidade = *p.Quantidade
	}
	setString(&s.UnidadeMedida, p.UnidadeMedida)
	if p.AreaPlantada != nil {
		s.AreaPlantada = *p.AreaPlantada
	}
	setString(&s.AreaUnidade, p.AreaUnidade)
	setString(&s.DataIdealPlantio, p.DataIdealPlantio)
	setString(&s.Finalidade, p.Finalidade)

	setString(&s.FormaEntrega, p.FormaEntrega)
	setString(&s.MunicipioDestino, p.MunicipioDestino)
	setString(&s.EnderecoEntrega, p.EnderecoEntrega)
	setString(&s.CEPEntrega, p.CEPEntrega)
	setString(&s.ComplementoEntrega, p.ComplementoEntrega)
	setString(&s.NomeDestinatario, p.NomeDestinatario)
	setString(&s.TelefoneDestinatario, p.TelefoneDestinatario)

	setString(&s.Observacoes, p.Observacoes)
}

// ValidateDadosAgricultor checks the step-1 required subset.
func (s Solicitacao) ValidateDadosAgricultor() error {
	if blank(s.BeneficiarioNome) || blank(s.BeneficiarioCPF) || blank(s.TipoPropriedade) || blank(s.BeneficiarioCEP) {
		return ErrCamposObrigatorios
	}
	return nil
}

// ValidateDetalhesInsumo checks the step-2 required subset.
func (s Solicitacao) ValidateDetalhesInsumo() error {
	if blank(s.Cultura) || s.Quantidade <= 0 || s.AreaPlantada <= 0 {
		return ErrCamposObrigatorios
	}
	return nil
}

// ValidateLogistica checks the step-3 required subset.
func (s Solicitacao) ValidateLogistica() error {
	if blank(s.MunicipioDestino) || blank(s.EnderecoEntrega) || blank(s.CEPEntrega) ||
		blank(s.NomeDestinatario) || blank(s.TelefoneDestinatario) {
		return ErrCamposObrigatorios
	}
	return nil
}

// ParseQuantidade converts the quantity form field to an integer.
func ParseQuantidade(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errors.New("quantidade é obrigatória")
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, errors.New("quantidade inválida: informe um número inteiro positivo")
	}
	return n, nil
}

// ParseArea converts the planted-area form field to a decimal. Both comma
// and dot decimal separators are accepted.
func ParseArea(raw string) (float64, error) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if raw == "" {
		return 0, errors.New("área plantada é obrigatória")
	}
	area, err := strconv.ParseFloat(raw, 64)
	if err != nil || area <= 0 {
		return 0, errors.New("área plantada inválida: informe um número positivo")
	}
	return area, nil
}

// Filtrar returns the requests whose tracking code, crop or beneficiary
// name contains the term, case-insensitively. An empty term returns the
// input unchanged.
func Filtrar(items []Solicitacao, term string) []Solicitacao {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return items
	}
	var out []Solicitacao
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.CodigoRastreio), term) ||
			strings.Contains(strings.ToLower(item.Cultura), term) ||
			strings.Contains(strings.ToLower(item.BeneficiarioNome), term) {
			out = append(out, item)
		}
	}
	return out
}

// ContarPorStatus counts the requests currently in the given status.
func ContarPorStatus(items []Solicitacao, status string) int {
	n := 0
	for _, item := range items {
		if item.Status == status {
			n++
		}
	}
	return n
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
