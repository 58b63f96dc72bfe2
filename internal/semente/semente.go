// internal/semente/semente.go
//
// Catalog entity for the seed/seedling inventory managed by administrators.
// The backend owns the data; this package holds the shape plus the pure
// helpers the UI needs (client-side filtering and catalog-derived option
// lists for the wizard's supply step).

package semente

import (
	"sort"
	"strings"
)

// Catalog item types.
const (
	TipoSemente      = "SEMENTE"
	TipoMuda         = "MUDA"
	TipoFertilizante = "FERTILIZANTE"
)

// Semente is one catalog item.
type Semente struct {
	ID                int64   `json:"id,omitempty"`
	Nome              string  `json:"nome"`
	Tipo              string  `json:"tipo"`
	Cultura           string  `json:"cultura"`
	Variedade         string  `json:"variedade,omitempty"`
	Descricao         string  `json:"descricao,omitempty"`
	EstoqueDisponivel float64 `json:"estoqueDisponivel"`
	UnidadeMedida     string  `json:"unidadeMedida"`
	PesoUnidade       float64 `json:"pesoUnidade,omitempty"`
	Ativo             bool    `json:"ativo"`
	ImagemURL         string  `json:"imagemUrl,omitempty"`
	DataCriacao       string  `json:"dataCriacao,omitempty"`
	DataAtualizacao   string  `json:"dataAtualizacao,omitempty"`
	Observacoes       string  `json:"observacoes,omitempty"`
}

// Filter returns the items whose name or crop contains the term,
// case-insensitively. An empty term returns the input unchanged.
func Filter(items []Semente, term string) []Semente {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return items
	}
	var out []Semente
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Nome), term) ||
			strings.Contains(strings.ToLower(item.Cultura), term) {
			out = append(out, item)
		}
	}
	return out
}

// Culturas returns the distinct crops available for a given supply type,
// sorted alphabetically. Inactive items are skipped. An empty tipo matches
// every type.
func Culturas(items []Semente, tipo string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, item := range items {
		if !item.Ativo {
			continue
		}
		if tipo != "" && !strings.EqualFold(item.Tipo, tipo) {
			continue
		}
		cultura := strings.TrimSpace(item.Cultura)
		if cultura == "" {
			continue
		}
		if _, ok := seen[cultura]; ok {
			continue
		}
		seen[cultura] = struct{}{}
		out = append(out, cultura)
	}
	sort.Strings(out)
	return out
}

// Variedades returns the distinct varieties for a crop (and optionally a
// supply type), sorted alphabetically.
func Variedades(items []Semente, tipo, cultura string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, item := range items {
		if !item.Ativo {
			continue
		}
		if tipo != "" && !strings.EqualFold(item.Tipo, tipo) {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(item.Cultura), strings.TrimSpace(cultura)) {
			continue
		}
		variedade := strings.TrimSpace(item.Variedade)
		if variedade == "" {
			continue
		}
		if _, ok := seen[variedade]; ok {
			continue
		}
		seen[variedade] = struct{}{}
		out = append(out, variedade)
	}
	sort.Strings(out)
	return out
}
