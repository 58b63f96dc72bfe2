// internal/solicitacao/status.go

package solicitacao

import (
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

var statusLabels = map[string]string{
	StatusRascunho:     "Rascunho",
	StatusEnviada:      "Enviada",
	StatusEmAnalise:    "Em Análise",
	StatusAprovada:     "Aprovada",
	StatusEmPreparacao: "Em Preparação",
	StatusDespachada:   "Despachada",
	StatusEntregue:     "Entregue",
	StatusCancelada:    "Cancelada",
}

var statusColors = map[string]lipgloss.Color{
	StatusRascunho:     lipgloss.Color("#9E9E9E"),
	StatusEnviada:      lipgloss.Color("#2196F3"),
	StatusEmAnalise:    lipgloss.Color("#5B8DEF"),
	StatusAprovada:     lipgloss.Color("#4CAF50"),
	StatusEmPreparacao: lipgloss.Color("#F7B801"),
	StatusDespachada:   lipgloss.Color("#9C27B0"),
	StatusEntregue:     lipgloss.Color("#2E7D32"),
	StatusCancelada:    lipgloss.Color("#FF6B6B"),
}

// statusColorNeutral is used for statuses outside the known vocabulary.
var statusColorNeutral = lipgloss.Color("#888888")

// FormatStatus maps a status to its display label. Unmapped statuses are
// returned unchanged so legacy vocabularies still render something.
func FormatStatus(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

// StatusColor maps a status to the badge color, neutral gray when unmapped.
func StatusColor(status string) lipgloss.Color {
	if color, ok := statusColors[status]; ok {
		return color
	}
	return statusColorNeutral
}

// Tracking codes look like SAFRA-2025-F2QYAVLO.
var codigoRastreioRE = regexp.MustCompile(`^SAFRA-\d{4}-[A-Z0-9]{8}$`)

// ValidarCodigoRastreio reports whether a code matches the
// SAFRA-<year>-<8 alphanumerics> format.
func ValidarCodigoRastreio(codigo string) bool {
	return codigoRastreioRE.MatchString(codigo)
}
