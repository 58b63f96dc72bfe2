// internal/tui/tracking_view.go
//
// Tracking search plus the five-position fulfillment timeline. The search
// only reaches the backend with a non-empty, well-formed code; everything
// else is rejected locally with the message the agent needs to fix it.

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ipa-pe/safra/internal/api"
	"github.com/ipa-pe/safra/internal/format"
	"github.com/ipa-pe/safra/internal/pdf"
	"github.com/ipa-pe/safra/internal/rastreio"
	"github.com/ipa-pe/safra/internal/solicitacao"
)

// timelineIcons are the five stage markers. A backend that reports more
// stages than positions gets the first icon for the extras, matching how
// the web client has always rendered overgrown timelines.
var timelineIcons = [rastreio.TimelineSize]string{"📄", "🔍", "📦", "🚚", "✅"}

type trackingResultMsg struct {
	pedido *rastreio.Pedido
	err    error
}

type pdfExportMsg struct {
	path string
	err  error
}

type trackingView struct {
	app       *App
	input     textinput.Model
	busy      bool
	exporting bool
	pedido    *rastreio.Pedido
	errMsg    string
}

func newTrackingView(app *App) *trackingView {
	ti := textinput.New()
	ti.Placeholder = "SAFRA-2025-XXXXXXXX"
	ti.CharLimit = 32
	ti.Width = 32
	ti.Focus()
	return &trackingView{app: app, input: ti}
}

// Init optionally fires an immediate search, used by the -codigo flag.
func (v *trackingView) Init(codigo string) tea.Cmd {
	if strings.TrimSpace(codigo) == "" {
		return textinput.Blink
	}
	v.input.SetValue(codigo)
	return v.search()
}

func (v *trackingView) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case trackingResultMsg:
		v.busy = false
		if m.err != nil {
			if api.IsKind(m.err, api.KindUnauthorized) {
				return func() tea.Msg { return sessionExpiredMsg{} }
			}
			v.errMsg = api.AsError(m.err).UserMessage()
			v.app.logWarn("Rastreio falhou: %v", m.err)
			return nil
		}
		v.pedido = m.pedido
		v.errMsg = ""
		v.app.logInfo("Rastreio consultado · %s (%s)", m.pedido.Codigo(), m.pedido.Status)
		return nil

	case pdfExportMsg:
		v.exporting = false
		if m.err != nil {
			v.errMsg = fmt.Sprintf("Falha ao gerar PDF: %v", m.err)
			v.app.logError("Exportação de PDF falhou: %v", m.err)
			return nil
		}
		v.app.statusMsg = fmt.Sprintf("PDF salvo em %s", m.path)
		v.app.logInfo("PDF exportado · %s", m.path)
		return nil

	case tea.KeyMsg:
		if v.busy {
			return nil
		}
		switch m.String() {
		case "esc":
			v.app.returnToMainMenu()
			return nil
		case "enter":
			return v.search()
		case "ctrl+n":
			v.pedido = nil
			v.errMsg = ""
			v.input.SetValue("")
			return v.input.Focus()
		case "ctrl+p":
			return v.exportPDF()
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return cmd
}

func (v *trackingView) search() tea.Cmd {
	codigo := strings.ToUpper(strings.TrimSpace(v.input.Value()))
	if codigo == "" {
		v.errMsg = "Digite um código de rastreamento"
		return nil
	}
	if !solicitacao.ValidarCodigoRastreio(codigo) {
		v.errMsg = "Código inválido. Formato esperado: SAFRA-AAAA-XXXXXXXX"
		return nil
	}
	v.busy = true
	v.errMsg = ""
	client := v.app.client
	return func() tea.Msg {
		pedido, err := client.Rastrear(context.Background(), codigo)
		return trackingResultMsg{pedido: pedido, err: err}
	}
}

func (v *trackingView) exportPDF() tea.Cmd {
	if v.pedido == nil || v.exporting {
		return nil
	}
	v.exporting = true
	pedido := v.pedido
	return func() tea.Msg {
		path, err := pdf.Export(pedido, ".")
		return pdfExportMsg{path: path, err: err}
	}
}

func (v *trackingView) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Rastreamento de Pedido") + "\n\n")
	b.WriteString(formLabelStyle.Render("Código de rastreamento") + "\n")
	b.WriteString(v.input.View() + "\n")

	if v.busy {
		b.WriteString("\nConsultando...\n")
	}
	if v.errMsg != "" {
		b.WriteString("\n" + formErrStyle.Render(v.errMsg) + "\n")
	}
	if v.pedido != nil {
		b.WriteString("\n" + v.renderPedido() + "\n")
	}
	hint := "enter=buscar  esc=voltar"
	if v.pedido != nil {
		hint = "ctrl+p=exportar PDF  ctrl+n=nova busca  esc=voltar"
	}
	b.WriteString(formHintStyle.Render(hint))
	return b.String()
}

func (v *trackingView) renderPedido() string {
	p := v.pedido
	badge := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(solicitacao.StatusColor(p.Status)).
		Padding(0, 1).
		Render(solicitacao.FormatStatus(p.Status))

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s\n\n", summaryHeadStyle.Render(p.Codigo()), badge))

	rows := [][2]string{
		{"Data da solicitação", format.Data(p.DataReferencia())},
		{"Previsão de despacho", format.Data(p.PrevisaoDespacho)},
		{"Cultura", fmt.Sprintf("%s (%s)", format.Valor(p.Cultura), format.Valor(p.Variedade))},
		{"Destinatário", format.Valor(p.Destinatario())},
		{"Endereço", format.Valor(p.Endereco())},
		{"Município", format.Valor(p.MunicipioResolvido())},
	}
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("  %-22s %s\n", row[0], row[1]))
	}

	if len(p.Etapas) > 0 {
		b.WriteString("\n" + summaryHeadStyle.Render("Etapas") + "\n")
		for i, etapa := range p.Etapas {
			icon := timelineIcons[0]
			if i < rastreio.TimelineSize {
				icon = timelineIcons[i]
			}
			style := stepPendingStyle
			marker := "○"
			if etapa.Concluida {
				style = stepDoneStyle
				marker = "●"
			}
			b.WriteString(style.Render(fmt.Sprintf("  %s %s %s", marker, icon, etapa.Nome)) + "\n")
			if etapa.Descricao != "" {
				b.WriteString(readonlyStyle.Render("      "+etapa.Descricao) + "\n")
			}
		}
	}
	return b.String()
}
