// internal/tui/requests_view.go
//
// The agent's own request history, fetched by the session CPF. The list is
// filtered locally by tracking code, crop or beneficiary name; selecting an
// entry jumps straight to the tracking screen with its code.

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
	"github.com/ipa-pe/safra/internal/solicitacao"
)

type historicoMsg struct {
	items []solicitacao.Solicitacao
	err   error
}

type requestsView struct {
	app       *App
	items     []solicitacao.Solicitacao
	shown     []solicitacao.Solicitacao
	cursor    int
	busy      bool
	filtering bool
	errMsg    string

	filter textinput.Model
}

func newRequestsView(app *App) *requestsView {
	filter := textinput.New()
	filter.Placeholder = "buscar por código, cultura ou beneficiário"
	filter.Width = 42
	return &requestsView{app: app, filter: filter}
}

func (v *requestsView) Init() tea.Cmd {
	return v.reload()
}

func (v *requestsView) reload() tea.Cmd {
	user := v.app.session.User()
	if user == nil || user.CPF == "" {
		return func() tea.Msg { return sessionExpiredMsg{} }
	}
	v.busy = true
	client := v.app.client
	cpf := user.CPF
	return func() tea.Msg {
		items, err := client.SolicitacoesPorSolicitante(context.Background(), cpf)
		return historicoMsg{items: items, err: err}
	}
}

func (v *requestsView) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case historicoMsg:
		v.busy = false
		if m.err != nil {
			if api.IsKind(m.err, api.KindUnauthorized) {
				return func() tea.Msg { return sessionExpiredMsg{} }
			}
			v.errMsg = api.AsError(m.err).UserMessage()
			v.app.logWarn("Carga das solicitações falhou: %v", m.err)
			return nil
		}
		v.errMsg = ""
		v.items = m.items
		v.applyFilter()
		return nil

	case tea.KeyMsg:
		if v.busy {
			return nil
		}
		if v.filtering {
			return v.updateFilter(m)
		}
		return v.updateBrowse(m)
	}
	return nil
}

func (v *requestsView) updateBrowse(m tea.KeyMsg) tea.Cmd {
	switch m.String() {
	case "esc":
		v.app.returnToMainMenu()
		return nil
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.shown)-1 {
			v.cursor++
		}
	case "/":
		v.filtering = true
		return v.filter.Focus()
	case "r":
		return v.reload()
	case "n":
		return v.app.openWizard()
	case "enter":
		if item := v.selected(); item != nil && item.CodigoRastreio != "" {
			v.app.logInfo("Histórico · rastrear %s", item.CodigoRastreio)
			return v.app.openTracking(item.CodigoRastreio)
		}
	}
	return nil
}

func (v *requestsView) updateFilter(m tea.KeyMsg) tea.Cmd {
	switch m.String() {
	case "esc":
		v.filtering = false
		v.filter.Blur()
		v.filter.SetValue("")
		v.applyFilter()
		return nil
	case "enter":
		v.filtering = false
		v.filter.Blur()
		v.applyFilter()
		return nil
	}
	var cmd tea.Cmd
	v.filter, cmd = v.filter.Update(m)
	v.applyFilter()
	return cmd
}

func (v *requestsView) selected() *solicitacao.Solicitacao {
	if v.cursor < 0 || v.cursor >= len(v.shown) {
		return nil
	}
	return &v.shown[v.cursor]
}

func (v *requestsView) applyFilter() {
	v.shown = solicitacao.Filtrar(v.items, v.filter.Value())
	if v.cursor >= len(v.shown) {
		v.cursor = max(0, len(v.shown)-1)
	}
}

func (v *requestsView) renderResumo() string {
	parts := []string{
		fmt.Sprintf("Total: %d", len(v.items)),
		fmt.Sprintf("Em análise: %d", solicitacao.ContarPorStatus(v.items, solicitacao.StatusEmAnalise)),
		fmt.Sprintf("Aprovadas: %d", solicitacao.ContarPorStatus(v.items, solicitacao.StatusAprovada)),
		fmt.Sprintf("Entregues: %d", solicitacao.ContarPorStatus(v.items, solicitacao.StatusEntregue)),
	}
	return readonlyStyle.Render(strings.Join(parts, "  ·  "))
}

func (v *requestsView) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Minhas Solicitações") + "\n")
	b.WriteString(readonlyStyle.Render("Acompanhe todas as suas solicitações de insumos agrícolas") + "\n\n")

	if v.filtering || v.filter.Value() != "" {
		b.WriteString(formLabelStyle.Render("Filtro: ") + v.filter.View() + "\n\n")
	}
	if v.busy {
		b.WriteString("Carregando solicitações...\n")
	}
	if v.errMsg != "" {
		b.WriteString(formErrStyle.Render(v.errMsg) + "\n")
	}

	if len(v.items) > 0 {
		b.WriteString(v.renderResumo() + "\n\n")
	}

	if len(v.shown) == 0 && !v.busy && v.errMsg == "" {
		if v.filter.Value() != "" {
			b.WriteString(readonlyStyle.Render("Nenhuma solicitação encontrada. Tente buscar com outros termos.") + "\n")
		} else {
			b.WriteString(readonlyStyle.Render("Você ainda não fez nenhuma solicitação.") + "\n")
			b.WriteString(readonlyStyle.Render("Comece criando sua primeira solicitação de insumos (tecla n).") + "\n")
		}
	}

	for i, item := range v.shown {
		indicator := "  "
		if i == v.cursor {
			indicator = "> "
		}
		badge := lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(solicitacao.StatusColor(item.Status)).
			Render(solicitacao.FormatStatus(item.Status))
		head := fmt.Sprintf("%s%s  %s  %s", indicator,
			format.ValorOu(item.CodigoRastreio, "sem código"),
			badge, format.DataCompleta(item.DataCriacao))
		if i == v.cursor {
			head = lipgloss.NewStyle().Bold(true).Render(head)
		}
		b.WriteString(head + "\n")
		b.WriteString(readonlyStyle.Render(fmt.Sprintf("    %s · %s · %d %s · %s · %s",
			item.TipoInsumo, item.Cultura, item.Quantidade, item.UnidadeMedida,
			format.Valor(item.BeneficiarioNome), format.Valor(item.MunicipioDestino))) + "\n")
	}

	b.WriteString("\n" + formHintStyle.Render(
		"enter=rastrear  n=nova solicitação  /=filtrar  r=recarregar  esc=voltar"))
	return b.String()
}
