// internal/tui/inventory_view.go
//
// Seed catalog management, reachable only for ADMIN users. The list is
// fetched from the backend and filtered locally; create, edit, stock
// adjustment, activation toggle and delete all round-trip through the API
// and reload the list afterwards so the screen never shows stale data.

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ipa-pe/safra/internal/api"
	"github.com/ipa-pe/safra/internal/semente"
	"github.com/ipa-pe/safra/internal/solicitacao"
)

type inventoryMode int

const (
	invBrowse inventoryMode = iota
	invFilter
	invForm
	invStock
	invConfirmDelete
)

type sementesMsg struct {
	items []semente.Semente
	err   error
}

type mutationMsg struct {
	action string
	err    error
}

type inventoryView struct {
	app    *App
	mode   inventoryMode
	items  []semente.Semente
	shown  []semente.Semente
	cursor int
	busy   bool
	errMsg string

	filter textinput.Model

	// invForm state; editing==nil means a new item.
	form    []wizardField
	formIdx int
	editing *semente.Semente

	// invStock state.
	stock textinput.Model
}

func newInventoryView(app *App) *inventoryView {
	filter := textinput.New()
	filter.Placeholder = "filtrar por nome ou cultura"
	filter.Width = 36

	stock := textinput.New()
	stock.Placeholder = "novo estoque, ex.: 120,5"
	stock.Width = 20

	return &inventoryView{app: app, filter: filter, stock: stock}
}

func (v *inventoryView) Init() tea.Cmd {
	return v.reload()
}

func (v *inventoryView) reload() tea.Cmd {
	v.busy = true
	client := v.app.client
	return func() tea.Msg {
		items, err := client.ListarSementes(context.Background())
		return sementesMsg{items: items, err: err}
	}
}

func (v *inventoryView) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case sementesMsg:
		v.busy = false
		if m.err != nil {
			if api.IsKind(m.err, api.KindUnauthorized) {
				return func() tea.Msg { return sessionExpiredMsg{} }
			}
			v.errMsg = api.AsError(m.err).UserMessage()
			v.app.logWarn("Carga do catálogo falhou: %v", m.err)
			return nil
		}
		v.errMsg = ""
		v.items = m.items
		v.applyFilter()
		return nil

	case mutationMsg:
		v.busy = false
		if m.err != nil {
			if api.IsKind(m.err, api.KindUnauthorized) {
				return func() tea.Msg { return sessionExpiredMsg{} }
			}
			v.errMsg = api.AsError(m.err).UserMessage()
			v.app.logError("Catálogo · %s falhou: %v", m.action, m.err)
			return nil
		}
		v.app.logInfo("Catálogo · %s", m.action)
		v.app.statusMsg = fmt.Sprintf("Catálogo atualizado (%s)", m.action)
		v.mode = invBrowse
		return v.reload()

	case tea.KeyMsg:
		if v.busy {
			return nil
		}
		switch v.mode {
		case invBrowse:
			return v.updateBrowse(m)
		case invFilter:
			return v.updateFilter(m)
		case invForm:
			return v.updateForm(m)
		case invStock:
			return v.updateStock(m)
		case invConfirmDelete:
			return v.updateConfirmDelete(m)
		}
	}
	return nil
}

func (v *inventoryView) updateBrowse(m tea.KeyMsg) tea.Cmd {
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
		v.mode = invFilter
		return v.filter.Focus()
	case "r":
		return v.reload()
	case "n":
		v.openForm(nil)
		return nil
	case "enter", "e":
		if item := v.selected(); item != nil {
			v.openForm(item)
		}
		return nil
	case "t":
		if item := v.selected(); item != nil {
			return v.toggle(item)
		}
	case "s":
		if item := v.selected(); item != nil {
			v.mode = invStock
			v.stock.SetValue("")
			return v.stock.Focus()
		}
	case "d":
		if v.selected() != nil {
			v.mode = invConfirmDelete
		}
	}
	return nil
}

func (v *inventoryView) updateFilter(m tea.KeyMsg) tea.Cmd {
	switch m.String() {
	case "esc":
		v.mode = invBrowse
		v.filter.Blur()
		v.filter.SetValue("")
		v.applyFilter()
		return nil
	case "enter":
		v.mode = invBrowse
		v.filter.Blur()
		v.applyFilter()
		return nil
	}
	var cmd tea.Cmd
	v.filter, cmd = v.filter.Update(m)
	v.applyFilter()
	return cmd
}

func (v *inventoryView) updateForm(m tea.KeyMsg) tea.Cmd {
	switch m.String() {
	case "esc":
		v.mode = invBrowse
		return nil
	case "tab", "down":
		return v.moveFormFocus(1)
	case "shift+tab", "up":
		return v.moveFormFocus(-1)
	case "left", "right":
		f := &v.form[v.formIdx]
		if len(f.choices) > 0 {
			delta := 1
			if m.String() == "left" {
				delta = len(f.choices) - 1
			}
			f.choice = (f.choice + delta) % len(f.choices)
			return nil
		}
	case "enter":
		return v.saveForm()
	}
	f := &v.form[v.formIdx]
	if len(f.choices) == 0 {
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(m)
		return cmd
	}
	return nil
}

func (v *inventoryView) updateStock(m tea.KeyMsg) tea.Cmd {
	switch m.String() {
	case "esc":
		v.mode = invBrowse
		v.stock.Blur()
		return nil
	case "enter":
		item := v.selected()
		if item == nil {
			v.mode = invBrowse
			return nil
		}
		qty, err := solicitacao.ParseArea(v.stock.Value())
		if err != nil {
			v.errMsg = "Estoque inválido: informe um número positivo"
			return nil
		}
		v.errMsg = ""
		v.mode = invBrowse
		v.stock.Blur()
		v.busy = true
		client := v.app.client
		id, nome := item.ID, item.Nome
		return func() tea.Msg {
			err := client.AtualizarEstoqueSemente(context.Background(), id, qty)
			return mutationMsg{action: fmt.Sprintf("estoque de %s", nome), err: err}
		}
	}
	var cmd tea.Cmd
	v.stock, cmd = v.stock.Update(m)
	return cmd
}

func (v *inventoryView) updateConfirmDelete(m tea.KeyMsg) tea.Cmd {
	switch m.String() {
	case "s", "y", "enter":
		item := v.selected()
		if item == nil {
			v.mode = invBrowse
			return nil
		}
		v.mode = invBrowse
		v.busy = true
		client := v.app.client
		id, nome := item.ID, item.Nome
		return func() tea.Msg {
			err := client.DeletarSemente(context.Background(), id)
			return mutationMsg{action: fmt.Sprintf("remoção de %s", nome), err: err}
		}
	case "n", "esc":
		v.mode = invBrowse
	}
	return nil
}

func (v *inventoryView) toggle(item *semente.Semente) tea.Cmd {
	v.busy = true
	client := v.app.client
	id, nome := item.ID, item.Nome
	return func() tea.Msg {
		err := client.AlternarStatusSemente(context.Background(), id)
		return mutationMsg{action: fmt.Sprintf("status de %s", nome), err: err}
	}
}

func (v *inventoryView) selected() *semente.Semente {
	if v.cursor < 0 || v.cursor >= len(v.shown) {
		return nil
	}
	return &v.shown[v.cursor]
}

func (v *inventoryView) applyFilter() {
	v.shown = semente.Filter(v.items, v.filter.Value())
	if v.cursor >= len(v.shown) {
		v.cursor = max(0, len(v.shown)-1)
	}
}

func (v *inventoryView) openForm(item *semente.Semente) {
	v.editing = item
	var cur semente.Semente
	if item != nil {
		cur = *item
	}
	v.form = []wizardField{
		textField("nome", "Nome *", "ex.: Milho BRS Caatingueiro", cur.Nome),
		choiceField("tipo", "Tipo *",
			[]string{semente.TipoSemente, semente.TipoMuda, semente.TipoFertilizante}, cur.Tipo),
		textField("cultura", "Cultura *", "ex.: Milho", cur.Cultura),
		textField("variedade", "Variedade", "", cur.Variedade),
		textField("estoque", "Estoque disponível *", "ex.: 500", estoqueString(cur.EstoqueDisponivel)),
		choiceField("unidadeMedida", "Unidade *", []string{"kg", "sacas", "unidades"}, cur.UnidadeMedida),
		textField("descricao", "Descrição", "", cur.Descricao),
	}
	v.formIdx = 0
	v.form[0].input.Focus()
	v.mode = invForm
	v.errMsg = ""
}

func estoqueString(e float64) string {
	if e <= 0 {
		return ""
	}
	return strings.ReplaceAll(fmt.Sprintf("%g", e), ".", ",")
}

func (v *inventoryView) moveFormFocus(delta int) tea.Cmd {
	v.form[v.formIdx].input.Blur()
	v.formIdx = (v.formIdx + delta + len(v.form)) % len(v.form)
	f := &v.form[v.formIdx]
	if len(f.choices) > 0 {
		return nil
	}
	return f.input.Focus()
}

func (v *inventoryView) saveForm() tea.Cmd {
	var s semente.Semente
	if v.editing != nil {
		s = *v.editing
	} else {
		s.Ativo = true
	}
	for i := range v.form {
		f := &v.form[i]
		val := f.value()
		switch f.key {
		case "nome":
			s.Nome = val
		case "tipo":
			s.Tipo = val
		case "cultura":
			s.Cultura = val
		case "variedade":
			s.Variedade = val
		case "estoque":
			qty, err := solicitacao.ParseArea(val)
			if err != nil {
				v.errMsg = "Estoque inválido: informe um número positivo"
				return nil
			}
			s.EstoqueDisponivel = qty
		case "unidadeMedida":
			s.UnidadeMedida = val
		case "descricao":
			s.Descricao = val
		}
	}
	if strings.TrimSpace(s.Nome) == "" || strings.TrimSpace(s.Cultura) == "" {
		v.errMsg = solicitacao.ErrCamposObrigatorios.Error()
		return nil
	}
	v.errMsg = ""
	v.busy = true
	client := v.app.client
	editing := v.editing
	return func() tea.Msg {
		var err error
		var action string
		if editing != nil {
			_, err = client.AtualizarSemente(context.Background(), editing.ID, s)
			action = fmt.Sprintf("edição de %s", s.Nome)
		} else {
			_, err = client.CriarSemente(context.Background(), s)
			action = fmt.Sprintf("criação de %s", s.Nome)
		}
		return mutationMsg{action: action, err: err}
	}
}

func (v *inventoryView) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Catálogo de Sementes e Mudas") + "\n\n")

	switch v.mode {
	case invForm:
		title := "Novo item"
		if v.editing != nil {
			title = fmt.Sprintf("Editando %s", v.editing.Nome)
		}
		b.WriteString(summaryHeadStyle.Render(title) + "\n\n")
		for i := range v.form {
			f := &v.form[i]
			indicator := "  "
			if i == v.formIdx {
				indicator = "> "
			}
			b.WriteString(indicator + formLabelStyle.Render(f.label) + "\n")
			if len(f.choices) > 0 {
				b.WriteString("  " + renderChoice(f, i == v.formIdx) + "\n")
			} else {
				b.WriteString("  " + f.input.View() + "\n")
			}
		}
		if v.errMsg != "" {
			b.WriteString("\n" + formErrStyle.Render(v.errMsg) + "\n")
		}
		b.WriteString(formHintStyle.Render("enter=salvar  esc=cancelar  tab=próximo campo"))
		return b.String()

	case invStock:
		item := v.selected()
		if item != nil {
			b.WriteString(fmt.Sprintf("Estoque atual de %s: %g %s\n\n",
				item.Nome, item.EstoqueDisponivel, item.UnidadeMedida))
		}
		b.WriteString(formLabelStyle.Render("Novo estoque") + "\n")
		b.WriteString(v.stock.View() + "\n")
		if v.errMsg != "" {
			b.WriteString("\n" + formErrStyle.Render(v.errMsg) + "\n")
		}
		b.WriteString(formHintStyle.Render("enter=confirmar  esc=cancelar"))
		return b.String()

	case invConfirmDelete:
		if item := v.selected(); item != nil {
			b.WriteString(formErrStyle.Render(fmt.Sprintf("Remover %s do catálogo?", item.Nome)) + "\n\n")
		}
		b.WriteString(formHintStyle.Render("s=remover  n=cancelar"))
		return b.String()
	}

	if v.mode == invFilter || v.filter.Value() != "" {
		b.WriteString(formLabelStyle.Render("Filtro: ") + v.filter.View() + "\n\n")
	}
	if v.busy {
		b.WriteString("Carregando catálogo...\n")
	}
	if v.errMsg != "" {
		b.WriteString(formErrStyle.Render(v.errMsg) + "\n")
	}
	if len(v.shown) == 0 && !v.busy {
		b.WriteString(readonlyStyle.Render("Nenhum item no catálogo.") + "\n")
	}
	for i, item := range v.shown {
		indicator := "  "
		if i == v.cursor {
			indicator = "> "
		}
		state := stepDoneStyle.Render("ativo")
		if !item.Ativo {
			state = stepPendingStyle.Render("inativo")
		}
		line := fmt.Sprintf("%s%s · %s/%s · %g %s · %s",
			indicator, item.Nome, item.Tipo, item.Cultura,
			item.EstoqueDisponivel, item.UnidadeMedida, state)
		if i == v.cursor {
			line = lipgloss.NewStyle().Bold(true).Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + formHintStyle.Render(
		"n=novo  enter=editar  s=estoque  t=ativar/desativar  d=remover  /=filtrar  r=recarregar  esc=voltar"))
	return b.String()
}
