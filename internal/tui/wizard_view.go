// internal/tui/wizard_view.go
//
// Multi-step request form. Steps 1-3 edit one field group each; advancing a
// step merges that group into the shared draft and validates the merged
// record, so going back never loses data. Step 4 is a read-only summary and
// the only place a submission can happen.

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
	"github.com/ipa-pe/safra/internal/semente"
	"github.com/ipa-pe/safra/internal/solicitacao"
)

const (
	stepAgricultor = iota
	stepInsumo
	stepLogistica
	stepResumo
	wizardSteps = 4
)

var stepTitles = [wizardSteps]string{
	"Dados do Agricultor",
	"Detalhes do Insumo",
	"Logística de Entrega",
	"Resumo da Solicitação",
}

var (
	stepDoneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	stepCurrentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	stepPendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	readonlyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	summaryHeadStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
)

// wizardField is one editable entry of a step: either a free text input or a
// fixed set of choices cycled with left/right.
type wizardField struct {
	key     string
	label   string
	input   textinput.Model
	choices []string
	choice  int
}

func (f *wizardField) value() string {
	if len(f.choices) > 0 {
		return f.choices[f.choice]
	}
	return strings.TrimSpace(f.input.Value())
}

func textField(key, label, placeholder, initial string) wizardField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Width = 36
	ti.CharLimit = 120
	ti.SetValue(initial)
	return wizardField{key: key, label: label, input: ti}
}

func choiceField(key, label string, choices []string, initial string) wizardField {
	idx := 0
	for i, c := range choices {
		if strings.EqualFold(c, initial) {
			idx = i
			break
		}
	}
	return wizardField{key: key, label: label, choices: choices, choice: idx}
}

type submitResultMsg struct {
	resp *api.CriarSolicitacaoResponse
	err  error
}

type catalogoMsg struct {
	items []semente.Semente
	err   error
}

// wizardView drives the four-step request form.
type wizardView struct {
	app        *App
	step       int
	fields     []wizardField
	focus      int
	errMsg     string
	submitting bool
	catalogo   []semente.Semente
}

func newWizardView(app *App) *wizardView {
	v := &wizardView{app: app}
	v.mountStep(stepAgricultor)
	return v
}

// Init loads the active seed catalog so step 2 can suggest culturas.
func (v *wizardView) Init() tea.Cmd {
	client := v.app.client
	return func() tea.Msg {
		items, err := client.ListarSementesAtivas(context.Background())
		return catalogoMsg{items: items, err: err}
	}
}

// mountStep rebuilds the field list for a step from the current draft, so
// values entered earlier reappear when navigating back.
func (v *wizardView) mountStep(step int) {
	cur := v.app.draft.Current()
	v.step = step
	v.focus = 0
	v.errMsg = ""

	switch step {
	case stepAgricultor:
		v.fields = []wizardField{
			textField("beneficiarioNome", "Nome do agricultor *", "nome completo", cur.BeneficiarioNome),
			textField("beneficiarioCpf", "CPF *", "000.000.000-00", cur.BeneficiarioCPF),
			textField("beneficiarioCaf", "CAF", "número do CAF", cur.BeneficiarioCAF),
			choiceField("tipoPropriedade", "Tipo de propriedade *",
				[]string{"PEQUENA", "MEDIA", "GRANDE", "ASSENTAMENTO"}, cur.TipoPropriedade),
			textField("beneficiarioCep", "CEP *", "00000-000", cur.BeneficiarioCEP),
			textField("beneficiarioComplemento", "Complemento", "sítio, lote...", cur.BeneficiarioComplemento),
			textField("pontoReferencia", "Ponto de referência", "", cur.PontoReferencia),
		}
	case stepInsumo:
		v.fields = []wizardField{
			choiceField("tipoInsumo", "Tipo de insumo *",
				[]string{solicitacao.TipoSementes, solicitacao.TipoMudas}, cur.TipoInsumo),
			textField("cultura", "Cultura *", "ex.: Milho", cur.Cultura),
			textField("variedade", "Variedade", "ex.: BRS Caatingueiro", cur.Variedade),
			textField("quantidade", "Quantidade *", "número inteiro", intString(cur.Quantidade)),
			choiceField("unidadeMedida", "Unidade", []string{"kg", "sacas", "unidades"}, cur.UnidadeMedida),
			textField("areaPlantada", "Área plantada *", "ex.: 2,5", areaString(cur.AreaPlantada)),
			choiceField("areaUnidade", "Unidade de área", []string{"hectares", "tarefas"}, cur.AreaUnidade),
			textField("dataIdealPlantio", "Data ideal de plantio", "AAAA-MM-DD", cur.DataIdealPlantio),
			textField("finalidade", "Finalidade", "subsistência, comercialização...", cur.Finalidade),
		}
	case stepLogistica:
		v.fields = []wizardField{
			choiceField("formaEntrega", "Forma de entrega *",
				[]string{solicitacao.EntregaRetirada, solicitacao.EntregaDomicilio}, cur.FormaEntrega),
			textField("municipioDestino", "Município *", "", cur.MunicipioDestino),
			textField("enderecoEntrega", "Endereço *", "", cur.EnderecoEntrega),
			textField("cepEntrega", "CEP *", "00000-000", cur.CEPEntrega),
			textField("complementoEntrega", "Complemento", "", cur.ComplementoEntrega),
			textField("nomeDestinatario", "Destinatário *", "quem recebe", cur.NomeDestinatario),
			textField("telefoneDestinatario", "Telefone *", "(00) 00000-0000", cur.TelefoneDestinatario),
			textField("observacoes", "Observações", "", cur.Observacoes),
		}
	case stepResumo:
		v.fields = nil
	}
	if len(v.fields) > 0 {
		v.fields[0].input.Focus()
	}
}

func intString(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%d", n)
}

func areaString(a float64) string {
	if a <= 0 {
		return ""
	}
	return strings.ReplaceAll(fmt.Sprintf("%g", a), ".", ",")
}

func (v *wizardView) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case catalogoMsg:
		if m.err != nil {
			// Suggestions are optional; the form works without the catalog.
			v.app.logWarn("Catálogo indisponível: %v", m.err)
			return nil
		}
		v.catalogo = m.items
		return nil

	case submitResultMsg:
		v.submitting = false
		if m.err != nil {
			if api.IsKind(m.err, api.KindUnauthorized) {
				return func() tea.Msg { return sessionExpiredMsg{} }
			}
			v.errMsg = api.AsError(m.err).UserMessage()
			v.app.logError("Envio da solicitação falhou: %v", m.err)
			return nil
		}
		codigo := m.resp.CodigoRastreio
		v.app.logInfo("Solicitação enviada · %s", codigo)
		v.app.draft.Reset()
		v.app.showSuccess(codigo)
		return nil

	case tea.KeyMsg:
		if v.submitting {
			// A submission is in flight; no input can trigger another.
			return nil
		}
		switch m.String() {
		case "esc":
			if v.step == stepAgricultor {
				v.app.returnToMainMenu()
				return nil
			}
			v.mountStep(v.step - 1)
			return nil
		case "tab", "down":
			return v.moveFocus(1)
		case "shift+tab", "up":
			return v.moveFocus(-1)
		case "left":
			if f := v.focusedField(); f != nil && len(f.choices) > 0 {
				f.choice = (f.choice + len(f.choices) - 1) % len(f.choices)
				return nil
			}
		case "right":
			if f := v.focusedField(); f != nil && len(f.choices) > 0 {
				f.choice = (f.choice + 1) % len(f.choices)
				return nil
			}
		case "enter":
			if v.step == stepResumo {
				return v.submit()
			}
			return v.advance()
		}
	}

	if f := v.focusedField(); f != nil && len(f.choices) == 0 {
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		return cmd
	}
	return nil
}

func (v *wizardView) focusedField() *wizardField {
	if v.focus < 0 || v.focus >= len(v.fields) {
		return nil
	}
	return &v.fields[v.focus]
}

func (v *wizardView) moveFocus(delta int) tea.Cmd {
	if len(v.fields) == 0 {
		return nil
	}
	if f := v.focusedField(); f != nil {
		f.input.Blur()
	}
	v.focus = (v.focus + delta + len(v.fields)) % len(v.fields)
	f := v.focusedField()
	if len(f.choices) > 0 {
		return nil
	}
	return f.input.Focus()
}

// advance merges the current step into the draft, validates it and moves on.
func (v *wizardView) advance() tea.Cmd {
	patch, err := v.collectPatch()
	if err != nil {
		v.errMsg = err.Error()
		return nil
	}
	v.app.draft.Update(patch)

	cur := v.app.draft.Current()
	var stepErr error
	switch v.step {
	case stepAgricultor:
		stepErr = cur.ValidateDadosAgricultor()
	case stepInsumo:
		stepErr = cur.ValidateDetalhesInsumo()
	case stepLogistica:
		stepErr = cur.ValidateLogistica()
	}
	if stepErr != nil {
		v.errMsg = stepErr.Error()
		return nil
	}
	v.mountStep(v.step + 1)
	return nil
}

// collectPatch turns the on-screen fields into a partial update. Numeric
// fields fail here, before anything reaches the draft.
func (v *wizardView) collectPatch() (solicitacao.Patch, error) {
	var p solicitacao.Patch
	for i := range v.fields {
		f := &v.fields[i]
		val := f.value()
		switch f.key {
		case "beneficiarioNome":
			p.BeneficiarioNome = &val
		case "beneficiarioCpf":
			p.BeneficiarioCPF = &val
		case "beneficiarioCaf":
			p.BeneficiarioCAF = &val
		case "tipoPropriedade":
			p.TipoPropriedade = &val
		case "beneficiarioCep":
			p.BeneficiarioCEP = &val
		case "beneficiarioComplemento":
			p.BeneficiarioComplemento = &val
		case "pontoReferencia":
			p.PontoReferencia = &val
		case "tipoInsumo":
			p.TipoInsumo = &val
		case "cultura":
			p.Cultura = &val
		case "variedade":
			p.Variedade = &val
		case "quantidade":
			n, err := solicitacao.ParseQuantidade(val)
			if err != nil {
				return p, err
			}
			p.Quantidade = &n
		case "unidadeMedida":
			p.UnidadeMedida = &val
		case "areaPlantada":
			area, err := solicitacao.ParseArea(val)
			if err != nil {
				return p, err
			}
			p.AreaPlantada = &area
		case "areaUnidade":
			p.AreaUnidade = &val
		case "dataIdealPlantio":
			p.DataIdealPlantio = &val
		case "finalidade":
			p.Finalidade = &val
		case "formaEntrega":
			p.FormaEntrega = &val
		case "municipioDestino":
			p.MunicipioDestino = &val
		case "enderecoEntrega":
			p.EnderecoEntrega = &val
		case "cepEntrega":
			p.CEPEntrega = &val
		case "complementoEntrega":
			p.ComplementoEntrega = &val
		case "nomeDestinatario":
			p.NomeDestinatario = &val
		case "telefoneDestinatario":
			p.TelefoneDestinatario = &val
		case "observacoes":
			p.Observacoes = &val
		}
	}
	return p, nil
}

// submit sends the merged draft exactly once. The submitting flag stays set
// until the backend answers, so repeated confirmations are structurally
// impossible, not just visually discouraged.
func (v *wizardView) submit() tea.Cmd {
	if v.submitting {
		return nil
	}
	v.submitting = true
	v.errMsg = ""
	payload := v.app.draft.Current()
	payload.Status = solicitacao.StatusEnviada
	client := v.app.client
	return func() tea.Msg {
		resp, err := client.CriarSolicitacao(context.Background(), payload)
		return submitResultMsg{resp: resp, err: err}
	}
}

func (v *wizardView) View() string {
	var b strings.Builder
	b.WriteString(v.renderStepper())
	b.WriteString("\n\n")

	if v.step == stepResumo {
		b.WriteString(v.renderSummary())
	} else {
		if v.step == stepAgricultor {
			b.WriteString(v.renderRequester())
			b.WriteString("\n")
		}
		for i := range v.fields {
			f := &v.fields[i]
			indicator := "  "
			if i == v.focus {
				indicator = "> "
			}
			b.WriteString(indicator + formLabelStyle.Render(f.label) + "\n")
			if len(f.choices) > 0 {
				b.WriteString("  " + renderChoice(f, i == v.focus) + "\n")
			} else {
				b.WriteString("  " + f.input.View() + "\n")
			}
		}
		if v.step == stepInsumo {
			if hint := v.culturaHint(); hint != "" {
				b.WriteString("\n" + formHintStyle.Render(hint) + "\n")
			}
			if hint := v.variedadeHint(); hint != "" {
				b.WriteString(formHintStyle.Render(hint) + "\n")
			}
		}
	}

	if v.errMsg != "" {
		b.WriteString("\n" + formErrStyle.Render(v.errMsg) + "\n")
	}
	if v.submitting {
		b.WriteString("\nEnviando solicitação...\n")
	}
	b.WriteString(formHintStyle.Render(v.hintLine()))
	return b.String()
}

func (v *wizardView) hintLine() string {
	if v.step == stepResumo {
		return "enter=confirmar envio  esc=voltar e editar"
	}
	return "enter=avançar  esc=voltar  tab=próximo campo  ←/→=alternar opção"
}

func (v *wizardView) renderStepper() string {
	parts := make([]string, 0, wizardSteps)
	for i, title := range stepTitles {
		label := fmt.Sprintf("%d. %s", i+1, title)
		switch {
		case i < v.step:
			parts = append(parts, stepDoneStyle.Render("✓ "+label))
		case i == v.step:
			parts = append(parts, stepCurrentStyle.Render("▶ "+label))
		default:
			parts = append(parts, stepPendingStyle.Render(label))
		}
	}
	return strings.Join(parts, "  ")
}

// renderRequester shows the session-derived requester block. These fields
// are not editable: they always mirror the logged-in agent.
func (v *wizardView) renderRequester() string {
	cur := v.app.draft.Current()
	lines := []string{
		summaryHeadStyle.Render("Solicitante (via sessão)"),
		readonlyStyle.Render(fmt.Sprintf("  %s · CPF %s", format.Valor(cur.SolicitanteNome), format.CPF(cur.SolicitanteCPF))),
	}
	if cur.SolicitanteMatricula != "" || cur.LocalAtuacao != "" {
		lines = append(lines, readonlyStyle.Render(fmt.Sprintf("  Matrícula %s · %s",
			format.Valor(cur.SolicitanteMatricula), format.Valor(cur.LocalAtuacao))))
	}
	return strings.Join(lines, "\n") + "\n"
}

func renderChoice(f *wizardField, focused bool) string {
	parts := make([]string, len(f.choices))
	for i, c := range f.choices {
		if i == f.choice {
			if focused {
				parts[i] = stepCurrentStyle.Render("[" + c + "]")
			} else {
				parts[i] = "[" + c + "]"
			}
		} else {
			parts[i] = stepPendingStyle.Render(c)
		}
	}
	return strings.Join(parts, " ")
}

// catalogTipo maps the selected supply type to its catalog counterpart.
// The catalog uses singular type names, the request uses plural ones.
func (v *wizardView) catalogTipo() string {
	for i := range v.fields {
		if v.fields[i].key == "tipoInsumo" && v.fields[i].value() == solicitacao.TipoMudas {
			return semente.TipoMuda
		}
	}
	return semente.TipoSemente
}

func (v *wizardView) fieldValue(key string) string {
	for i := range v.fields {
		if v.fields[i].key == key {
			return v.fields[i].value()
		}
	}
	return ""
}

func (v *wizardView) culturaHint() string {
	if len(v.catalogo) == 0 {
		return ""
	}
	culturas := semente.Culturas(v.catalogo, v.catalogTipo())
	if len(culturas) == 0 {
		return ""
	}
	return "Culturas disponíveis: " + strings.Join(culturas, ", ")
}

// variedadeHint suggests catalog varieties once a known crop is typed.
func (v *wizardView) variedadeHint() string {
	if len(v.catalogo) == 0 {
		return ""
	}
	cultura := v.fieldValue("cultura")
	if cultura == "" {
		return ""
	}
	variedades := semente.Variedades(v.catalogo, v.catalogTipo(), cultura)
	if len(variedades) == 0 {
		return ""
	}
	return fmt.Sprintf("Variedades de %s: %s", cultura, strings.Join(variedades, ", "))
}

func (v *wizardView) renderSummary() string {
	cur := v.app.draft.Current()
	var b strings.Builder

	section := func(title string, rows [][2]string) {
		b.WriteString(summaryHeadStyle.Render(title) + "\n")
		for _, row := range rows {
			b.WriteString(fmt.Sprintf("  %-24s %s\n", row[0], format.Valor(row[1])))
		}
		b.WriteString("\n")
	}

	section("Solicitante", [][2]string{
		{"Nome", cur.SolicitanteNome},
		{"CPF", format.CPF(cur.SolicitanteCPF)},
		{"Matrícula", cur.SolicitanteMatricula},
		{"Local de atuação", cur.LocalAtuacao},
	})
	section("Agricultor beneficiário", [][2]string{
		{"Nome", cur.BeneficiarioNome},
		{"CPF", format.CPF(cur.BeneficiarioCPF)},
		{"CAF", cur.BeneficiarioCAF},
		{"Propriedade", cur.TipoPropriedade},
		{"CEP", format.CEP(cur.BeneficiarioCEP)},
	})
	section("Insumo", [][2]string{
		{"Tipo", cur.TipoInsumo},
		{"Cultura", cur.Cultura},
		{"Variedade", cur.Variedade},
		{"Quantidade", fmt.Sprintf("%d %s", cur.Quantidade, cur.UnidadeMedida)},
		{"Área plantada", fmt.Sprintf("%s %s", areaString(cur.AreaPlantada), cur.AreaUnidade)},
		{"Plantio ideal", format.Data(cur.DataIdealPlantio)},
		{"Finalidade", cur.Finalidade},
	})
	section("Logística", [][2]string{
		{"Forma de entrega", cur.FormaEntrega},
		{"Município", cur.MunicipioDestino},
		{"Endereço", cur.EnderecoEntrega},
		{"CEP", format.CEP(cur.CEPEntrega)},
		{"Destinatário", cur.NomeDestinatario},
		{"Telefone", format.Telefone(cur.TelefoneDestinatario)},
		{"Observações", cur.Observacoes},
	})
	return b.String()
}
