// internal/tui/register_view.go
//
// New agent signup, reachable from the login screen. The form validates
// locally before posting; on success the agent is sent back to login with
// the freshly created credentials still to be typed.

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ipa-pe/safra/internal/api"
	"github.com/ipa-pe/safra/internal/format"
)

type registerResultMsg struct {
	err error
}

type registerView struct {
	app    *App
	fields []wizardField
	focus  int
	busy   bool
	errMsg string
}

func newRegisterView(app *App) *registerView {
	v := &registerView{app: app}
	v.fields = []wizardField{
		textField("nome", "Nome completo *", "João Silva", ""),
		textField("cpf", "CPF *", "000.000.000-00", ""),
		textField("telefone", "Telefone *", "(00) 00000-0000", ""),
		textField("email", "Email *", "joao@email.com", ""),
		textField("matricula", "Matrícula IPA", "000000", ""),
		textField("localAtuacao", "Local de atuação", "ex.: Escritório Local", ""),
		textField("senha", "Senha * (mín. 6 caracteres)", "", ""),
		textField("confirmarSenha", "Confirmar senha *", "", ""),
		textField("cidade", "Cidade", "Recife", ""),
		textField("uf", "Estado", "PE", ""),
	}
	for i := range v.fields {
		switch v.fields[i].key {
		case "senha", "confirmarSenha":
			v.fields[i].input.EchoMode = textinput.EchoPassword
			v.fields[i].input.EchoCharacter = '•'
		case "uf":
			v.fields[i].input.CharLimit = 2
		}
	}
	v.fields[0].input.Focus()
	return v
}

func (v *registerView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *registerView) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case registerResultMsg:
		v.busy = false
		if m.err != nil {
			v.errMsg = api.AsError(m.err).UserMessage()
			v.app.logWarn("Falha no cadastro: %v", m.err)
			return nil
		}
		v.app.logInfo("Cadastro de novo agente concluído")
		v.app.statusMsg = "Cadastro realizado com sucesso! Faça login para continuar."
		v.app.openLogin()
		return nil

	case tea.KeyMsg:
		if v.busy {
			return nil
		}
		switch m.String() {
		case "esc":
			v.app.openLogin()
			return nil
		case "tab", "down":
			return v.moveFocus(1)
		case "shift+tab", "up":
			return v.moveFocus(-1)
		case "enter":
			return v.submit()
		}
	}

	if v.focus >= 0 && v.focus < len(v.fields) {
		f := &v.fields[v.focus]
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		return cmd
	}
	return nil
}

func (v *registerView) moveFocus(delta int) tea.Cmd {
	v.fields[v.focus].input.Blur()
	v.focus = (v.focus + delta + len(v.fields)) % len(v.fields)
	return v.fields[v.focus].input.Focus()
}

func (v *registerView) value(key string) string {
	for i := range v.fields {
		if v.fields[i].key == key {
			return strings.TrimSpace(v.fields[i].input.Value())
		}
	}
	return ""
}

// submit validates the form locally and posts the registration. The same
// rules the web form applied: required subset, eleven-digit CPF, minimum
// password length and matching confirmation.
func (v *registerView) submit() tea.Cmd {
	nome := v.value("nome")
	cpf := format.SomenteDigitos(v.value("cpf"))
	telefone := v.value("telefone")
	email := v.value("email")
	senha := v.value("senha")

	switch {
	case nome == "" || cpf == "" || senha == "" || email == "" || telefone == "":
		v.errMsg = "Preencha todos os campos obrigatórios"
		return nil
	case len(cpf) != 11:
		v.errMsg = "CPF inválido"
		return nil
	case len(senha) < 6:
		v.errMsg = "A senha deve ter no mínimo 6 caracteres"
		return nil
	case senha != v.value("confirmarSenha"):
		v.errMsg = "As senhas não coincidem"
		return nil
	}

	v.busy = true
	v.errMsg = ""
	reg := api.Registration{
		Nome:         nome,
		CPF:          cpf,
		Senha:        senha,
		Telefone:     telefone,
		Email:        email,
		MatriculaIPA: v.value("matricula"),
		LocalAtuacao: v.value("localAtuacao"),
		Cidade:       v.value("cidade"),
		UF:           strings.ToUpper(v.value("uf")),
	}
	client := v.app.client
	return func() tea.Msg {
		return registerResultMsg{err: client.Register(context.Background(), reg)}
	}
}

func (v *registerView) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Criar Conta") + "\n")
	b.WriteString(readonlyStyle.Render("Cadastre-se no sistema S.A.F.R.A.") + "\n\n")
	for i := range v.fields {
		f := &v.fields[i]
		indicator := "  "
		if i == v.focus {
			indicator = "> "
		}
		b.WriteString(indicator + formLabelStyle.Render(f.label) + "\n")
		b.WriteString("  " + f.input.View() + "\n")
	}
	if v.busy {
		b.WriteString("\nCadastrando...\n")
	}
	if v.errMsg != "" {
		b.WriteString("\n" + formErrStyle.Render(v.errMsg) + "\n")
	}
	b.WriteString(formHintStyle.Render("enter=cadastrar  tab=próximo campo  esc=voltar ao login"))
	return b.String()
}
