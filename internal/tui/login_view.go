// internal/tui/login_view.go

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
	"github.com/ipa-pe/safra/internal/session"
)

var (
	formLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))
	formErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	formHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).MarginTop(1)
)

type loginResultMsg struct {
	payload session.LoginPayload
	err     error
}

// loginView authenticates an extension agent with CPF and password.
type loginView struct {
	app    *App
	cpf    textinput.Model
	senha  textinput.Model
	focus  int
	busy   bool
	errMsg string
}

func newLoginView(app *App) *loginView {
	cpf := textinput.New()
	cpf.Placeholder = "000.000.000-00"
	cpf.CharLimit = 14
	cpf.Width = 30
	cpf.Focus()

	senha := textinput.New()
	senha.Placeholder = "senha"
	senha.EchoMode = textinput.EchoPassword
	senha.EchoCharacter = '•'
	senha.CharLimit = 64
	senha.Width = 30

	return &loginView{app: app, cpf: cpf, senha: senha}
}

func (v *loginView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *loginView) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case loginResultMsg:
		v.busy = false
		if m.err != nil {
			v.errMsg = api.AsError(m.err).UserMessage()
			v.app.logWarn("Falha no login: %v", m.err)
			return nil
		}
		user, err := v.app.session.Login(m.payload)
		if err != nil {
			v.errMsg = "Resposta de login incompleta. Tente novamente."
			v.app.logError("Resposta de login inválida: %v", err)
			return nil
		}
		v.app.logInfo("Login de %s", user.Nome)
		v.app.statusMsg = fmt.Sprintf("Bem-vindo, %s", user.Nome)
		v.app.enterMainMenu()
		if v.app.codigoInicial != "" {
			codigo := v.app.codigoInicial
			v.app.codigoInicial = ""
			return v.app.openTracking(codigo)
		}
		return nil

	case tea.KeyMsg:
		if v.busy {
			return nil
		}
		switch m.String() {
		case "tab", "shift+tab", "up", "down":
			v.focus = (v.focus + 1) % 2
			if v.focus == 0 {
				v.senha.Blur()
				return v.cpf.Focus()
			}
			v.cpf.Blur()
			return v.senha.Focus()
		case "enter":
			return v.submit()
		case "ctrl+n":
			return v.app.openRegister()
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	v.cpf, cmd = v.cpf.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	v.senha, cmd = v.senha.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (v *loginView) submit() tea.Cmd {
	cpf := strings.TrimSpace(v.cpf.Value())
	senha := v.senha.Value()
	if cpf == "" || senha == "" {
		v.errMsg = "Informe CPF e senha"
		return nil
	}
	v.busy = true
	v.errMsg = ""
	client := v.app.client
	creds := api.Credentials{CPF: format.SomenteDigitos(cpf), Senha: senha}
	return func() tea.Msg {
		payload, err := client.Login(context.Background(), creds)
		return loginResultMsg{payload: payload, err: err}
	}
}

func (v *loginView) View() string {
	title := lipgloss.NewStyle().Bold(true).Render("Acesso do Agente de Campo")
	lines := []string{
		title,
		"",
		formLabelStyle.Render("CPF"),
		v.cpf.View(),
		"",
		formLabelStyle.Render("Senha"),
		v.senha.View(),
	}
	if v.busy {
		lines = append(lines, "", "Autenticando...")
	}
	if v.errMsg != "" {
		lines = append(lines, "", formErrStyle.Render(v.errMsg))
	}
	lines = append(lines, formHintStyle.Render("enter=entrar  tab=próximo campo  ctrl+n=criar conta  esc=sair"))
	return strings.Join(lines, "\n")
}
