// internal/tui/app.go
//
// This is the main TUI for SAFRA.
// It uses bubbletea, which follows The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The flow is: User Input -> Message -> Update -> New Model -> View -> Screen

package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/ipa-pe/safra/internal/api"
	"github.com/ipa-pe/safra/internal/config"
	"github.com/ipa-pe/safra/internal/logbook"
	"github.com/ipa-pe/safra/internal/session"
	"github.com/ipa-pe/safra/internal/solicitacao"
)

// appState represents which "screen" we're on
type appState int

const (
	stateLogin     appState = iota // CPF/password form
	stateRegister                  // New agent signup
	stateMainMenu                  // Menu plus the session panel
	stateWizard                    // Multi-step request form, summary included
	stateSuccess                   // Post-submission screen with the tracking code
	stateRequests                  // The agent's own request history
	stateTracking                  // Tracking search and timeline
	stateInventory                 // Seed catalog management (admin)
)

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithClient overrides the backend client used by all screens.
func WithClient(client *api.Client) AppOption {
	return func(a *App) {
		if client != nil {
			a.client = client
		}
	}
}

// WithSession overrides the session store.
func WithSession(sess *session.Store) AppOption {
	return func(a *App) {
		if sess != nil {
			a.session = sess
		}
	}
}

// WithDraft overrides the wizard draft store.
func WithDraft(draft *solicitacao.Draft) AppOption {
	return func(a *App) {
		if draft != nil {
			a.draft = draft
		}
	}
}

// WithCodigoInicial makes the app open directly on the tracking screen and
// search for the given code once authenticated.
func WithCodigoInicial(codigo string) AppOption {
	return func(a *App) {
		a.codigoInicial = strings.TrimSpace(codigo)
	}
}

// WithDiagnostics sets the file-backed logger for wire-level detail.
func WithDiagnostics(logger *zap.Logger) AppOption {
	return func(a *App) {
		if logger != nil {
			a.diag = logger
		}
	}
}

// sessionExpiredMsg is emitted when the backend rejects our token.
type sessionExpiredMsg struct{}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	state   appState
	config  *config.Config
	session *session.Store
	client  *api.Client
	draft   *solicitacao.Draft
	logbook *logbook.Logbook
	diag    *zap.Logger

	loginView     *loginView
	registerView  *registerView
	wizardView    *wizardView
	requestsView  *requestsView
	trackingView  *trackingView
	inventoryView *inventoryView

	codigoInicial string
	ultimoCodigo  string // tracking code of the last successful submission

	// UI components
	mainMenu  list.Model
	statusMsg string

	// Window size (we get this from bubbletea)
	width  int
	height int
}

// menuItem implements list.Item interface for our menu items
type menuItem struct {
	title string
	desc  string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

// NewApp creates a new App instance. The session store is restored from disk
// so a previous login survives program restarts.
func NewApp(cfg *config.Config, opts ...AppOption) (*App, error) {
	if err := cfg.InitDataDir(); err != nil {
		return nil, err
	}
	lb, _ := logbook.New(cfg.LogbookPath())

	mainMenu := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "⬡ SAFRA"
	mainMenu.SetShowStatusBar(false)
	mainMenu.SetFilteringEnabled(false)

	app := &App{
		state:    stateLogin,
		config:   cfg,
		logbook:  lb,
		mainMenu: mainMenu,
		diag:     zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	if app.session == nil {
		app.session = session.NewStore(cfg.TokenPath(), cfg.UserPath())
		app.session.Restore()
	}
	if app.client == nil {
		app.client = api.New(cfg.APIBaseURL, cfg.RequestTimeout,
			api.WithToken(app.session.Token),
			api.WithOnUnauthorized(func() { app.logWarn("Backend recusou o token da sessão") }),
			api.WithLogger(app.diag))
	}
	if app.draft == nil {
		app.draft = solicitacao.NewDraft(app.agentSeed, cfg.DraftPath())
		app.draft.Restore()
	}

	if app.session.IsAuthenticated() {
		app.logInfo("Sessão restaurada para %s", app.session.User().Nome)
		app.enterMainMenu()
	} else {
		app.loginView = newLoginView(app)
	}
	return app, nil
}

// agentSeed produces the wizard's starting point: requester fields come from
// the logged-in session and are not editable in the form.
func (a *App) agentSeed() solicitacao.Solicitacao {
	s := solicitacao.Solicitacao{
		Status:       solicitacao.StatusRascunho,
		TipoInsumo:   solicitacao.TipoSementes,
		FormaEntrega: solicitacao.EntregaRetirada,
	}
	if user := a.session.User(); user != nil {
		s.SolicitanteNome = user.Nome
		s.SolicitanteCPF = user.CPF
		s.SolicitanteTelefone = user.Telefone
		s.SolicitanteMatricula = user.MatriculaIPA
		s.LocalAtuacao = user.LocalAtuacao
	}
	return s
}

// buildMainMenu creates the main menu items for the logged-in user.
func buildMainMenu(user *session.User) []list.Item {
	items := []list.Item{
		menuItem{title: "Nova Solicitação", desc: "Solicitar sementes ou mudas para um produtor"},
		menuItem{title: "Minhas Solicitações", desc: "Acompanhar as solicitações já enviadas"},
		menuItem{title: "Rastrear Pedido", desc: "Acompanhar uma solicitação pelo código"},
	}
	if user != nil && user.IsAdmin() {
		items = append(items, menuItem{title: "Catálogo de Sementes", desc: "Gerenciar o catálogo de insumos"})
	}
	items = append(items,
		menuItem{title: "Sair da Conta", desc: "Encerrar a sessão atual"},
		menuItem{title: "Sair", desc: "Fechar o SAFRA"},
	)
	return items
}

func (a *App) enterMainMenu() {
	a.state = stateMainMenu
	a.wizardView = nil
	a.requestsView = nil
	a.trackingView = nil
	a.inventoryView = nil
	a.mainMenu.SetItems(buildMainMenu(a.session.User()))
	if a.width > 0 && a.height > 0 {
		a.mainMenu.SetSize(max(0, a.width-6), max(0, a.height-12))
	}
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
}

func (a *App) logWarn(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Warn(format, args...)
}

func (a *App) logError(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Error(format, args...)
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	if a.session.IsAuthenticated() {
		if a.codigoInicial != "" {
			return tea.Batch(a.validateSession(), a.openTracking(a.codigoInicial))
		}
		return a.validateSession()
	}
	if a.loginView != nil {
		return a.loginView.Init()
	}
	return nil
}

// validateSession checks a restored token against the backend, so a stale
// session drops to login up front instead of failing on its first request.
// Connectivity problems keep the session; only an actual rejection expires it.
func (a *App) validateSession() tea.Cmd {
	client := a.client
	return func() tea.Msg {
		valid, err := client.ValidateToken(context.Background())
		if err != nil {
			if api.IsKind(err, api.KindUnauthorized) {
				return sessionExpiredMsg{}
			}
			return nil
		}
		if !valid {
			return sessionExpiredMsg{}
		}
		return nil
	}
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.mainMenu.SetSize(max(0, msg.Width-6), max(0, msg.Height-12))
		return a, nil

	case sessionExpiredMsg:
		a.logWarn("Sessão expirada, login necessário")
		a.session.Logout()
		a.statusMsg = "Sessão expirada. Entre novamente."
		a.state = stateLogin
		a.loginView = newLoginView(a)
		return a, a.loginView.Init()

	case loginResultMsg:
		if a.loginView != nil {
			return a, a.loginView.Update(msg)
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if a.state == stateMainMenu || a.state == stateSuccess {
				return a, tea.Quit
			}
		case "esc":
			switch a.state {
			case stateLogin:
				return a, tea.Quit
			case stateMainMenu:
				return a, nil
			case stateSuccess:
				a.enterMainMenu()
				return a, nil
			}
			// Sub-views own esc while a form is active; they call back
			// into returnToMainMenu when they are done with it.
		case "enter":
			if a.state == stateMainMenu {
				return a.handleMainMenuSelection()
			}
			if a.state == stateSuccess {
				a.enterMainMenu()
				return a, nil
			}
		}
	}

	var cmds []tea.Cmd
	switch a.state {
	case stateLogin:
		if a.loginView != nil {
			if cmd := a.loginView.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	case stateRegister:
		if a.registerView != nil {
			if cmd := a.registerView.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	case stateMainMenu:
		var menuCmd tea.Cmd
		a.mainMenu, menuCmd = a.mainMenu.Update(msg)
		if menuCmd != nil {
			cmds = append(cmds, menuCmd)
		}
	case stateWizard:
		if a.wizardView != nil {
			if cmd := a.wizardView.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	case stateRequests:
		if a.requestsView != nil {
			if cmd := a.requestsView.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	case stateTracking:
		if a.trackingView != nil {
			if cmd := a.trackingView.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	case stateInventory:
		if a.inventoryView != nil {
			if cmd := a.inventoryView.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}

	return a, tea.Batch(cmds...)
}

// handleMainMenuSelection processes menu item selection
func (a *App) handleMainMenuSelection() (tea.Model, tea.Cmd) {
	item, ok := a.mainMenu.SelectedItem().(menuItem)
	if !ok {
		return a, nil
	}

	switch item.title {
	case "Nova Solicitação":
		a.logInfo("Menu · Nova Solicitação")
		return a, a.openWizard()

	case "Minhas Solicitações":
		a.logInfo("Menu · Minhas Solicitações")
		a.state = stateRequests
		a.requestsView = newRequestsView(a)
		return a, a.requestsView.Init()

	case "Rastrear Pedido":
		a.logInfo("Menu · Rastrear Pedido")
		return a, a.openTracking("")

	case "Catálogo de Sementes":
		a.logInfo("Menu · Catálogo de Sementes")
		a.state = stateInventory
		a.inventoryView = newInventoryView(a)
		return a, a.inventoryView.Init()

	case "Sair da Conta":
		a.logInfo("Logout de %s", a.session.User().Nome)
		a.session.Logout()
		a.statusMsg = "Sessão encerrada"
		a.state = stateLogin
		a.loginView = newLoginView(a)
		return a, a.loginView.Init()

	case "Sair":
		a.logInfo("Menu · Sair")
		return a, tea.Quit
	}

	return a, nil
}

func (a *App) openTracking(codigo string) tea.Cmd {
	a.state = stateTracking
	a.trackingView = newTrackingView(a)
	return a.trackingView.Init(codigo)
}

func (a *App) openWizard() tea.Cmd {
	a.state = stateWizard
	a.wizardView = newWizardView(a)
	return a.wizardView.Init()
}

func (a *App) openRegister() tea.Cmd {
	a.state = stateRegister
	a.loginView = nil
	a.registerView = newRegisterView(a)
	return a.registerView.Init()
}

func (a *App) openLogin() tea.Cmd {
	a.state = stateLogin
	a.registerView = nil
	a.loginView = newLoginView(a)
	return a.loginView.Init()
}

// returnToMainMenu transitions back to the main menu
func (a *App) returnToMainMenu() {
	a.logInfo("Retorno ao menu principal")
	a.enterMainMenu()
}

// showSuccess displays the post-submission screen with the tracking code.
func (a *App) showSuccess(codigo string) {
	a.ultimoCodigo = codigo
	a.state = stateSuccess
	a.wizardView = nil
}

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}
	rightWidth := max(32, width/3)
	leftWidth := width - rightWidth - 4
	if leftWidth < 40 {
		leftWidth = width - 4
	}
	if leftWidth < 20 {
		leftWidth = width
		rightWidth = 0
	}
	var content string
	switch a.state {
	case stateLogin:
		if a.loginView != nil {
			content = a.loginView.View()
		}
	case stateRegister:
		if a.registerView != nil {
			content = a.registerView.View()
		}
	case stateMainMenu:
		content = a.mainMenu.View()
	case stateWizard:
		if a.wizardView != nil {
			content = a.wizardView.View()
		}
	case stateSuccess:
		content = a.renderSuccess()
	case stateRequests:
		if a.requestsView != nil {
			content = a.requestsView.View()
		}
	case stateTracking:
		if a.trackingView != nil {
			content = a.trackingView.View()
		}
	case stateInventory:
		if a.inventoryView != nil {
			content = a.inventoryView.View()
		}
	}
	return a.renderFrame(content, leftWidth, rightWidth)
}

func (a *App) renderSuccess() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#4CAF50")).
		Render("Solicitação enviada com sucesso!")
	code := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(a.ultimoCodigo)
	lines := []string{
		title,
		"",
		fmt.Sprintf("Código de rastreamento: %s", code),
		"Guarde o código para acompanhar o pedido.",
		"",
		"enter=voltar ao menu  q=sair",
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines, total := a.logbook.Tail(8)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("ATIVIDADE · %s (%d)", fileName, total))
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(fmt.Sprintf("%s\n%s", head, body))
	return box
}

func (a *App) renderFrame(mainContent string, leftWidth, rightWidth int) string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#4CAF50")).
		MarginBottom(1).
		Render("⬡ SAFRA · Solicitação de Insumos Agrícolas")
	if strings.TrimSpace(mainContent) == "" {
		mainContent = "Carregando..."
	}
	leftBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Width(max(20, leftWidth)).
		Render(lipgloss.NewStyle().Width(max(20, leftWidth-4)).Render(mainContent))
	var body string
	if rightWidth > 0 {
		right := a.renderSessionPanel(rightWidth - 4)
		rightBox := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1).
			Width(max(20, rightWidth)).
			Render(right)
		body = lipgloss.JoinHorizontal(lipgloss.Top, leftBox, rightBox)
	} else {
		body = leftBox
	}
	sections := []string{header, body}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginTop(1).
		Render(a.statusMsg)
	sections = append(sections, footer)
	return strings.Join(sections, "\n")
}

func (a *App) renderSessionPanel(width int) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render("Sessão")
	var lines []string
	if user := a.session.User(); user != nil {
		lines = append(lines, fmt.Sprintf("Agente: %s", user.Nome))
		if user.MatriculaIPA != "" {
			lines = append(lines, fmt.Sprintf("Matrícula: %s", user.MatriculaIPA))
		}
		if user.LocalAtuacao != "" {
			lines = append(lines, fmt.Sprintf("Atuação: %s", user.LocalAtuacao))
		}
		if user.IsAdmin() {
			lines = append(lines, "Perfil: administrador")
		}
	} else {
		lines = append(lines, "Não autenticado")
	}
	lines = append(lines, fmt.Sprintf("Backend: %s", a.config.APIBaseURL))
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#CCCCCC")).
		Width(max(20, width)).
		Render(strings.Join(lines, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, title, body)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
