package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ipa-pe/safra/internal/api"
	"github.com/ipa-pe/safra/internal/config"
	"github.com/ipa-pe/safra/internal/session"
	"github.com/ipa-pe/safra/internal/solicitacao"
)

func testConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	cfg := &config.Config{
		APIBaseURL:     baseURL,
		RequestTimeout: 2 * time.Second,
		DataDir:        t.TempDir(),
	}
	if err := cfg.InitDataDir(); err != nil {
		t.Fatalf("init data dir: %v", err)
	}
	return cfg
}

func loggedInStore(t *testing.T, cfg *config.Config, tipo string) *session.Store {
	t.Helper()
	sess := session.NewStore(cfg.TokenPath(), cfg.UserPath())
	_, err := sess.Login(session.LoginPayload{
		Token: "tok-teste",
		Usuario: &session.UserPayload{
			ID:           "7",
			Nome:         "Maria Souza",
			CPF:          "11122233344",
			Tipo:         tipo,
			MatriculaIPA: "IPA-0099",
			LocalAtuacao: "Escritório Regional de Caruaru",
		},
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	return sess
}

func newTestApp(t *testing.T, handler http.Handler, tipo string) *App {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := testConfig(t, srv.URL)
	sess := loggedInStore(t, cfg, tipo)
	client := api.New(srv.URL, cfg.RequestTimeout, api.WithToken(sess.Token))
	app, err := NewApp(cfg, WithClient(client), WithSession(sess))
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return app
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// deliver runs a command and feeds every resulting message back into the
// app, the way the bubbletea runtime would.
func deliver(t *testing.T, app *App, cmd tea.Cmd) {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		var model tea.Model
		model, cmd = app.Update(msg)
		if model != app {
			t.Fatalf("app model identity must be stable")
		}
	}
}

func TestStartsOnLoginWithoutSession(t *testing.T) {
	cfg := testConfig(t, "http://localhost:0")
	app, err := NewApp(cfg)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	if app.state != stateLogin {
		t.Fatalf("state = %v, want login", app.state)
	}
	if !strings.Contains(app.View(), "Acesso do Agente") {
		t.Fatalf("login view missing from:\n%s", app.View())
	}
}

func TestStartsOnMenuWithRestoredSession(t *testing.T) {
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), "AGRICULTOR")
	if app.state != stateMainMenu {
		t.Fatalf("state = %v, want main menu", app.state)
	}
	view := app.View()
	if !strings.Contains(view, "Maria Souza") {
		t.Fatalf("session panel should show the agent, got:\n%s", view)
	}
	if strings.Contains(view, "Catálogo de Sementes") {
		t.Fatal("non-admin must not see the catalog entry")
	}
}

func TestAdminSeesCatalogEntry(t *testing.T) {
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), "ADMIN")
	if !strings.Contains(app.View(), "Catálogo de Sementes") {
		t.Fatal("admin menu must include the catalog entry")
	}
}

func TestSessionExpiredDropsToLogin(t *testing.T) {
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), "AGRICULTOR")
	model, _ := app.Update(sessionExpiredMsg{})
	app = model.(*App)
	if app.state != stateLogin {
		t.Fatalf("state = %v, want login after expiry", app.state)
	}
	if app.session.IsAuthenticated() {
		t.Fatal("expired session must be cleared")
	}
}

func TestStaleRestoredSessionDropsToLogin(t *testing.T) {
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/validate" {
			w.Write([]byte(`{"valid":false}`))
			return
		}
		w.Write([]byte(`[]`))
	}), "AGRICULTOR")
	if app.state != stateMainMenu {
		t.Fatalf("state = %v, want main menu before validation", app.state)
	}

	cmd := app.Init()
	if cmd == nil {
		t.Fatal("a restored session must be revalidated on start")
	}
	msg := cmd()
	if _, ok := msg.(sessionExpiredMsg); !ok {
		t.Fatalf("msg = %T, want sessionExpiredMsg", msg)
	}
	app.Update(msg)
	if app.state != stateLogin {
		t.Fatalf("state = %v, want login after rejection", app.state)
	}
}

func TestSessionSurvivesValidateOutage(t *testing.T) {
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}), "AGRICULTOR")

	cmd := app.Init()
	if cmd == nil {
		t.Fatal("a restored session must be revalidated on start")
	}
	if msg := cmd(); msg != nil {
		t.Fatalf("a backend outage must not expire the session, got %T", msg)
	}
	if app.state != stateMainMenu || !app.session.IsAuthenticated() {
		t.Fatal("session must survive a validation outage")
	}
}

func TestAgentSeedDefaults(t *testing.T) {
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), "AGRICULTOR")
	seed := app.agentSeed()
	if seed.Status != solicitacao.StatusRascunho {
		t.Fatalf("status = %q, want rascunho", seed.Status)
	}
	if seed.TipoInsumo != solicitacao.TipoSementes {
		t.Fatalf("tipoInsumo = %q", seed.TipoInsumo)
	}
	if seed.FormaEntrega != solicitacao.EntregaRetirada {
		t.Fatalf("formaEntrega = %q, want retirada", seed.FormaEntrega)
	}
	if seed.SolicitanteNome != "Maria Souza" || seed.SolicitanteCPF != "11122233344" {
		t.Fatalf("requester must come from the session, got %+v", seed)
	}
}

// setWizardField fills a form entry by key, whether text or choice.
func setWizardField(t *testing.T, v *wizardView, key, value string) {
	t.Helper()
	for i := range v.fields {
		f := &v.fields[i]
		if f.key != key {
			continue
		}
		if len(f.choices) > 0 {
			for c, choice := range f.choices {
				if strings.EqualFold(choice, value) {
					f.choice = c
					return
				}
			}
			t.Fatalf("choice %q not available for %s", value, key)
		}
		f.input.SetValue(value)
		return
	}
	t.Fatalf("field %s not mounted on step %d", key, v.step)
}

func TestWizardFullFlowSubmitsExactlyOnce(t *testing.T) {
	var posts int
	var received solicitacao.Solicitacao
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/solicitacoes" {
			posts++
			if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
				t.Errorf("decode payload: %v", err)
			}
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"message":"ok","codigoRastreio":"SAFRA-2025-TESTCODE"}`))
			return
		}
		w.Write([]byte(`[]`))
	})
	app := newTestApp(t, handler, "AGRICULTOR")

	app.state = stateWizard
	app.wizardView = newWizardView(app)
	v := app.wizardView

	setWizardField(t, v, "beneficiarioNome", "José Almeida")
	setWizardField(t, v, "beneficiarioCpf", "99988877766")
	setWizardField(t, v, "tipoPropriedade", "ASSENTAMENTO")
	setWizardField(t, v, "beneficiarioCep", "55000-000")
	if cmd := v.advance(); cmd != nil {
		t.Fatalf("advance should not schedule work, step=%d err=%q", v.step, v.errMsg)
	}
	if v.step != stepInsumo {
		t.Fatalf("step = %d, want insumo (err=%q)", v.step, v.errMsg)
	}

	setWizardField(t, v, "cultura", "Milho")
	setWizardField(t, v, "variedade", "BRS Caatingueiro")
	setWizardField(t, v, "quantidade", "40")
	setWizardField(t, v, "areaPlantada", "2,5")
	v.advance()
	if v.step != stepLogistica {
		t.Fatalf("step = %d, want logística (err=%q)", v.step, v.errMsg)
	}

	setWizardField(t, v, "municipioDestino", "Caruaru")
	setWizardField(t, v, "enderecoEntrega", "Sítio Boa Vista, zona rural")
	setWizardField(t, v, "cepEntrega", "55000-000")
	setWizardField(t, v, "nomeDestinatario", "José Almeida")
	setWizardField(t, v, "telefoneDestinatario", "81999990000")
	v.advance()
	if v.step != stepResumo {
		t.Fatalf("step = %d, want resumo (err=%q)", v.step, v.errMsg)
	}

	summary := v.View()
	for _, want := range []string{"José Almeida", "Milho", "Caruaru", "Maria Souza"} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary missing %q:\n%s", want, summary)
		}
	}

	cmd := v.submit()
	if cmd == nil {
		t.Fatal("submit must schedule the POST")
	}
	if v.submit() != nil {
		t.Fatal("second submit while in flight must be a no-op")
	}
	deliver(t, app, cmd)

	if posts != 1 {
		t.Fatalf("posts = %d, want exactly 1", posts)
	}
	if received.BeneficiarioNome != "José Almeida" || received.Cultura != "Milho" {
		t.Fatalf("merged payload wrong: %+v", received)
	}
	if received.Quantidade != 40 || received.AreaPlantada != 2.5 {
		t.Fatalf("numeric fields wrong: %+v", received)
	}
	if received.SolicitanteNome != "Maria Souza" {
		t.Fatalf("requester must come from the session, got %q", received.SolicitanteNome)
	}
	if received.Status != solicitacao.StatusEnviada {
		t.Fatalf("status = %q, want ENVIADA", received.Status)
	}

	if app.state != stateSuccess {
		t.Fatalf("state = %v, want success", app.state)
	}
	if app.ultimoCodigo != "SAFRA-2025-TESTCODE" {
		t.Fatalf("tracking code = %q", app.ultimoCodigo)
	}
	if got := app.draft.Current(); got.BeneficiarioNome != "" || got.Status != solicitacao.StatusRascunho {
		t.Fatalf("draft must reset to the seed, got %+v", got)
	}
	if got := app.draft.Current(); got.SolicitanteNome != "Maria Souza" {
		t.Fatalf("reset draft must keep the session seed, got %+v", got)
	}
}

func TestWizardBlocksOnMissingRequiredFields(t *testing.T) {
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}), "AGRICULTOR")
	app.state = stateWizard
	app.wizardView = newWizardView(app)
	v := app.wizardView

	v.advance()
	if v.step != stepAgricultor {
		t.Fatalf("step advanced despite empty required fields")
	}
	if v.errMsg == "" {
		t.Fatal("expected a validation message")
	}
}

func TestWizardRejectsBadNumbers(t *testing.T) {
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}), "AGRICULTOR")
	app.state = stateWizard
	app.wizardView = newWizardView(app)
	v := app.wizardView

	setWizardField(t, v, "beneficiarioNome", "José")
	setWizardField(t, v, "beneficiarioCpf", "99988877766")
	setWizardField(t, v, "beneficiarioCep", "55000-000")
	v.advance()

	setWizardField(t, v, "cultura", "Milho")
	setWizardField(t, v, "quantidade", "abc")
	setWizardField(t, v, "areaPlantada", "2,5")
	v.advance()
	if v.step != stepInsumo {
		t.Fatal("non-numeric quantity must not advance")
	}
	if !strings.Contains(v.errMsg, "quantidade inválida") {
		t.Fatalf("errMsg = %q", v.errMsg)
	}
}

func TestTrackingRejectsEmptyAndMalformedCodes(t *testing.T) {
	var calls int
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}), "AGRICULTOR")
	v := newTrackingView(app)

	if cmd := v.search(); cmd != nil {
		t.Fatal("empty code must not reach the backend")
	}
	if v.errMsg != "Digite um código de rastreamento" {
		t.Fatalf("errMsg = %q", v.errMsg)
	}

	v.input.SetValue("PEDIDO-123")
	if cmd := v.search(); cmd != nil {
		t.Fatal("malformed code must not reach the backend")
	}
	if !strings.Contains(v.errMsg, "Código inválido") {
		t.Fatalf("errMsg = %q", v.errMsg)
	}
	if calls != 0 {
		t.Fatalf("backend was called %d times", calls)
	}
}

func TestTrackingRendersTimeline(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"codigoRastreio": "SAFRA-2025-AB12CD34",
			"status": "EM_ANALISE",
			"cultura": "Feijão",
			"etapas": [
				{"etapa":"Solicitação Recebida","descricao":"Pedido registrado no sistema","concluida":true},
				{"etapa":"Análise e Aprovação","descricao":"Verificação de estoque e documentação","concluida":false},
				{"etapa":"Preparação do Insumo","descricao":"","concluida":false},
				{"etapa":"Em Rota de Entrega","descricao":"","concluida":false},
				{"etapa":"Entregue","descricao":"","concluida":false}
			]
		}`))
	})
	app := newTestApp(t, handler, "AGRICULTOR")
	app.state = stateTracking
	app.trackingView = newTrackingView(app)
	v := app.trackingView

	v.input.SetValue("safra-2025-ab12cd34") // lowercase input is normalized
	deliver(t, app, v.search())

	if v.pedido == nil {
		t.Fatalf("expected a record, err=%q", v.errMsg)
	}
	view := v.View()
	for _, want := range []string{"SAFRA-2025-AB12CD34", "Em Análise", "Solicitação Recebida", "Entregue"} {
		if !strings.Contains(view, want) {
			t.Fatalf("tracking view missing %q:\n%s", want, view)
		}
	}
}

func TestMinhasSolicitacoesListsAndOpensTracking(t *testing.T) {
	var solicitanteCPF string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/solicitacoes/solicitante/"):
			solicitanteCPF = strings.TrimPrefix(r.URL.Path, "/solicitacoes/solicitante/")
			w.Write([]byte(`[
				{"codigoRastreio":"SAFRA-2025-AAAA1111","status":"EM_ANALISE","dataCriacao":"2025-03-10T14:30:00",
				 "tipoInsumo":"SEMENTES","cultura":"Milho","quantidade":40,"unidadeMedida":"kg",
				 "beneficiarioNome":"José Almeida","municipioDestino":"Caruaru"},
				{"codigoRastreio":"SAFRA-2025-BBBB2222","status":"ENTREGUE","dataCriacao":"2025-02-01T09:00:00",
				 "tipoInsumo":"MUDAS","cultura":"Feijão","quantidade":10,"unidadeMedida":"sacas",
				 "beneficiarioNome":"Ana Lima","municipioDestino":"Arcoverde"}
			]`))
		case strings.HasPrefix(r.URL.Path, "/solicitacoes/rastrear/"):
			w.Write([]byte(`{"codigoRastreio":"SAFRA-2025-BBBB2222","status":"ENTREGUE","cultura":"Feijão"}`))
		default:
			w.Write([]byte(`[]`))
		}
	})
	app := newTestApp(t, handler, "AGRICULTOR")
	app.state = stateRequests
	app.requestsView = newRequestsView(app)
	v := app.requestsView
	deliver(t, app, v.Init())

	if solicitanteCPF != "11122233344" {
		t.Fatalf("list must be scoped to the session CPF, got %q", solicitanteCPF)
	}
	if len(v.shown) != 2 {
		t.Fatalf("shown = %d, want 2", len(v.shown))
	}
	view := v.View()
	for _, want := range []string{"Total: 2", "Em análise: 1", "Entregues: 1",
		"SAFRA-2025-AAAA1111", "10 de março de 2025", "José Almeida"} {
		if !strings.Contains(view, want) {
			t.Fatalf("history view missing %q:\n%s", want, view)
		}
	}

	v.filter.SetValue("feijão")
	v.applyFilter()
	if len(v.shown) != 1 || v.shown[0].CodigoRastreio != "SAFRA-2025-BBBB2222" {
		t.Fatalf("filter result wrong: %+v", v.shown)
	}

	deliver(t, app, v.updateBrowse(tea.KeyMsg{Type: tea.KeyEnter}))
	if app.state != stateTracking {
		t.Fatalf("state = %v, want tracking", app.state)
	}
	if app.trackingView == nil || app.trackingView.pedido == nil {
		t.Fatal("selecting an entry must load its tracking record")
	}
	if got := app.trackingView.pedido.Codigo(); got != "SAFRA-2025-BBBB2222" {
		t.Fatalf("tracking code = %q", got)
	}
}

func setRegisterField(t *testing.T, v *registerView, key, value string) {
	t.Helper()
	for i := range v.fields {
		if v.fields[i].key == key {
			v.fields[i].input.SetValue(value)
			return
		}
	}
	t.Fatalf("field %s not mounted", key)
}

func TestRegisterValidatesBeforePosting(t *testing.T) {
	var posts int
	var received api.Registration
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/auth/register" {
			posts++
			json.NewDecoder(r.Body).Decode(&received)
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"message":"ok"}`))
		}
	}))
	t.Cleanup(srv.Close)
	cfg := testConfig(t, srv.URL)
	client := api.New(srv.URL, cfg.RequestTimeout)
	app, err := NewApp(cfg, WithClient(client))
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	if app.state != stateLogin {
		t.Fatalf("state = %v, want login", app.state)
	}

	app.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	if app.state != stateRegister || app.registerView == nil {
		t.Fatalf("ctrl+n must open the signup form, state = %v", app.state)
	}
	v := app.registerView

	setRegisterField(t, v, "nome", "Carlos Pereira")
	setRegisterField(t, v, "cpf", "555.666.777-88")
	setRegisterField(t, v, "telefone", "81988887777")
	setRegisterField(t, v, "email", "carlos@ipa.br")
	setRegisterField(t, v, "senha", "segredo1")
	setRegisterField(t, v, "confirmarSenha", "diferente")
	if cmd := v.submit(); cmd != nil {
		t.Fatal("mismatched passwords must not reach the backend")
	}
	if v.errMsg != "As senhas não coincidem" {
		t.Fatalf("errMsg = %q", v.errMsg)
	}

	setRegisterField(t, v, "senha", "12345")
	setRegisterField(t, v, "confirmarSenha", "12345")
	if cmd := v.submit(); cmd != nil {
		t.Fatal("short password must not reach the backend")
	}
	if v.errMsg != "A senha deve ter no mínimo 6 caracteres" {
		t.Fatalf("errMsg = %q", v.errMsg)
	}
	if posts != 0 {
		t.Fatalf("backend was called %d times before the form was valid", posts)
	}

	setRegisterField(t, v, "senha", "segredo1")
	setRegisterField(t, v, "confirmarSenha", "segredo1")
	cmd := v.submit()
	if cmd == nil {
		t.Fatalf("valid form must post, err=%q", v.errMsg)
	}
	deliver(t, app, cmd)

	if posts != 1 {
		t.Fatalf("posts = %d, want 1", posts)
	}
	if received.CPF != "55566677788" {
		t.Fatalf("CPF must be sent as digits only, got %q", received.CPF)
	}
	if received.Nome != "Carlos Pereira" || received.Email != "carlos@ipa.br" {
		t.Fatalf("payload wrong: %+v", received)
	}
	if app.state != stateLogin {
		t.Fatalf("state = %v, want login after signup", app.state)
	}
	if !strings.Contains(app.statusMsg, "Cadastro realizado com sucesso") {
		t.Fatalf("statusMsg = %q", app.statusMsg)
	}
}

func TestWizardSuggestsCulturasAndVariedades(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/sementes/ativas" {
			w.Write([]byte(`[
				{"id":1,"nome":"Milho BRS","tipo":"SEMENTE","cultura":"Milho","variedade":"BRS Caatingueiro","ativo":true},
				{"id":2,"nome":"Milho Sertanejo","tipo":"SEMENTE","cultura":"Milho","variedade":"Sertanejo","ativo":true},
				{"id":3,"nome":"Muda de Caju","tipo":"MUDA","cultura":"Caju","variedade":"CCP 76","ativo":true}
			]`))
			return
		}
		w.Write([]byte(`[]`))
	})
	app := newTestApp(t, handler, "AGRICULTOR")
	app.state = stateWizard
	app.wizardView = newWizardView(app)
	v := app.wizardView
	deliver(t, app, v.Init())

	setWizardField(t, v, "beneficiarioNome", "José Almeida")
	setWizardField(t, v, "beneficiarioCpf", "99988877766")
	setWizardField(t, v, "beneficiarioCep", "55000-000")
	v.advance()
	if v.step != stepInsumo {
		t.Fatalf("step = %d, want insumo (err=%q)", v.step, v.errMsg)
	}

	// SEMENTES is the seeded type, so only seed crops may appear.
	view := v.View()
	if !strings.Contains(view, "Culturas disponíveis: Milho") {
		t.Fatalf("culturas hint missing:\n%s", view)
	}
	if strings.Contains(view, "Caju") {
		t.Fatalf("crop of another supply type leaked into the hint:\n%s", view)
	}

	setWizardField(t, v, "cultura", "milho")
	view = v.View()
	if !strings.Contains(view, "Variedades de milho: BRS Caatingueiro, Sertanejo") {
		t.Fatalf("variety hint missing:\n%s", view)
	}
}

func TestInventoryFilterAndToggle(t *testing.T) {
	var patched string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			patched = r.URL.Path
			return
		}
		w.Write([]byte(`[
			{"id":1,"nome":"Milho BRS","tipo":"SEMENTE","cultura":"Milho","estoqueDisponivel":500,"unidadeMedida":"kg","ativo":true},
			{"id":2,"nome":"Muda de Caju","tipo":"MUDA","cultura":"Caju","estoqueDisponivel":80,"unidadeMedida":"unidades","ativo":false}
		]`))
	})
	app := newTestApp(t, handler, "ADMIN")
	app.state = stateInventory
	app.inventoryView = newInventoryView(app)
	v := app.inventoryView
	deliver(t, app, v.Init())

	if len(v.shown) != 2 {
		t.Fatalf("shown = %d, want 2", len(v.shown))
	}

	v.filter.SetValue("caju")
	v.applyFilter()
	if len(v.shown) != 1 || v.shown[0].Nome != "Muda de Caju" {
		t.Fatalf("filter result wrong: %+v", v.shown)
	}

	deliver(t, app, v.updateBrowse(keyMsg("t")))
	if patched != "/sementes/2/status" {
		t.Fatalf("toggle hit %q", patched)
	}
}

func TestInventoryCreateReloads(t *testing.T) {
	var created struct {
		Nome string `json:"nome"`
	}
	var lists int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			json.NewDecoder(r.Body).Decode(&created)
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":9,"nome":"Palma Forrageira"}`))
		default:
			lists++
			w.Write([]byte(`[]`))
		}
	})
	app := newTestApp(t, handler, "ADMIN")
	app.state = stateInventory
	app.inventoryView = newInventoryView(app)
	v := app.inventoryView
	deliver(t, app, v.Init())
	listsBefore := lists

	v.openForm(nil)
	for i := range v.form {
		switch v.form[i].key {
		case "nome":
			v.form[i].input.SetValue("Palma Forrageira")
		case "cultura":
			v.form[i].input.SetValue("Palma")
		case "estoque":
			v.form[i].input.SetValue("300")
		}
	}
	deliver(t, app, v.saveForm())

	if created.Nome != "Palma Forrageira" {
		t.Fatalf("create payload wrong: %+v", created)
	}
	if lists <= listsBefore {
		t.Fatal("a successful mutation must reload the list")
	}
	if v.mode != invBrowse {
		t.Fatalf("mode = %v, want browse", v.mode)
	}
}
