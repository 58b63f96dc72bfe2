// cmd/safra/main.go
//
// This is the entry point for the SAFRA terminal client.
//
// Flow:
// 1. Load configuration (env vars with sane defaults)
// 2. Open the diagnostics log file
// 3. Launch the TUI, optionally jumping straight to a tracking search

package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ipa-pe/safra/internal/config"
	"github.com/ipa-pe/safra/internal/logging"
	"github.com/ipa-pe/safra/internal/tui"
)

func main() {
	codigo := flag.String("codigo", "", "abre direto no rastreamento do código informado")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro ao carregar configuração: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.InitDataDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Erro ao preparar diretório de dados: %v\n", err)
		os.Exit(1)
	}

	// Diagnostics never touch the terminal; the TUI owns it.
	diag, err := logging.New(cfg.DiagnosticsPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro ao abrir log de diagnóstico: %v\n", err)
		os.Exit(1)
	}
	defer diag.Sync()

	app, err := tui.NewApp(cfg,
		tui.WithCodigoInicial(*codigo),
		tui.WithDiagnostics(diag),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro ao iniciar o SAFRA: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Erro ao executar a interface: %v\n", err)
		os.Exit(1)
	}
}
