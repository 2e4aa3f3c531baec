package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"wallestreet/agent"
	"wallestreet/config"
	"wallestreet/export"
	"wallestreet/gateway"
	appmodel "wallestreet/model"
	"wallestreet/ui"
)

const Version = "v0.01.00"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize debug logging after config is loaded
	config.InitDebugLog(cfg.DataDir())

	client, err := gateway.NewClient(cfg.BackendHost)
	if err != nil {
		errorModal := ui.NewErrorModal("Configuration Error",
			fmt.Sprintf("Invalid backend host %q:\n%v\n\nFix [backend] host in config.toml or WALLEST_API_HOST.", cfg.BackendHost, err))
		p := tea.NewProgram(errorModal, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(0)
	}

	roster := agent.DefaultRoster()
	dataModel := appmodel.NewModel(cfg, client, roster, Version)

	// Google Docs export is optional; without credentials the results modal
	// reports it unconfigured.
	var exporter *export.DocsExporter
	if cfg.Google.ClientID != "" {
		tokens := config.NewGoogleTokenStore(cfg.DataDir())
		exporter = export.NewDocsExporter(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.RedirectURL, tokens)
		dataModel.AuthURLFunc = exporter.AuthURL
	}

	p := tea.NewProgram(
		ui.NewAppView(cfg, dataModel, exporter),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running wallestreet: %v\n", err)
		os.Exit(1)
	}
}
