package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"wallestreet/config"
	"wallestreet/export"
	appmodel "wallestreet/model"
	"wallestreet/research"
)

type AppView struct {
	// Reference to core data model
	dataModel *appmodel.Model

	// Google Docs exporter (nil when unconfigured)
	exporter *export.DocsExporter

	// UI Components
	viewport viewport.Model
	textarea textarea.Model

	// Window state
	width  int
	height int
	ready  bool

	// Loading spinner (bubbles/spinner), shown while a submission is in flight
	loadingSpinner spinner.Model

	showHelp bool

	// Results modal state
	showResults   bool
	resultsScroll int
	exportStatus  string // feedback line after an export action

	// Suggestion picker state
	showSuggestions     bool
	suggestions         []Suggestion
	selectedSuggestion  int
	suggestFilterMode   bool
	suggestFilterInput  textinput.Model
	filteredSuggestions []Suggestion

	// Google auth code entry (after the user opens the consent URL)
	authCodeMode  bool
	authCodeInput textinput.Model
	authPromptURL string
}

func NewAppView(cfg *config.Config, dataModel *appmodel.Model, exporter *export.DocsExporter) AppView {
	ta := textarea.New()
	ta.Placeholder = "Ask about any stock ticker (e.g., AAPL, MSFT, GOOGL)..."
	ta.Focus()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.SetWidth(80)

	// Custom KeyMap: Alt+Enter for newline, Enter alone does nothing (handled separately)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))

	ta.SetPromptFunc(2, func(lineIdx int) string {
		if lineIdx == 0 {
			return "> "
		}
		return "| "
	})

	vp := viewport.New(0, 0)

	suggestFilterInput := textinput.New()
	suggestFilterInput.Prompt = "Filter: "
	suggestFilterInput.CharLimit = 64

	authCodeInput := textinput.New()
	authCodeInput.Prompt = "Code: "
	authCodeInput.CharLimit = 256

	return AppView{
		dataModel:           dataModel,
		exporter:            exporter,
		textarea:            ta,
		viewport:            vp,
		ready:               false,
		showHelp:            false,
		showSuggestions:     cfg != nil && cfg.ShowSuggestions,
		suggestions:         DefaultSuggestions(),
		filteredSuggestions: []Suggestion{},
		suggestFilterInput:  suggestFilterInput,
		authCodeInput:       authCodeInput,
	}
}

func (a AppView) Init() tea.Cmd {
	return textarea.Blink
}

func (a AppView) View() string {
	if !a.ready {
		return "Loading WALL-E Street..."
	}

	// Modal rendering order (top to bottom layers):
	// 1. Help (always on top - can peek while in other modals)
	// 2. Auth code entry
	// 3. Error
	// 4. Results
	// 5. Suggestions

	if a.showHelp {
		return renderHelpModal(a.width, a.height)
	}

	if a.authCodeMode {
		return a.renderAuthCodeModal()
	}

	if a.dataModel.Phase == appmodel.PhaseError && a.dataModel.LastError != nil {
		return a.renderErrorModal()
	}

	if a.showResults {
		return a.renderResultsModal()
	}

	if a.showSuggestions {
		return a.renderSuggestions()
	}

	// Title bar - "WALL-E Street - <backend host>"
	titleText := AgentStyle.Render("WALL-E Street")
	versionText := TitleStyle.Render(fmt.Sprintf(" - %s", a.dataModel.Version))
	bundleText := ""
	if a.dataModel.Bundle != nil {
		bundleText = DimStyle.Render(fmt.Sprintf(" | %d results (Alt+R)", len(a.dataModel.Bundle.Responses)))
	}
	title := titleText + versionText + bundleText

	separator := ""

	viewportView := a.viewport.View()
	inputView := a.textarea.View()

	// Status bar with bold user green descriptions
	descStyle := lipgloss.NewStyle().Foreground(successColor).Bold(true)
	statusBar := fmt.Sprintf("Alt+Q %s  Alt+R %s  Alt+S %s  Alt+H %s  Alt+Enter %s  Enter %s",
		descStyle.Render("Quit"),
		descStyle.Render("Results"),
		descStyle.Render("Suggestions"),
		descStyle.Render("Help"),
		descStyle.Render("New Line"),
		descStyle.Render("Send"),
	)
	statusBar = StatusStyle.Render(statusBar)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		separator,
		viewportView,
		inputView,
		statusBar,
	)
}

// transcript returns the messages to render, shared by viewport updates.
func (a AppView) transcript() []research.Message {
	return a.dataModel.Messages
}

func (a *AppView) closeAllModals() {
	a.showHelp = false
	a.showResults = false
	a.showSuggestions = false
	a.suggestFilterMode = false
	a.authCodeMode = false
}
