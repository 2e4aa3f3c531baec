package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"wallestreet/config"
	appmodel "wallestreet/model"
)

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	// Update spinner FIRST to handle TickMsg before anything else
	if a.dataModel.Busy() {
		a.loadingSpinner, cmd = a.loadingSpinner.Update(msg)
		cmds = append(cmds, cmd)
		// Redraw the thinking indicator without forcing a scroll, so the
		// user can read back through the transcript mid-flight
		a.updateViewportContent(false)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		// Reserve space for title (1 line), separator (1 line), textarea (3 lines), and status bar (1 line)
		viewportHeight := a.height - 6
		a.viewport.Width = a.width
		a.viewport.Height = viewportHeight
		a.textarea.SetWidth(a.width)

		a.ready = true
		a.updateViewportContent(true)
		return a, nil

	case tea.KeyMsg:
		// PRIORITY 0: Always-global shortcuts
		switch msg.String() {
		case "alt+q", "ctrl+c":
			if config.DebugLog != nil {
				config.DebugLog.Printf("[UI] Quit requested")
			}
			return a, tea.Quit
		case "alt+h":
			a.showHelp = !a.showHelp
			return a, nil
		}

		if a.showHelp {
			// Any other key closes help
			a.showHelp = false
			return a, nil
		}

		// PRIORITY 1: Modal key handling
		if a.authCodeMode {
			return a.handleAuthCodeKeys(msg)
		}

		if a.dataModel.Phase == appmodel.PhaseError {
			return a.handleErrorModalKeys(msg)
		}

		if a.showResults {
			return a.handleResultsModalKeys(msg)
		}

		if a.showSuggestions {
			return a.handleSuggestionKeys(msg)
		}

		// PRIORITY 2: Main chat shortcuts
		switch msg.String() {
		case "alt+r":
			if a.dataModel.Bundle != nil {
				a.showResults = true
				a.resultsScroll = 0
				a.exportStatus = ""
			}
			return a, nil
		case "alt+s":
			a.openSuggestions()
			return a, nil
		}

		// Handle Enter for sending messages - DON'T let textarea process it
		// But allow Alt+Enter to pass through for newlines
		if msg.Type == tea.KeyEnter && !msg.Alt && !a.dataModel.Busy() {
			return a.submitInput(a.textarea.Value())
		}

		// Pass remaining keys to textarea
		a.textarea, cmd = a.textarea.Update(msg)
		cmds = append(cmds, cmd)

		// Viewport scrolling for keys the textarea ignores (pgup/pgdown)
		a.viewport, cmd = a.viewport.Update(msg)
		cmds = append(cmds, cmd)

		return a, tea.Batch(cmds...)

	case probeResultMsg:
		next := a.dataModel.HandleProbeResult(msg)
		a.updateViewportContent(true)
		if next != nil {
			cmds = append(cmds, next)
		}
		return a, tea.Batch(cmds...)

	case analysisResultMsg:
		next := a.dataModel.HandleAnalysisResult(msg)
		a.updateViewportContent(true)
		if next != nil {
			cmds = append(cmds, next)
		}
		return a, tea.Batch(cmds...)

	case docExportDoneMsg:
		if msg.Err != nil {
			a.exportStatus = "Google Docs export failed: " + msg.Err.Error()
			return a, nil
		}
		if msg.Result.NeedsAuth {
			a.showResults = false
			a.authCodeMode = true
			a.authPromptURL = msg.Result.AuthURL
			a.authCodeInput.SetValue("")
			a.authCodeInput.Focus()
			return a, nil
		}
		a.exportStatus = "Created " + msg.Result.URL
		return a, nil

	case pdfExportDoneMsg:
		if msg.Err != nil {
			a.exportStatus = "PDF export failed: " + msg.Err.Error()
		} else {
			a.exportStatus = "Saved " + msg.Path
		}
		return a, nil

	case clipboardDoneMsg:
		if msg.Err != nil {
			a.exportStatus = "Copy failed: " + msg.Err.Error()
		} else {
			a.exportStatus = "Copied to clipboard"
		}
		return a, nil

	case authExchangeDoneMsg:
		a.authCodeMode = false
		if msg.Err != nil {
			a.exportStatus = "Authorization failed: " + msg.Err.Error()
		} else {
			a.exportStatus = "Authorized - press d to export again"
		}
		a.showResults = a.dataModel.Bundle != nil
		return a, nil
	}

	// Non-key messages fall through to components
	a.textarea, cmd = a.textarea.Update(msg)
	cmds = append(cmds, cmd)
	a.viewport, cmd = a.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}

// submitInput hands a query to the data model and starts the spinner.
func (a AppView) submitInput(input string) (tea.Model, tea.Cmd) {
	probeCmd := a.dataModel.Submit(input)
	if probeCmd == nil {
		return a, nil
	}

	a.textarea.Reset()

	a.loadingSpinner = spinner.New()
	a.loadingSpinner.Spinner = spinner.Dot
	a.loadingSpinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("15")) // Bright white

	if config.DebugLog != nil {
		config.DebugLog.Printf("[UI] Enter pressed - probing backend")
	}

	a.updateViewportContent(true)

	return a, tea.Batch(
		probeCmd,
		a.loadingSpinner.Tick,
	)
}

func (a AppView) handleErrorModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		a.dataModel.DismissError()
		a.updateViewportContent(false)
		return a, nil
	case "a":
		// Error modal shows the consent URL for auth failures; "a" opens
		// the paste-in code entry.
		if err := a.dataModel.LastError; err != nil && err.AuthURL != "" {
			a.dataModel.DismissError()
			a.authCodeMode = true
			a.authPromptURL = err.AuthURL
			a.authCodeInput.SetValue("")
			a.authCodeInput.Focus()
		}
		return a, nil
	}
	return a, nil
}
