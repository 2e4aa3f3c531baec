package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"wallestreet/export"
)

// renderResultsModal shows the current bundle with its export actions.
func (a AppView) renderResultsModal() string {
	bundle := a.dataModel.Bundle

	modalWidth := 76
	if a.width < modalWidth+4 {
		modalWidth = a.width - 4
	}
	textWidth := modalWidth - 4

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(accentColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		Render("Research Results")

	var lines []string
	lines = append(lines, wordWrapWithIndent(bundle.Query, SelectedStyle.Render("Query: "), textWidth))
	lines = append(lines, DimStyle.Render("Generated on: "+bundle.GeneratedAt.Format("Jan 2, 2006 3:04 PM")))
	lines = append(lines, "")

	for _, resp := range bundle.Responses {
		lines = append(lines, AgentStyle.Bold(true).Render(resp.Agent))
		lines = append(lines, wordWrapWithIndent(resp.Content, "  ", textWidth))
		for _, point := range resp.Points {
			lines = append(lines, PointStyle.Render(truncateLine("    • "+point, textWidth)))
		}
		lines = append(lines, "")
	}

	// Scroll window over the body lines
	bodyHeight := a.height - 10
	if bodyHeight < 5 {
		bodyHeight = 5
	}
	start := a.resultsScroll
	if start > len(lines)-1 {
		start = len(lines) - 1
	}
	if start < 0 {
		start = 0
	}
	end := start + bodyHeight
	if end > len(lines) {
		end = len(lines)
	}

	body := lipgloss.NewStyle().
		Width(modalWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(strings.Join(lines[start:end], "\n"))

	footerText := FormatFooter("d", "Google Docs", "c", "Copy", "p", "PDF", "j/k", "Scroll", "Esc", "Close")
	if a.exportStatus != "" {
		footerText = DimStyle.Render(a.exportStatus) + "\n" + footerText
	}
	footer := lipgloss.NewStyle().
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(footerText)

	content := strings.Join([]string{title, body, footer}, "\n")
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

func (a AppView) handleResultsModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		a.showResults = false
		a.exportStatus = ""
		return a, nil
	case "j", "down":
		a.resultsScroll++
		return a, nil
	case "k", "up":
		if a.resultsScroll > 0 {
			a.resultsScroll--
		}
		return a, nil
	case "c":
		bundle := a.dataModel.Bundle
		return a, func() tea.Msg {
			return clipboardDoneMsg{Err: export.CopyToClipboard(bundle)}
		}
	case "p":
		bundle := a.dataModel.Bundle
		return a, func() tea.Msg {
			path := export.DefaultPDFName(bundle.GeneratedAt)
			return pdfExportDoneMsg{Path: path, Err: export.WritePDF(bundle, path)}
		}
	case "d":
		if a.exporter == nil || !a.exporter.Configured() {
			a.exportStatus = "Google Docs export not configured (see config.toml)"
			return a, nil
		}
		exporter := a.exporter
		bundle := a.dataModel.Bundle
		return a, func() tea.Msg {
			result, err := exporter.Export(context.Background(), bundle)
			return docExportDoneMsg{Result: result, Err: err}
		}
	}
	return a, nil
}

// renderAuthCodeModal prompts for the auth code Google shows after consent.
func (a AppView) renderAuthCodeModal() string {
	modalWidth := 70
	if a.width < modalWidth+4 {
		modalWidth = a.width - 4
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(warningColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		Render("Authorize Google Docs")

	var lines []string
	lines = append(lines, "Open this URL in your browser and approve access:")
	lines = append(lines, "")
	for _, chunk := range splitToWidth(a.authPromptURL, modalWidth-2) {
		lines = append(lines, AgentStyle.Render(chunk))
	}
	lines = append(lines, "")
	lines = append(lines, "Then paste the code Google shows you:")
	lines = append(lines, "")
	lines = append(lines, a.authCodeInput.View())

	body := lipgloss.NewStyle().
		Width(modalWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(strings.Join(lines, "\n"))

	footer := lipgloss.NewStyle().
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(FormatFooter("Enter", "Submit code", "Esc", "Cancel"))

	content := strings.Join([]string{title, body, footer}, "\n")
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

func (a AppView) handleAuthCodeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.authCodeMode = false
		a.showResults = a.dataModel.Bundle != nil
		return a, nil
	case "enter":
		code := strings.TrimSpace(a.authCodeInput.Value())
		if code == "" {
			return a, nil
		}
		exporter := a.exporter
		return a, func() tea.Msg {
			return authExchangeDoneMsg{Err: exporter.ExchangeCode(context.Background(), code)}
		}
	}

	var cmd tea.Cmd
	a.authCodeInput, cmd = a.authCodeInput.Update(msg)
	return a, cmd
}

func truncateLine(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}

func splitToWidth(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	var chunks []string
	for len(s) > 0 {
		if runewidth.StringWidth(s) <= width {
			chunks = append(chunks, s)
			break
		}
		cut := runewidth.Truncate(s, width, "")
		chunks = append(chunks, cut)
		s = s[len(cut):]
	}
	return chunks
}
