package ui

import (
	"github.com/charmbracelet/lipgloss"
)

func renderHelpModal(width, height int) string {
	green := lipgloss.NewStyle().
		Bold(true).
		Foreground(successColor)

	title := green.Render("WALL-E Street - Keyboard Shortcuts")

	blue := lipgloss.NewStyle().Foreground(accentColor)

	globalActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Global Actions"),
		"• Alt+R         Research results",
		"• Alt+S         Suggestion prompts",
		"• Alt+H         Toggle this help",
		"• Alt+Q         Quit",
	)

	chatActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Chat Actions"),
		"• Enter         Send message",
		"• Alt+Enter     New line",
		"• Esc           Dismiss error",
	)

	resultsActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Results Modal"),
		"• d             Export to Google Docs",
		"• c             Copy to clipboard",
		"• p             Save as PDF",
		"• j/k           Scroll",
	)

	tips := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Tips"),
		"• Mention any ticker (AAPL, MSFT, ...) to get the team's take",
		"• The backend must be running before you send a query",
	)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		globalActions,
		"",
		chatActions,
		"",
		resultsActions,
		"",
		tips,
		"",
		HelpStyle.Render("Press any key to close"),
	)

	boxed := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dimColor).
		Padding(1, 2).
		Render(content)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, boxed)
}
