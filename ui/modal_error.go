package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"wallestreet/gateway"
)

// ErrorModal is a simple standalone modal for showing errors before the main UI starts
// Uses the standard borderless three-section modal pattern
type ErrorModal struct {
	title   string
	message string
	width   int
	height  int
}

func NewErrorModal(title, message string) ErrorModal {
	return ErrorModal{
		title:   title,
		message: message,
	}
}

func (m ErrorModal) Init() tea.Cmd {
	return nil
}

func (m ErrorModal) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m ErrorModal) View() string {
	if m.width < 20 || m.height < 10 {
		return "Terminal too small"
	}

	return renderThreeSectionError(m.title, m.message, "Press Enter to quit", m.width, m.height)
}

// renderErrorModal overlays the current gateway error: title, message,
// detail, and for auth failures the consent URL with an action hint. The
// traceback stays in the debug log only.
func (a AppView) renderErrorModal() string {
	gerr := a.dataModel.LastError

	var body strings.Builder
	body.WriteString(gerr.Message)
	if gerr.Detail != "" {
		body.WriteString("\n\n")
		body.WriteString(gerr.Detail)
	}
	if gerr.AuthURL != "" {
		body.WriteString("\n\nOpen this URL to authorize:\n")
		body.WriteString(gerr.AuthURL)
	}

	footer := "Press Esc to dismiss"
	if gerr.Kind == gateway.KindAuthRequired && gerr.AuthURL != "" {
		footer = FormatFooter("a", "Enter auth code", "Esc", "Dismiss")
	}

	return renderThreeSectionError(gerr.Title, body.String(), footer, a.width, a.height)
}

// renderThreeSectionError renders the borderless three-section modal:
// danger title, bordered message body, bordered footer.
func renderThreeSectionError(title, message, footer string, width, height int) string {
	modalWidth := 60
	if width < modalWidth+10 {
		modalWidth = width - 10
	}

	titleSection := lipgloss.NewStyle().
		Bold(true).
		Foreground(dangerColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		Render(title)

	var messageLines []string
	messageLines = append(messageLines, strings.Repeat(" ", modalWidth))

	messageStyle := lipgloss.NewStyle().
		Width(modalWidth).
		Align(lipgloss.Center)

	for _, line := range strings.Split(message, "\n") {
		messageLines = append(messageLines, messageStyle.Render(line))
	}

	messageLines = append(messageLines, strings.Repeat(" ", modalWidth))

	messageSection := lipgloss.NewStyle().
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(strings.Join(messageLines, "\n"))

	footerSection := lipgloss.NewStyle().
		Foreground(dimColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(footer)

	sections := []string{titleSection, messageSection, footerSection}
	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
