package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// Suggestion is a canned research prompt selectable from the picker.
type Suggestion struct {
	Title  string
	Prompt string
}

func DefaultSuggestions() []Suggestion {
	return []Suggestion{
		{
			Title:  "Company Analysis",
			Prompt: "Analyze AAPL's competitive position in the smartphone market",
		},
		{
			Title:  "Market Research",
			Prompt: "What's the outlook for AI semiconductor stocks like NVDA and AMD?",
		},
		{
			Title:  "Investment Strategy",
			Prompt: "Compare value stocks like KO and PG vs. growth stocks like TSLA and AMZN",
		},
		{
			Title:  "Risk Assessment",
			Prompt: "Evaluate the risks of investing in regional banks like JPM and BAC",
		},
	}
}

func (a *AppView) openSuggestions() {
	a.showSuggestions = true
	a.selectedSuggestion = 0
	a.suggestFilterMode = false
	a.suggestFilterInput.SetValue("")
	a.filteredSuggestions = a.suggestions
}

func (a AppView) getSuggestionList() []Suggestion {
	if a.suggestFilterMode && len(a.filteredSuggestions) > 0 {
		return a.filteredSuggestions
	}
	return a.suggestions
}

func (a AppView) handleSuggestionKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.suggestFilterMode {
		switch msg.String() {
		case "esc":
			a.suggestFilterMode = false
			a.suggestFilterInput.SetValue("")
			a.filteredSuggestions = a.suggestions
			return a, nil
		case "enter":
			a.suggestFilterMode = false
			return a, nil
		}

		var cmd tea.Cmd
		a.suggestFilterInput, cmd = a.suggestFilterInput.Update(msg)

		filterValue := a.suggestFilterInput.Value()
		if filterValue == "" {
			a.filteredSuggestions = a.suggestions
		} else {
			targets := make([]string, len(a.suggestions))
			for i, s := range a.suggestions {
				targets[i] = s.Title + " " + s.Prompt
			}

			matches := fuzzy.Find(filterValue, targets)
			a.filteredSuggestions = make([]Suggestion, len(matches))
			for i, match := range matches {
				a.filteredSuggestions[i] = a.suggestions[match.Index]
			}
		}

		list := a.getSuggestionList()
		if a.selectedSuggestion >= len(list) && len(list) > 0 {
			a.selectedSuggestion = len(list) - 1
		}

		return a, cmd
	}

	switch msg.String() {
	case "esc":
		a.showSuggestions = false
		return a, nil
	case "/":
		a.suggestFilterMode = true
		a.suggestFilterInput.Focus()
		a.suggestFilterInput.SetValue("")
		a.filteredSuggestions = a.suggestions
		return a, textinput.Blink
	case "j", "down":
		list := a.getSuggestionList()
		if a.selectedSuggestion < len(list)-1 {
			a.selectedSuggestion++
		}
		return a, nil
	case "k", "up":
		if a.selectedSuggestion > 0 {
			a.selectedSuggestion--
		}
		return a, nil
	case "enter":
		list := a.getSuggestionList()
		if len(list) == 0 {
			return a, nil
		}
		choice := list[a.selectedSuggestion]
		a.showSuggestions = false
		// Selecting a prompt submits it through the same entry point as
		// typed input.
		return a.submitInput(choice.Prompt)
	}
	return a, nil
}

func (a AppView) renderSuggestions() string {
	modalWidth := 72
	if a.width < modalWidth+4 {
		modalWidth = a.width - 4
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(accentColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		Render("Suggestion Prompts")

	var lines []string
	if a.suggestFilterMode {
		lines = append(lines, a.suggestFilterInput.View())
		lines = append(lines, "")
	}

	list := a.getSuggestionList()
	if len(list) == 0 {
		lines = append(lines, DimStyle.Render("No prompts match the filter"))
	}
	for i, s := range list {
		cursor := "  "
		titleStyle := TitleStyle
		if i == a.selectedSuggestion {
			cursor = SelectedStyle.Render("> ")
			titleStyle = SelectedStyle
		}
		lines = append(lines, cursor+titleStyle.Render(s.Title))
		lines = append(lines, wordWrapWithIndent(s.Prompt, "    ", modalWidth-2))
		lines = append(lines, "")
	}

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
		Render(FormatFooter("j/k", "Navigate", "/", "Filter", "Enter", "Use prompt", "Esc", "Close"))

	content := strings.Join([]string{title, body, footer}, "\n")
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}
