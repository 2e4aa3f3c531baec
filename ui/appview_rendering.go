package ui

import (
	"fmt"
	"regexp"
	"strings"

	"wallestreet/research"
)

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func (a *AppView) updateViewportContent(gotoBottom bool) {
	if len(a.transcript()) == 0 && !a.dataModel.Busy() {
		a.viewport.SetContent("No messages yet. Mention a ticker like AAPL to get the team's take!")
		return
	}

	var content strings.Builder

	for _, msg := range a.transcript() {
		timestamp := DimStyle.Render(msg.Timestamp.Format("[15:04]"))

		if msg.Role == research.RoleUser {
			content.WriteString(formatUserMessage(timestamp, UserStyle.Render("You"), msg.Content))
			continue
		}

		name := "System"
		if msg.Agent != nil {
			name = msg.Agent.Name
		}
		role := AgentStyle.Render(name)

		content.WriteString(fmt.Sprintf("%s %s\n%s\n", timestamp, role, msg.Content))
		if len(msg.Points) > 0 {
			content.WriteString(DimStyle.Render("Analysis:") + "\n")
			for _, point := range msg.Points {
				content.WriteString(PointStyle.Render("  • "+point) + "\n")
			}
		}
		content.WriteString("\n")
	}

	// Thinking indicator while a submission is in flight
	if a.dataModel.Busy() {
		content.WriteString(a.renderThinkingIndicator())
	}

	a.viewport.SetContent(content.String())
	if gotoBottom {
		a.viewport.GotoBottom()
	}
}

// renderThinkingIndicator lists the roster with each agent's thinking blurb
// and the shared spinner, mirroring the in-flight state of the backend call.
func (a *AppView) renderThinkingIndicator() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s %s\n", a.loadingSpinner.View(), DimStyle.Render("The team is analyzing...")))
	for _, agent := range a.dataModel.Roster.All() {
		sb.WriteString(fmt.Sprintf("  %s %s\n",
			AgentStyle.Render(agent.Name+":"),
			DimStyle.Render(agent.Thinking)))
	}
	return sb.String()
}

func formatUserMessage(timestamp, role, content string) string {
	greenBold := "\x1b[32;1m"
	reset := "\x1b[0m"
	bar := greenBold + "┃" + reset

	lines := strings.Split(content, "\n")

	var result strings.Builder
	result.WriteString(fmt.Sprintf("%s %s %s\n", bar, timestamp, role))

	for _, line := range lines {
		result.WriteString(fmt.Sprintf("%s %s\n", bar, line))
	}

	result.WriteString("\n")

	return result.String()
}

func wordWrapWithIndent(text string, prefix string, maxWidth int) string {
	prefixLen := len(stripANSI(prefix))
	availableWidth := maxWidth - prefixLen

	if availableWidth <= 0 {
		return prefix + text
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return prefix
	}

	var result strings.Builder
	var currentLine strings.Builder
	indent := strings.Repeat(" ", prefixLen)
	isFirstLine := true

	for _, word := range words {
		testLen := currentLine.Len()
		if testLen > 0 {
			testLen++
		}
		testLen += len(word)

		if testLen > availableWidth && currentLine.Len() > 0 {
			if isFirstLine {
				result.WriteString(prefix)
				isFirstLine = false
			} else {
				result.WriteString(indent)
			}
			result.WriteString(currentLine.String())
			result.WriteString("\n")
			currentLine.Reset()
		}

		if currentLine.Len() > 0 {
			currentLine.WriteString(" ")
		}
		currentLine.WriteString(word)
	}

	if currentLine.Len() > 0 {
		if isFirstLine {
			result.WriteString(prefix)
		} else {
			result.WriteString(indent)
		}
		result.WriteString(currentLine.String())
	}

	return result.String()
}

func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}
