// Package export turns a result bundle into the three externally shareable
// forms: flat clipboard text, a paginated PDF, and a Google Doc.
package export

import (
	"strings"

	"github.com/atotto/clipboard"

	"wallestreet/research"
)

// Flatten renders the bundle as plain text: a query header, then one block
// per response separated by a --- line.
func Flatten(bundle *research.ResultBundle) string {
	var sb strings.Builder
	sb.WriteString("Research Query: ")
	sb.WriteString(bundle.Query)
	sb.WriteString("\n\n")

	blocks := make([]string, 0, len(bundle.Responses))
	for _, resp := range bundle.Responses {
		var b strings.Builder
		b.WriteString(resp.Agent)
		b.WriteString(":\n")
		b.WriteString(resp.Content)
		b.WriteString("\n\nAnalysis:\n")
		b.WriteString(strings.Join(resp.Points, "\n"))
		b.WriteString("\n")
		blocks = append(blocks, b.String())
	}
	sb.WriteString(strings.Join(blocks, "\n---\n"))
	return sb.String()
}

// CopyToClipboard places the flattened bundle on the system clipboard.
func CopyToClipboard(bundle *research.ResultBundle) error {
	return clipboard.WriteAll(Flatten(bundle))
}
