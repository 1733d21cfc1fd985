// Package report renders and writes the pipeline's output documents.
package report

import (
	"strings"

	"github.com/devicelab-dev/flowdigest/pkg/interaction"
)

// Document headers.
const (
	InteractionsHeader = "# Interactions"
	SummaryHeader      = "# Summary of what the user was trying to accomplish:"
)

// RenderInteractions renders the interactions document: a header followed by
// one bullet line per interaction.
func RenderInteractions(interactions []interaction.Interaction) string {
	lines := []string{InteractionsHeader, ""}
	lines = append(lines, interaction.Lines(interactions)...)
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

// RenderSummary renders the summary document.
func RenderSummary(text string) string {
	return strings.Join([]string{SummaryHeader, "", strings.TrimSpace(text), ""}, "\n")
}

// WriteInteractions writes the interactions document to path.
func WriteInteractions(path string, interactions []interaction.Interaction) error {
	return writeDocument(path, RenderInteractions(interactions))
}

// WriteSummary writes the summary document to path.
func WriteSummary(path, text string) error {
	return writeDocument(path, RenderSummary(text))
}

func writeDocument(path, content string) error {
	return WriteFile(path, []byte(content))
}
