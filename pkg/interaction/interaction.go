// Package interaction reduces a recorded flow into an ordered list of
// human-readable interactions.
package interaction

import "strings"

// Kind is the semantic type of an interaction.
type Kind string

// Interaction kinds.
const (
	KindClick     Kind = "click"
	KindNavigate  Kind = "navigate"
	KindTyping    Kind = "typing"
	KindScrolling Kind = "scrolling"
	KindHint      Kind = "hint"
)

// Fixed descriptions emitted by the engine.
const (
	DescClicked  = "Clicked"
	DescTyped    = "Typed in search bar"
	DescScrolled = "Scrolled the page"
)

// Interaction is a single user action identified in a flow. Values are
// created by Extract and Classify and never modified afterwards.
type Interaction struct {
	Kind        Kind   `json:"kind"`
	Description string `json:"description"`
	PageTitle   string `json:"pageTitle,omitempty"`
	PageURL     string `json:"pageUrl,omitempty"`
}

// New creates an interaction. A blank description is replaced by "Clicked"
// so that Description is never empty.
func New(kind Kind, description, pageTitle, pageURL string) Interaction {
	if strings.TrimSpace(description) == "" {
		description = DescClicked
	}
	return Interaction{
		Kind:        kind,
		Description: description,
		PageTitle:   pageTitle,
		PageURL:     pageURL,
	}
}

// Lines renders interactions as markdown bullet lines.
func Lines(interactions []Interaction) []string {
	lines := make([]string, len(interactions))
	for i, in := range interactions {
		lines[i] = "- " + in.Description
	}
	return lines
}

// Descriptions returns the description of every interaction in order.
func Descriptions(interactions []Interaction) []string {
	out := make([]string, len(interactions))
	for i, in := range interactions {
		out[i] = in.Description
	}
	return out
}
