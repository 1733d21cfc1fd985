// Package social builds the image-generation prompt for a flow and renders the
// generated artwork onto a social-media sized canvas.
package social

import (
	"fmt"
	"slices"
	"strings"

	"github.com/devicelab-dev/flowdigest/pkg/flow"
	"github.com/devicelab-dev/flowdigest/pkg/interaction"
)

// DefaultFlowName is the narrative hint used when the flow has no name.
const DefaultFlowName = "User Flow"

// ColorKeywords are the color words picked out of interaction descriptions.
var ColorKeywords = []string{"red", "blue", "pink", "green", "black", "white", "silver", "gray", "grey", "yellow", "purple"}

// UI metaphors suggested to the image model.
const (
	MetaphorSearch     = "a search bar"
	MetaphorAction     = "a prominent action button"
	MetaphorCart       = "a generic cart or list icon"
	MetaphorNavigation = "a simple navigation header"
	MetaphorInput      = "a minimal input field"
)

// Hints are the visual cues derived from a flow's interactions.
type Hints struct {
	UI      []string
	Product string
	Colors  []string
}

// DeriveHints scans interaction descriptions for UI metaphors, a product name
// and color words.
func DeriveHints(interactions []interaction.Interaction) Hints {
	var search, action, cart, nav, input bool
	var h Hints

	for _, in := range interactions {
		desc := strings.TrimSpace(in.Description)
		lower := strings.ToLower(desc)

		search = search || strings.Contains(lower, "search")
		action = action || strings.Contains(lower, "add to cart") || strings.Contains(lower, "clicked 'add")
		cart = cart || strings.Contains(lower, "cart")
		nav = nav || in.Kind == interaction.KindNavigate
		input = input || strings.Contains(lower, "typed")

		// later matches replace earlier ones
		if strings.Contains(lower, "clicked product") || strings.Contains(lower, "image '") || strings.Contains(lower, "clicked '") {
			if parts := strings.Split(desc, "'"); len(parts) > 1 {
				h.Product = parts[1]
			}
		}

		for _, c := range ColorKeywords {
			name := strings.ToUpper(c[:1]) + c[1:]
			if strings.Contains(lower, c) && !slices.Contains(h.Colors, name) {
				h.Colors = append(h.Colors, name)
			}
		}
	}

	for _, m := range []struct {
		on   bool
		text string
	}{
		{search, MetaphorSearch},
		{action, MetaphorAction},
		{cart, MetaphorCart},
		{nav, MetaphorNavigation},
		{input, MetaphorInput},
	} {
		if m.on {
			h.UI = append(h.UI, m.text)
		}
	}
	return h
}

// BuildPrompt renders the image prompt for a flow. The narrative hint is the
// flow name unless narrative is given.
func BuildPrompt(f *flow.Flow, interactions []interaction.Interaction, narrative string) string {
	if strings.TrimSpace(narrative) == "" {
		narrative = f.DisplayName(DefaultFlowName)
	}
	h := DeriveHints(interactions)

	var b strings.Builder
	b.WriteString("Design a creative, high-quality, engaging social-media hero image (1200x630) that visually represents the following user flow, and also make sure it would drive engagement. ")
	b.WriteString("Keep it abstract and product-agnostic (no real logos or brand marks). ")
	b.WriteString("Use clean composition, balanced layout, and a modern palette suitable for social sharing.")
	if len(h.UI) > 0 {
		fmt.Fprintf(&b, " Include subtle UI metaphors such as %s.", strings.Join(h.UI, ", "))
	}
	if h.Product != "" {
		fmt.Fprintf(&b, " Emphasize a generic representation of '%s', without logos or trademarks.", h.Product)
	}
	if len(h.Colors) > 0 {
		fmt.Fprintf(&b, " Consider accents or swatches for %s.", strings.Join(h.Colors, ", "))
	}
	b.WriteString(" Avoid text-heavy designs; prefer clear shapes/icons and generous whitespace. ")
	fmt.Fprintf(&b, "Narrative hint: %s.", narrative)
	return b.String()
}
