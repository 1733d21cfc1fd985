// Package summary turns a flow's interactions into a short, human-friendly
// description of what the user was trying to accomplish.
package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/devicelab-dev/flowdigest/pkg/core"
	"github.com/devicelab-dev/flowdigest/pkg/flow"
	"github.com/devicelab-dev/flowdigest/pkg/interaction"
	"github.com/devicelab-dev/flowdigest/pkg/logger"
	"go.uber.org/zap"
)

// DefaultFlowName is used when the flow has no name.
const DefaultFlowName = "Arcade Flow"

// MaxKeyInteractions caps how many interactions the template mentions.
const MaxKeyInteractions = 5

// KeyKeywords select the interactions worth mentioning in a template summary.
var KeyKeywords = []string{"search", "product", "add to cart", "cart", "coverage", "color", "image", "link"}

// Source records which path produced a summary.
type Source string

const (
	SourceAI       Source = "ai"
	SourceTemplate Source = "template"
)

// Completer produces a text completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Result is a generated summary.
type Result struct {
	Text   string
	Source Source
}

// Generator asks the completer for a summary and falls back to the local
// template when that is not possible.
type Generator struct {
	// Completer may be nil, e.g. when no credentials are configured.
	Completer Completer
	Logger    *zap.Logger
}

// NewGenerator creates a generator logging to the global logger.
func NewGenerator(c Completer) *Generator {
	return &Generator{Completer: c, Logger: logger.L()}
}

// Generate returns a summary for the flow. It never fails: any problem with
// the completer is logged and the template is used instead.
func (g *Generator) Generate(ctx context.Context, f *flow.Flow, interactions []interaction.Interaction) Result {
	log := g.Logger
	if log == nil {
		log = logger.L()
	}

	if g.Completer == nil {
		log.Warn("text completion unavailable, using template summary",
			zap.Error(core.ErrMissingAPIKey))
		return Result{Text: Template(f, interactions), Source: SourceTemplate}
	}

	text, err := g.Completer.Complete(ctx, BuildPrompt(f, interactions))
	if err == nil && strings.TrimSpace(text) == "" {
		err = core.ErrEmptyCompletion
	}
	if err != nil {
		log.Warn("text completion failed, using template summary",
			zap.Error(err),
			zap.String("category", core.CategoryOf(err).String()))
		return Result{Text: Template(f, interactions), Source: SourceTemplate}
	}

	log.Debug("summary generated by text completion", zap.Int("length", len(text)))
	return Result{Text: strings.TrimSpace(text), Source: SourceAI}
}

// BuildPrompt renders the completion prompt.
func BuildPrompt(f *flow.Flow, interactions []interaction.Interaction) string {
	var b strings.Builder
	b.WriteString("Create a clear, concise, human-readable, friendly summary of the user's objective: what the user was trying to accomplish. ")
	b.WriteString("Be clear and approachable; avoid technical details. \n\n")
	fmt.Fprintf(&b, "Flow name: %s\n", f.DisplayName(DefaultFlowName))
	fmt.Fprintf(&b, "Subtitle: %s\n", f.FirstChapterSubtitle())
	fmt.Fprintf(&b, "Interactions:\n- %s\n", strings.Join(interaction.Descriptions(interactions), "\n- "))
	return b.String()
}

// KeyInteractions returns the descriptions of the first interactions that
// mention one of KeyKeywords, in flow order.
func KeyInteractions(interactions []interaction.Interaction) []string {
	var key []string
	for _, in := range interactions {
		d := strings.ToLower(in.Description)
		for _, k := range KeyKeywords {
			if strings.Contains(d, k) {
				key = append(key, in.Description)
				break
			}
		}
		if len(key) >= MaxKeyInteractions {
			break
		}
	}
	return key
}

// Template builds a summary locally from the flow name and its key
// interactions.
func Template(f *flow.Flow, interactions []interaction.Interaction) string {
	parts := []string{fmt.Sprintf("This flow shows how to %s.", strings.ToLower(f.DisplayName(DefaultFlowName)))}

	if key := KeyInteractions(interactions); len(key) > 0 {
		lowered := make([]string, len(key))
		for i, k := range key {
			lowered[i] = strings.ToLower(k)
		}
		parts = append(parts, fmt.Sprintf("The user %s.", strings.Join(lowered, ", then ")))
	}

	return strings.Join(parts, " ")
}
