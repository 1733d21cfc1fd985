package interaction

import (
	"fmt"
	"strings"

	"github.com/devicelab-dev/flowdigest/pkg/flow"
)

// Selector keyword sets, matched as case-insensitive substrings.
var (
	AddToCartKeywords = []string{"addtocart", "add-to-cart", "add_to_cart", "addtocartbutton", "addtobag", "add-to-bag"}
	CheckoutKeywords  = []string{"checkout", "proceed-to-checkout", "proceed_to_checkout", "begin-checkout", "begin_checkout"}
	NextKeywords      = []string{"next", "continue", "continue-button", "continue_btn"}
)

// clickSignal is the normalized click context a rule looks at.
type clickSignal struct {
	elementType string // trimmed, lowercased
	text        string // trimmed, original case
	selector    string // lowercased
}

func (s clickSignal) hasText() bool { return s.text != "" }

// clickRule pairs a predicate with the interaction it produces.
type clickRule struct {
	name  string
	match func(s clickSignal) bool
	kind  Kind
	desc  func(s clickSignal) string
}

func fixed(desc string) func(clickSignal) string {
	return func(clickSignal) string { return desc }
}

// clickRules is evaluated in order; the first match wins. Text is a
// stronger signal than the selector, so selector heuristics only apply
// when no text was captured.
var clickRules = []clickRule{
	{
		name: "search-input",
		match: func(s clickSignal) bool {
			return s.elementType == "other" && strings.Contains(s.selector, "search")
		},
		kind: KindClick,
		desc: fixed("Clicked search input"),
	},
	{
		name:  "image-with-text",
		match: func(s clickSignal) bool { return s.elementType == "image" && s.hasText() },
		kind:  KindClick,
		desc:  func(s clickSignal) string { return fmt.Sprintf("Clicked product/image '%s'", s.text) },
	},
	{
		name:  "button-with-text",
		match: func(s clickSignal) bool { return s.elementType == "button" && s.hasText() },
		kind:  KindClick,
		desc:  func(s clickSignal) string { return fmt.Sprintf("Clicked '%s' button", s.text) },
	},
	{
		name:  "link",
		match: func(s clickSignal) bool { return s.elementType == "link" },
		kind:  KindNavigate,
		desc:  fixed("Opened cart"),
	},
	{
		name:  "selector-add-to-cart",
		match: selectorRule(AddToCartKeywords...),
		kind:  KindClick,
		desc:  fixed("Clicked 'Add to cart' button"),
	},
	{
		name:  "selector-checkout",
		match: selectorRule(CheckoutKeywords...),
		kind:  KindClick,
		desc:  fixed("Clicked 'Checkout'"),
	},
	{
		name:  "selector-search",
		match: selectorRule("search"),
		kind:  KindClick,
		desc:  fixed("Clicked search input"),
	},
	{
		name:  "selector-filter",
		match: selectorRule("filter"),
		kind:  KindClick,
		desc:  fixed("Opened filters"),
	},
	{
		name:  "selector-next",
		match: selectorRule(NextKeywords...),
		kind:  KindClick,
		desc:  fixed("Clicked 'Next'"),
	},
	{
		name:  "selector-submit",
		match: selectorRule("submit"),
		kind:  KindClick,
		desc:  fixed("Clicked 'Submit'"),
	},
	{
		name:  "text",
		match: clickSignal.hasText,
		kind:  KindClick,
		desc:  func(s clickSignal) string { return fmt.Sprintf("Clicked '%s'", s.text) },
	},
}

// selectorRule matches when no text was captured and the selector contains
// any of the keywords.
func selectorRule(keywords ...string) func(clickSignal) bool {
	return func(s clickSignal) bool {
		return !s.hasText() && containsAny(s.selector, keywords)
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func signalOf(ctx *flow.ClickContext) clickSignal {
	if ctx == nil {
		return clickSignal{}
	}
	return clickSignal{
		elementType: strings.ToLower(strings.TrimSpace(ctx.ElementType)),
		text:        strings.TrimSpace(ctx.Text),
		selector:    strings.ToLower(ctx.CSSSelector),
	}
}

// Classify turns a step's click context into an interaction carrying the
// step's page context. It always returns a value; the fallback is "Clicked".
func Classify(step *flow.Step) Interaction {
	if step == nil {
		return New(KindClick, DescClicked, "", "")
	}

	title, url := step.Page()
	s := signalOf(step.ClickContext)
	for _, rule := range clickRules {
		if rule.match(s) {
			return New(rule.kind, rule.desc(s), title, url)
		}
	}
	return New(KindClick, DescClicked, title, url)
}

// RuleName reports which rule classifies the step, or "default".
func RuleName(step *flow.Step) string {
	if step == nil {
		return "default"
	}
	s := signalOf(step.ClickContext)
	for _, rule := range clickRules {
		if rule.match(s) {
			return rule.name
		}
	}
	return "default"
}
