// Package flow handles parsing and representation of recorded flow traces.
package flow

import (
	"math"
	"strconv"
	"strings"
)

// StepType is the structural kind of a recorded step.
type StepType string

// Step types the pipeline reacts to. Other values pass through untouched.
const (
	StepImage   StepType = "IMAGE"
	StepChapter StepType = "CHAPTER"
)

// EventType is the kind of a captured runtime event.
type EventType string

// Event types emitted by the recorder.
const (
	EventClick     EventType = "click"
	EventTyping    EventType = "typing"
	EventScrolling EventType = "scrolling"
	EventDragging  EventType = "dragging"
)

// Flow represents a parsed flow.json document.
type Flow struct {
	SourcePath     string  `json:"-"`
	Name           string  `json:"name"`
	Steps          []Step  `json:"steps"`
	CapturedEvents []Event `json:"capturedEvents"`
}

// Step is a structural waypoint of the flow. Context fields are optional.
type Step struct {
	ID           string        `json:"id"`
	Type         StepType      `json:"type"`
	Title        string        `json:"title"`
	Subtitle     string        `json:"subtitle"`
	PageContext  *PageContext  `json:"pageContext"`
	ClickContext *ClickContext `json:"clickContext"`
	Hotspots     []Hotspot     `json:"hotspots"`
}

// PageContext describes the page a step was captured on.
type PageContext struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ClickContext describes the element a click landed on.
type ClickContext struct {
	ElementType string `json:"elementType"`
	Text        string `json:"text"`
	CSSSelector string `json:"cssSelector"`
}

// Hotspot is a labeled clickable region of an image step.
type Hotspot struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Event is a single captured action. Clicks carry TimeMs, typing and
// scrolling carry StartTimeMs; either may be missing.
type Event struct {
	Type        EventType `json:"type"`
	TimeMs      Millis    `json:"timeMs"`
	StartTimeMs Millis    `json:"startTimeMs"`
	ClickID     string    `json:"clickId"`
}

// IsEmpty reports whether the click context carries no usable signal.
func (c *ClickContext) IsEmpty() bool {
	if c == nil {
		return true
	}
	return strings.TrimSpace(c.ElementType) == "" &&
		strings.TrimSpace(c.Text) == "" &&
		strings.TrimSpace(c.CSSSelector) == ""
}

// Page returns the page title and url, empty when the step has no page context.
func (s *Step) Page() (title, url string) {
	if s == nil || s.PageContext == nil {
		return "", ""
	}
	return s.PageContext.Title, s.PageContext.URL
}

// FirstHotspotLabel returns the label of the first hotspot, if any.
func (s *Step) FirstHotspotLabel() string {
	if s == nil || len(s.Hotspots) == 0 {
		return ""
	}
	return strings.TrimSpace(s.Hotspots[0].Label)
}

// DisplayName returns the trimmed flow name or fallback when it is blank.
func (f *Flow) DisplayName(fallback string) string {
	if f == nil {
		return fallback
	}
	if name := strings.TrimSpace(f.Name); name != "" {
		return name
	}
	return fallback
}

// FirstChapterSubtitle returns the trimmed subtitle of the first chapter step
// with a non-empty subtitle. The search stops there even when the trimmed
// value turns out blank.
func (f *Flow) FirstChapterSubtitle() string {
	if f == nil {
		return ""
	}
	for _, s := range f.Steps {
		if s.Type == StepChapter && s.Subtitle != "" {
			return strings.TrimSpace(s.Subtitle)
		}
	}
	return ""
}

// Millis is a millisecond timestamp decoded leniently: numbers and numeric
// strings are accepted, anything else (null, garbage) reads as absent.
type Millis struct {
	value float64
	set   bool
}

// NewMillis returns a present timestamp.
func NewMillis(v float64) Millis {
	return Millis{value: v, set: true}
}

// Value returns the timestamp and whether it was present.
func (m Millis) Value() (float64, bool) {
	return m.value, m.set
}

// UnmarshalJSON never fails so that one odd timestamp cannot reject a flow.
func (m *Millis) UnmarshalJSON(data []byte) error {
	*m = Millis{}
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	*m = Millis{value: v, set: true}
	return nil
}

// MarshalJSON writes the number or null.
func (m Millis) MarshalJSON() ([]byte, error) {
	if !m.set {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(m.value, 'f', -1, 64)), nil
}
