package flow

import (
	"bytes"

	json "github.com/json-iterator/go"
)

// text is a string field decoded leniently: numbers and booleans keep their
// literal spelling, anything else (null, objects, arrays) reads as empty.
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	*t = ""
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch c := data[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			*t = text(s)
		}
	case c == '-' || (c >= '0' && c <= '9'):
		*t = text(data)
	case bytes.Equal(data, []byte("true")) || bytes.Equal(data, []byte("false")):
		*t = text(data)
	}
	return nil
}

// isObject reports whether data holds a JSON object. Optional nested values
// of any other shape decode to their zero value.
func isObject(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '{'
}

type rawFlow struct {
	Name           text    `json:"name"`
	Steps          []Step  `json:"steps"`
	CapturedEvents []Event `json:"capturedEvents"`
}

// UnmarshalJSON decodes a flow document. The top level must be an object;
// the name is decoded leniently.
func (f *Flow) UnmarshalJSON(data []byte) error {
	var raw rawFlow
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	f.Name = string(raw.Name)
	f.Steps = raw.Steps
	f.CapturedEvents = raw.CapturedEvents
	return nil
}

type rawStep struct {
	ID           text          `json:"id"`
	Type         text          `json:"type"`
	Title        text          `json:"title"`
	Subtitle     text          `json:"subtitle"`
	PageContext  *PageContext  `json:"pageContext"`
	ClickContext *ClickContext `json:"clickContext"`
	Hotspots     []Hotspot     `json:"hotspots"`
}

// UnmarshalJSON decodes a step, reading mistyped scalars leniently.
func (s *Step) UnmarshalJSON(data []byte) error {
	*s = Step{}
	if !isObject(data) {
		return nil
	}
	var raw rawStep
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Step{
		ID:           string(raw.ID),
		Type:         StepType(raw.Type),
		Title:        string(raw.Title),
		Subtitle:     string(raw.Subtitle),
		PageContext:  raw.PageContext,
		ClickContext: raw.ClickContext,
		Hotspots:     raw.Hotspots,
	}
	return nil
}

type rawPageContext struct {
	Title text `json:"title"`
	URL   text `json:"url"`
}

func (p *PageContext) UnmarshalJSON(data []byte) error {
	*p = PageContext{}
	if !isObject(data) {
		return nil
	}
	var raw rawPageContext
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = PageContext{Title: string(raw.Title), URL: string(raw.URL)}
	return nil
}

type rawClickContext struct {
	ElementType text `json:"elementType"`
	Text        text `json:"text"`
	CSSSelector text `json:"cssSelector"`
}

func (c *ClickContext) UnmarshalJSON(data []byte) error {
	*c = ClickContext{}
	if !isObject(data) {
		return nil
	}
	var raw rawClickContext
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = ClickContext{
		ElementType: string(raw.ElementType),
		Text:        string(raw.Text),
		CSSSelector: string(raw.CSSSelector),
	}
	return nil
}

type rawHotspot struct {
	ID    text `json:"id"`
	Label text `json:"label"`
}

func (h *Hotspot) UnmarshalJSON(data []byte) error {
	*h = Hotspot{}
	if !isObject(data) {
		return nil
	}
	var raw rawHotspot
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*h = Hotspot{ID: string(raw.ID), Label: string(raw.Label)}
	return nil
}

type rawEvent struct {
	Type        text   `json:"type"`
	TimeMs      Millis `json:"timeMs"`
	StartTimeMs Millis `json:"startTimeMs"`
	ClickID     text   `json:"clickId"`
}

// UnmarshalJSON decodes an event. A non-string type keeps its literal
// spelling and so matches none of the known event types.
func (e *Event) UnmarshalJSON(data []byte) error {
	*e = Event{}
	if !isObject(data) {
		return nil
	}
	var raw rawEvent
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = Event{
		Type:        EventType(raw.Type),
		TimeMs:      raw.TimeMs,
		StartTimeMs: raw.StartTimeMs,
		ClickID:     string(raw.ClickID),
	}
	return nil
}
