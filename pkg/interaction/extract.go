package interaction

import (
	"sort"

	"github.com/devicelab-dev/flowdigest/pkg/flow"
)

// Extract produces the time-ordered interactions of a flow. It is pure and
// total: missing or malformed optional fields degrade to defaults and never
// cause an error. The flow is not modified.
func Extract(f *flow.Flow) []Interaction {
	if f == nil {
		return []Interaction{}
	}

	stepsByID := IndexSteps(f.Steps)
	events := SortEvents(f.CapturedEvents)

	interactions := make([]Interaction, 0, len(events))
	lastScrolled := false
	for _, ev := range events {
		switch ev.Type {
		case flow.EventTyping:
			interactions = append(interactions, New(KindTyping, DescTyped, "", ""))
			lastScrolled = false

		case flow.EventScrolling:
			// consecutive scrolls collapse into one
			if !lastScrolled {
				interactions = append(interactions, New(KindScrolling, DescScrolled, "", ""))
				lastScrolled = true
			}

		case flow.EventClick:
			interactions = append(interactions, describeClick(stepsByID[ev.ClickID]))
			lastScrolled = false

		default:
			// dragging and unknown types are not interactions and leave the
			// scroll cursor untouched
		}
	}

	return interactions
}

func describeClick(step *flow.Step) Interaction {
	if step == nil || step.Type != flow.StepImage {
		return New(KindClick, DescClicked, "", "")
	}
	if !step.ClickContext.IsEmpty() {
		return Classify(step)
	}

	title, url := step.Page()
	if label := step.FirstHotspotLabel(); label != "" {
		return New(KindHint, label, title, url)
	}
	return New(KindClick, DescClicked, title, url)
}

// IndexSteps maps step ids to steps. Steps without an id are skipped; on
// duplicate ids the last step wins.
func IndexSteps(steps []flow.Step) map[string]*flow.Step {
	byID := make(map[string]*flow.Step, len(steps))
	for i := range steps {
		if steps[i].ID == "" {
			continue
		}
		byID[steps[i].ID] = &steps[i]
	}
	return byID
}

// EventTime is the sort key of an event: timeMs when present and non-zero,
// else startTimeMs, else 0. Clicks carry timeMs while typing and scrolling
// carry startTimeMs, so both fields share one timeline.
func EventTime(ev flow.Event) float64 {
	if v, ok := ev.TimeMs.Value(); ok && v != 0 {
		return v
	}
	if v, ok := ev.StartTimeMs.Value(); ok && v != 0 {
		return v
	}
	return 0
}

// SortEvents returns a copy of events in EventTime order. The sort is
// stable: events with equal or missing timestamps keep their input order.
func SortEvents(events []flow.Event) []flow.Event {
	sorted := make([]flow.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return EventTime(sorted[i]) < EventTime(sorted[j])
	})
	return sorted
}
