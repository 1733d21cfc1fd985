package flow

import "testing"

func TestClickContext_IsEmpty(t *testing.T) {
	tests := []struct {
		name string
		ctx  *ClickContext
		want bool
	}{
		{"nil", nil, true},
		{"zero", &ClickContext{}, true},
		{"whitespace only", &ClickContext{Text: "  ", CSSSelector: "\t"}, true},
		{"element type", &ClickContext{ElementType: "button"}, false},
		{"selector", &ClickContext{CSSSelector: "#search"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ctx.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFlow_DisplayName(t *testing.T) {
	if got := (&Flow{Name: "  Checkout  "}).DisplayName("User Flow"); got != "Checkout" {
		t.Errorf("expected trimmed name, got %q", got)
	}
	if got := (&Flow{Name: " "}).DisplayName("User Flow"); got != "User Flow" {
		t.Errorf("expected fallback, got %q", got)
	}
	var nilFlow *Flow
	if got := nilFlow.DisplayName("Arcade Flow"); got != "Arcade Flow" {
		t.Errorf("expected fallback for nil flow, got %q", got)
	}
}

func TestFlow_FirstChapterSubtitle(t *testing.T) {
	f := &Flow{Steps: []Step{
		{ID: "a", Type: StepImage, Subtitle: "not a chapter"},
		{ID: "b", Type: StepChapter},
		{ID: "c", Type: StepChapter, Subtitle: " Buy a scooter "},
		{ID: "d", Type: StepChapter, Subtitle: "Later chapter"},
	}}

	if got := f.FirstChapterSubtitle(); got != "Buy a scooter" {
		t.Errorf("expected first chapter subtitle, got %q", got)
	}
	if got := (&Flow{}).FirstChapterSubtitle(); got != "" {
		t.Errorf("expected empty subtitle, got %q", got)
	}
}

func TestFlow_FirstChapterSubtitle_StopsAtWhitespace(t *testing.T) {
	f := &Flow{Steps: []Step{
		{ID: "a", Type: StepChapter, Subtitle: "   "},
		{ID: "b", Type: StepChapter, Subtitle: "Buy a scooter"},
	}}

	if got := f.FirstChapterSubtitle(); got != "" {
		t.Errorf("expected search to stop at the whitespace subtitle, got %q", got)
	}
}

func TestStep_PageWithoutContext(t *testing.T) {
	title, url := (&Step{ID: "x"}).Page()
	if title != "" || url != "" {
		t.Errorf("expected empty page context, got %q/%q", title, url)
	}
}

func TestStep_FirstHotspotLabelOnlyLooksAtFirst(t *testing.T) {
	s := &Step{Hotspots: []Hotspot{{ID: "1"}, {ID: "2", Label: "Second"}}}
	if got := s.FirstHotspotLabel(); got != "" {
		t.Errorf("expected empty label from first hotspot, got %q", got)
	}
}

func TestMillis_MarshalJSON(t *testing.T) {
	b, _ := NewMillis(12.5).MarshalJSON()
	if string(b) != "12.5" {
		t.Errorf("expected 12.5, got %s", b)
	}
	b, _ = Millis{}.MarshalJSON()
	if string(b) != "null" {
		t.Errorf("expected null, got %s", b)
	}
}
