package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/devicelab-dev/flowdigest/pkg/interaction"
)

func TestWriteHTML(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "social.png")
	if err := os.WriteFile(imgPath, []byte("png-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "digest.html")

	err := WriteHTML(Digest{
		FlowName: "Scooter <Shop>",
		Summary:  "  The user bought a scooter.  ",
		Interactions: []interaction.Interaction{
			interaction.New(interaction.KindClick, "Clicked 'Add to cart' button", "Cart", "https://shop.example/cart"),
			interaction.New(interaction.KindScrolling, interaction.DescScrolled, "", ""),
		},
		GeneratedAt: time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
	}, HTMLConfig{OutputPath: out, ImagePath: imgPath})
	if err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	html := string(data)

	for _, want := range []string{
		"<title>Flow Digest</title>",
		"Scooter &lt;Shop&gt;",
		"Generated 2024-05-01 10:30:00",
		"<p>The user bought a scooter.</p>",
		`src="data:image/png;base64,cG5nLWJ5dGVz"`,
		`<a href="https://shop.example/cart">Cart</a>`,
		"Clicked &#39;Add to cart&#39; button",
		`kind-scrolling`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("html missing %q", want)
		}
	}
}

func TestWriteHTML_NoImageNoInteractions(t *testing.T) {
	out := filepath.Join(t.TempDir(), "digest.html")
	err := WriteHTML(Digest{FlowName: "Empty"}, HTMLConfig{
		OutputPath: out,
		Title:      "Custom",
		ImagePath:  filepath.Join(t.TempDir(), "missing.png"),
	})
	if err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}

	data, _ := os.ReadFile(out)
	html := string(data)
	if strings.Contains(html, "<img") {
		t.Error("no image expected when the file is missing")
	}
	if !strings.Contains(html, "No interactions were recorded.") || !strings.Contains(html, "<title>Custom</title>") {
		t.Errorf("unexpected html:\n%s", html)
	}
}

func TestLoadAsBase64(t *testing.T) {
	dir := t.TempDir()
	jpg := filepath.Join(dir, "a.JPG")
	os.WriteFile(jpg, []byte("x"), 0o644)

	if got := loadAsBase64(jpg); got != "data:image/jpeg;base64,eA==" {
		t.Errorf("unexpected data url %q", got)
	}
	if got := loadAsBase64(filepath.Join(dir, "none.png")); got != "" {
		t.Errorf("expected empty string for missing file, got %q", got)
	}
}
