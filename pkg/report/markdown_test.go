package report

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/devicelab-dev/flowdigest/pkg/core"
	"github.com/devicelab-dev/flowdigest/pkg/interaction"
)

func sampleInteractions() []interaction.Interaction {
	return []interaction.Interaction{
		interaction.New(interaction.KindScrolling, "Scrolled the page", "", ""),
		interaction.New(interaction.KindClick, "Clicked 'Add to Bag' button", "Home", "https://x"),
	}
}

func TestRenderInteractions(t *testing.T) {
	got := RenderInteractions(sampleInteractions())
	want := "# Interactions\n\n- Scrolled the page\n- Clicked 'Add to Bag' button\n"
	if got != want {
		t.Errorf("RenderInteractions() = %q, want %q", got, want)
	}
}

func TestRenderInteractions_Empty(t *testing.T) {
	if got := RenderInteractions(nil); got != "# Interactions\n\n" {
		t.Errorf("RenderInteractions(nil) = %q", got)
	}
}

func TestRenderSummary(t *testing.T) {
	got := RenderSummary("  The user bought a scooter.\n")
	want := "# Summary of what the user was trying to accomplish:\n\nThe user bought a scooter.\n"
	if got != want {
		t.Errorf("RenderSummary() = %q, want %q", got, want)
	}
}

func TestWriteInteractions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "interactions.md")

	if err := WriteInteractions(path, sampleInteractions()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != RenderInteractions(sampleInteractions()) {
		t.Errorf("file content mismatch: %q", data)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("expected only the output file, found %d entries", len(entries))
	}
}

func TestWriteSummary_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.md")
	if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := WriteSummary(path, "New summary."); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != RenderSummary("New summary.") {
		t.Errorf("expected summary to be overwritten, got %q", data)
	}
}

func TestWriteSummary_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	err := WriteSummary(filepath.Join(blocker, "summary.md"), "text")
	if err == nil {
		t.Fatal("expected error when parent is a file")
	}
	if !errors.Is(err, core.ErrWriteOutput) {
		t.Errorf("expected ErrWriteOutput, got %v", err)
	}
}
