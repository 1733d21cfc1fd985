package social

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/devicelab-dev/flowdigest/pkg/core"
	"github.com/devicelab-dev/flowdigest/pkg/flow"
	"github.com/devicelab-dev/flowdigest/pkg/interaction"
	"go.uber.org/zap"
)

type fakeImages struct {
	data   []byte
	err    error
	prompt string
}

func (f *fakeImages) GenerateImage(_ context.Context, prompt string) ([]byte, error) {
	f.prompt = prompt
	return f.data, f.err
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func newTestGenerator(images ImageGenerator) *Generator {
	g := NewGenerator(images)
	g.Logger = zap.NewNop()
	return g
}

func TestGenerate_WritesLetterboxedPNG(t *testing.T) {
	images := &fakeImages{data: encodePNG(t, solid(32, 32, color.RGBA{G: 200, A: 255}))}
	g := newTestGenerator(images)
	out := filepath.Join(t.TempDir(), "nested", "social.png")

	f := &flow.Flow{Name: "Buy a scooter"}
	interactions := []interaction.Interaction{
		interaction.New(interaction.KindTyping, interaction.DescTyped, "", ""),
	}
	if err := g.Generate(context.Background(), f, interactions, out); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !strings.Contains(images.prompt, "a search bar") || !strings.HasSuffix(images.prompt, "Narrative hint: Buy a scooter.") {
		t.Errorf("unexpected prompt %q", images.prompt)
	}

	file, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != DefaultWidth || b.Dy() != DefaultHeight {
		t.Errorf("output is %dx%d, want %dx%d", b.Dx(), b.Dy(), DefaultWidth, DefaultHeight)
	}
	if !near(img.At(0, 0), DefaultBackground) {
		t.Errorf("corner = %v, want background", img.At(0, 0))
	}
}

func TestGenerate_CustomCanvas(t *testing.T) {
	images := &fakeImages{data: encodePNG(t, solid(10, 10, color.White))}
	g := newTestGenerator(images)
	g.Width, g.Height = 300, 100
	g.Background = color.RGBA{A: 255}
	g.Narrative = "Shopping"
	out := filepath.Join(t.TempDir(), "social.png")

	if err := g.Generate(context.Background(), &flow.Flow{}, nil, out); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.HasSuffix(images.prompt, "Narrative hint: Shopping.") {
		t.Errorf("expected narrative override, got %q", images.prompt)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 100 {
		t.Errorf("output is %v, want 300x100", b)
	}
	if !near(img.At(10, 50), color.RGBA{A: 255}) {
		t.Errorf("left margin = %v, want black", img.At(10, 50))
	}
}

func TestGenerate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		images ImageGenerator
		want   error
	}{
		{"no generator", nil, core.ErrMissingAPIKey},
		{"generation error", &fakeImages{err: core.ErrImageGeneration.WithMessage("status 400")}, core.ErrImageGeneration},
		{"undecodable payload", &fakeImages{data: []byte("definitely not an image")}, core.ErrImageDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGenerator(tt.images)
			out := filepath.Join(t.TempDir(), "social.png")

			err := g.Generate(context.Background(), &flow.Flow{}, nil, out)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
				t.Error("no output file expected on failure")
			}
		})
	}
}

func TestGenerate_UnwritableOutput(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	g := newTestGenerator(&fakeImages{data: encodePNG(t, solid(4, 4, color.White))})
	err := g.Generate(context.Background(), &flow.Flow{}, nil, filepath.Join(blocker, "social.png"))
	if !errors.Is(err, core.ErrWriteOutput) {
		t.Errorf("expected ErrWriteOutput, got %v", err)
	}
}
