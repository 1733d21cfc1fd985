package social

import (
	"bytes"
	"context"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"

	"github.com/devicelab-dev/flowdigest/pkg/core"
	"github.com/devicelab-dev/flowdigest/pkg/flow"
	"github.com/devicelab-dev/flowdigest/pkg/interaction"
	"github.com/devicelab-dev/flowdigest/pkg/logger"
	"github.com/devicelab-dev/flowdigest/pkg/report"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
)

// Canvas defaults.
const (
	DefaultWidth  = 1200
	DefaultHeight = 630
)

// DefaultBackground is the neutral canvas fill.
var DefaultBackground = color.RGBA{R: 250, G: 250, B: 253, A: 0xff}

// ImageGenerator produces image bytes (PNG, JPEG or WebP) for a prompt.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// Generator renders the social image for a flow.
type Generator struct {
	Images     ImageGenerator
	Width      int
	Height     int
	Background color.Color
	// Narrative overrides the flow name as the prompt's narrative hint.
	Narrative string
	Logger    *zap.Logger
}

// NewGenerator creates a generator with the default canvas.
func NewGenerator(images ImageGenerator) *Generator {
	return &Generator{
		Images:     images,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Background: DefaultBackground,
		Logger:     logger.L(),
	}
}

// Generate builds the prompt, requests an image, letterboxes it and writes
// it as PNG to outPath. Every failure is returned to the caller.
func (g *Generator) Generate(ctx context.Context, f *flow.Flow, interactions []interaction.Interaction, outPath string) error {
	if g.Images == nil {
		return core.ErrMissingAPIKey
	}
	log := g.Logger
	if log == nil {
		log = logger.L()
	}

	prompt := BuildPrompt(f, interactions, g.Narrative)
	log.Debug("requesting social image", zap.Int("promptLength", len(prompt)))

	raw, err := g.Images.GenerateImage(ctx, prompt)
	if err != nil {
		return err
	}

	src, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return core.ErrImageDecode.WithCause(err)
	}
	log.Debug("decoded generated image",
		zap.String("format", format),
		zap.Int("width", src.Bounds().Dx()),
		zap.Int("height", src.Bounds().Dy()))

	width, height := g.Width, g.Height
	if width <= 0 || height <= 0 {
		width, height = DefaultWidth, DefaultHeight
	}
	bg := g.Background
	if bg == nil {
		bg = DefaultBackground
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, Letterbox(src, width, height, bg)); err != nil {
		return core.ErrWriteOutput.WithCause(err)
	}
	if err := report.WriteFile(outPath, buf.Bytes()); err != nil {
		return err
	}

	log.Info("social image written", zap.String("path", outPath))
	return nil
}
