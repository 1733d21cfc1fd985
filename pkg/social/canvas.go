package social

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/devicelab-dev/flowdigest/pkg/core"
	"golang.org/x/image/draw"
)

// Letterbox scales src to fit a width x height canvas filled with bg,
// preserving its aspect ratio, and centers it. The scaled side is truncated
// to whole pixels.
func Letterbox(src image.Image, width, height int, bg color.Color) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	sb := src.Bounds()
	if sb.Dx() == 0 || sb.Dy() == 0 {
		return canvas
	}

	w, h := fitSize(sb.Dx(), sb.Dy(), width, height)
	x := (width - w) / 2
	y := (height - h) / 2
	draw.CatmullRom.Scale(canvas, image.Rect(x, y, x+w, y+h), src, sb, draw.Over, nil)
	return canvas
}

// fitSize returns the largest size with the source's aspect ratio that fits
// the target, truncating the scaled side.
func fitSize(srcW, srcH, width, height int) (int, int) {
	srcRatio := float64(srcW) / float64(srcH)
	targetRatio := float64(width) / float64(height)

	var w, h int
	if srcRatio > targetRatio {
		w = width
		h = int(float64(w) / srcRatio)
	} else {
		h = height
		w = int(float64(h) * srcRatio)
	}
	return max(w, 1), max(h, 1)
}

// ParseHexColor parses "#RRGGBB" or "#RGB" (the leading # is optional).
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, core.ErrInvalidConfig.WithMessage(fmt.Sprintf("invalid color %q", s))
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, core.ErrInvalidConfig.WithMessage(fmt.Sprintf("invalid color %q", s)).WithCause(err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
