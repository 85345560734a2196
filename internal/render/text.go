package render

import (
	"image"
	"image/color"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// LoadFace parses a TrueType font file for the failed-attempts line.
func LoadFace(path string, points float64) (font.Face, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ttf, err := truetype.Parse(raw)
	if err != nil {
		return nil, err
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    points,
		DPI:     96,
		Hinting: font.HintingFull,
	})
	return face, nil
}

// renderText rasterizes s into a tight RGBA image.
func renderText(s string, face font.Face, col color.Color) *image.RGBA {
	drawer := &font.Drawer{
		Src:  image.NewUniform(col),
		Face: face,
	}
	width := drawer.MeasureString(s).Ceil()
	metrics := face.Metrics()
	height := (metrics.Ascent + metrics.Descent).Ceil()
	if width <= 0 || height <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	drawer.Dst = img
	drawer.Dot = fixed.P(0, metrics.Ascent.Ceil())
	drawer.DrawString(s)
	return img
}
