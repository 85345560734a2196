package asset

import (
	"image"
	"math"

	"github.com/gogpu/gg"
)

// Built-in indicator geometry, in logical pixels.
const (
	builtinSize   = 200
	builtinFrames = 8
	ringRadius    = 78.0
	ringWidth     = 14.0
)

// DefaultLayerSet draws the stock unlock indicator: a ring whose tint
// follows the verification state, arc-segment highlights as animation
// frames, and a counter-clockwise highlight for backspace. Used when no
// external asset is configured.
func DefaultLayerSet() *LayerSet {
	center := float64(builtinSize) / 2

	layers := map[string]image.Image{
		LayerBG: drawLayer(func(dc *gg.Context) {
			dc.SetRGBA(0, 0, 0, 0.55)
			dc.DrawCircle(center, center, ringRadius+ringWidth)
			_ = dc.Fill()
		}),
		LayerIdle: drawLayer(func(dc *gg.Context) {
			strokeRing(dc, center, 0.85, 0.85, 0.85)
		}),
		LayerVerify: drawLayer(func(dc *gg.Context) {
			strokeRing(dc, center, 0.25, 0.55, 0.95)
		}),
		LayerFail: drawLayer(func(dc *gg.Context) {
			strokeRing(dc, center, 0.90, 0.25, 0.25)
		}),
		LayerBackspace: drawLayer(func(dc *gg.Context) {
			dc.SetRGBA(0.95, 0.60, 0.15, 1)
			dc.SetLineWidth(ringWidth + 4)
			dc.DrawArc(center, center, ringRadius, math.Pi*0.75, math.Pi*1.25)
			_ = dc.Stroke()
		}),
		LayerFG: drawLayer(func(dc *gg.Context) {
			dc.SetRGBA(1, 1, 1, 0.9)
			dc.SetLineWidth(2)
			dc.DrawCircle(center, center, ringRadius+ringWidth/2+3)
			_ = dc.Stroke()
			dc.DrawCircle(center, center, ringRadius-ringWidth/2-3)
			_ = dc.Stroke()
		}),
		MarkerSequential: nil,
	}

	// One highlight wedge per frame, marching clockwise around the ring.
	span := 2 * math.Pi / builtinFrames
	for i := 0; i < builtinFrames; i++ {
		start := -math.Pi/2 + float64(i)*span
		layers[AnimLayerName(i)] = drawLayer(func(dc *gg.Context) {
			dc.SetRGBA(0.55, 0.90, 0.45, 1)
			dc.SetLineWidth(ringWidth + 4)
			dc.DrawArc(center, center, ringRadius, start, start+span*0.8)
			_ = dc.Stroke()
		})
	}

	return NewLayerSet(builtinSize, builtinSize, layers)
}

func strokeRing(dc *gg.Context, center, r, g, b float64) {
	dc.SetRGBA(r, g, b, 1)
	dc.SetLineWidth(ringWidth)
	dc.DrawCircle(center, center, ringRadius)
	_ = dc.Stroke()
}

func drawLayer(draw func(dc *gg.Context)) image.Image {
	dc := gg.NewContext(builtinSize, builtinSize)
	draw(dc)
	return dc.Image()
}
