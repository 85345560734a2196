package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/shadeos/shade/internal/anim"
	"github.com/shadeos/shade/internal/asset"
	"github.com/shadeos/shade/internal/geo"
	"github.com/shadeos/shade/internal/render/layout"
	"github.com/shadeos/shade/internal/state"
)

const attemptsMargin = 14

// Compositor renders one full output frame per request: background,
// then the layered indicator centered within every display region. It
// holds no lock-engine state; repeated renders of the same snapshot and
// topology are pixel-identical.
type Compositor struct {
	cfg      Config
	set      *asset.LayerSet
	sel      *anim.Selector
	topology geo.Provider

	wallBuf *gg.ImageBuf

	// Fit-scaled wallpaper, rebuilt only when the resolution changes.
	fitted     *gg.ImageBuf
	fittedRect image.Rectangle
	fittedRes  geo.Size
}

func NewCompositor(cfg Config, set *asset.LayerSet, sel *anim.Selector, topology geo.Provider) *Compositor {
	return &Compositor{cfg: cfg, set: set, sel: sel, topology: topology}
}

// Render composites a frame at the given output resolution. The caller
// presents the returned image; a non-nil error leaves no partial state
// behind and the same snapshot can be retried on the next event.
func (c *Compositor) Render(snap state.State, res geo.Size) (image.Image, error) {
	if res.Width <= 0 || res.Height <= 0 {
		return nil, fmt.Errorf("render: bad resolution %dx%d", res.Width, res.Height)
	}

	dc := gg.NewContext(res.Width, res.Height)
	if err := c.paintBackground(dc, res); err != nil {
		return nil, err
	}

	if c.indicatorShown(snap) {
		buf, physW, physH := c.renderIndicator(snap)

		regions := c.topology.Regions()
		if len(regions) == 0 {
			// Topology unknown: center once within the full resolution.
			regions = []geo.Region{{Width: res.Width, Height: res.Height}}
		}
		for _, region := range regions {
			rect := layout.CenterIn(region.Rect(), physW, physH)
			dc.DrawImage(buf, float64(rect.Min.X), float64(rect.Min.Y))
			c.paintAttempts(dc, snap, rect)
		}
	}

	return dc.Image(), nil
}

func (c *Compositor) indicatorShown(snap state.State) bool {
	if !c.cfg.Indicator {
		return false
	}
	return snap.Unlock != state.Started || c.cfg.ShowWhenEmpty
}

// renderIndicator stacks the active layers into an off-screen surface
// at the DPI-scaled physical size.
func (c *Compositor) renderIndicator(snap state.State) (buf *gg.ImageBuf, physW, physH int) {
	logicalW, logicalH := c.set.Size()
	scale := c.topology.Scale()
	if scale <= 0 {
		scale = 1
	}
	physW = int(math.Ceil(float64(logicalW) * scale))
	physH = int(math.Ceil(float64(logicalH) * scale))

	dc := gg.NewContext(physW, physH)
	dc.Scale(scale, scale)
	for _, name := range ActiveLayers(snap, c.set, c.sel.Current()) {
		layer, ok := c.set.Layer(name)
		if !ok {
			continue
		}
		dc.DrawImage(layer, 0, 0)
	}
	return gg.ImageBufFromImage(dc.Image()), physW, physH
}

func (c *Compositor) paintBackground(dc *gg.Context, res geo.Size) error {
	full := image.Rect(0, 0, res.Width, res.Height)

	if c.cfg.Wallpaper == nil {
		dc.SetColor(c.cfg.Background)
		dc.DrawRectangle(0, 0, float64(res.Width), float64(res.Height))
		return dc.Fill()
	}

	bounds := c.cfg.Wallpaper.Bounds()
	if c.cfg.Tile {
		if c.wallBuf == nil {
			c.wallBuf = gg.ImageBufFromImage(c.cfg.Wallpaper)
		}
		pattern := dc.CreateImagePattern(c.wallBuf, 0, 0, bounds.Dx(), bounds.Dy())
		dc.SetFillPattern(pattern)
		dc.DrawRectangle(0, 0, float64(res.Width), float64(res.Height))
		return dc.Fill()
	}

	if c.fitted == nil || c.fittedRes != res {
		rect := layout.FitIn(full, bounds.Dx(), bounds.Dy())
		scaled := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
		xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), c.cfg.Wallpaper, bounds, xdraw.Src, nil)
		c.fitted = gg.ImageBufFromImage(scaled)
		c.fittedRect = rect
		c.fittedRes = res
	}

	// Flat fill shows through any letterboxing around the fit.
	dc.SetColor(c.cfg.Background)
	dc.DrawRectangle(0, 0, float64(res.Width), float64(res.Height))
	if err := dc.Fill(); err != nil {
		return err
	}
	dc.DrawImage(c.fitted, float64(c.fittedRect.Min.X), float64(c.fittedRect.Min.Y))
	return nil
}

// paintAttempts draws the failed-attempts line under one indicator
// placement. Requires a configured font face.
func (c *Compositor) paintAttempts(dc *gg.Context, snap state.State, indicator image.Rectangle) {
	if c.cfg.Face == nil || snap.FailedAttempts == 0 {
		return
	}
	text := fmt.Sprintf("%d wrong attempts", snap.FailedAttempts)
	if snap.FailedAttempts == 1 {
		text = "1 wrong attempt"
	}
	img := renderText(text, c.cfg.Face, color.White)
	rect := layout.Below(indicator, img.Bounds().Dx(), img.Bounds().Dy(), attemptsMargin)
	dc.DrawImage(gg.ImageBufFromImage(img), float64(rect.Min.X), float64(rect.Min.Y))
}
