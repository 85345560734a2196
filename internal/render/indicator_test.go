package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"

	"github.com/shadeos/shade/internal/anim"
	"github.com/shadeos/shade/internal/asset"
	"github.com/shadeos/shade/internal/geo"
	"github.com/shadeos/shade/internal/render/layout"
	"github.com/shadeos/shade/internal/state"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Background = color.RGBA{R: 0x20, G: 0x30, B: 0x40, A: 0xFF}
	return cfg
}

func newTestCompositor(cfg Config, topology geo.Provider) *Compositor {
	return NewCompositor(cfg, asset.DefaultLayerSet(), anim.NewSelector(anim.Sequential{}), topology)
}

// sameColor compares with a small tolerance for rounding in the
// compositing pipeline.
func sameColor(a, b color.Color) bool {
	ar, ag, ab, _ := a.RGBA()
	br, bg, bb, _ := b.RGBA()
	const tol = 0x300
	diff := func(x, y uint32) uint32 {
		if x > y {
			return x - y
		}
		return y - x
	}
	return diff(ar, br) <= tol && diff(ag, bg) <= tol && diff(ab, bb) <= tol
}

func TestRenderIsIdempotent(t *testing.T) {
	comp := newTestCompositor(testConfig(), geo.Static{})
	snap := state.State{Unlock: state.KeyActive, Pam: state.PamVerify, Input: 2}
	res := geo.Size{Width: 320, Height: 200}

	first, err := comp.Render(snap, res)
	require.NoError(t, err)
	second, err := comp.Render(snap, res)
	require.NoError(t, err)

	require.Equal(t, first.Bounds(), second.Bounds())
	for y := first.Bounds().Min.Y; y < first.Bounds().Max.Y; y++ {
		for x := first.Bounds().Min.X; x < first.Bounds().Max.X; x++ {
			r1, g1, b1, a1 := first.At(x, y).RGBA()
			r2, g2, b2, a2 := second.At(x, y).RGBA()
			if r1 != r2 || g1 != g2 || b1 != b2 || a1 != a2 {
				t.Fatalf("pixel (%d,%d) differs between identical renders", x, y)
			}
		}
	}
}

func TestIndicatorHiddenWhileStarted(t *testing.T) {
	cfg := testConfig()
	comp := newTestCompositor(cfg, geo.Static{})
	snap := state.State{Unlock: state.Started, Pam: state.PamIdle}

	img, err := comp.Render(snap, geo.Size{Width: 320, Height: 200})
	require.NoError(t, err)

	for _, p := range []image.Point{{160, 100}, {10, 10}, {310, 190}} {
		assert.True(t, sameColor(cfg.Background, img.At(p.X, p.Y)),
			"pixel %v should be bare background", p)
	}
}

func TestIndicatorShownWhileStartedWhenConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.ShowWhenEmpty = true
	comp := newTestCompositor(cfg, geo.Static{})
	snap := state.State{Unlock: state.Started, Pam: state.PamIdle}

	img, err := comp.Render(snap, geo.Size{Width: 320, Height: 200})
	require.NoError(t, err)

	assert.False(t, sameColor(cfg.Background, img.At(160, 100)),
		"indicator center should be composited over the background")
}

func TestIndicatorDisabledEntirely(t *testing.T) {
	cfg := testConfig()
	cfg.Indicator = false
	comp := newTestCompositor(cfg, geo.Static{})
	snap := state.State{Unlock: state.KeyActive, Pam: state.PamWrong, Input: 3}

	img, err := comp.Render(snap, geo.Size{Width: 320, Height: 200})
	require.NoError(t, err)
	assert.True(t, sameColor(cfg.Background, img.At(160, 100)))
}

func TestRenderCentersWithinEachRegion(t *testing.T) {
	regions := []geo.Region{
		{X: 0, Y: 0, Width: 1920, Height: 1080},
		{X: 1920, Y: 0, Width: 1080, Height: 1920},
	}
	cfg := testConfig()
	comp := newTestCompositor(cfg, geo.Static{Rs: regions})
	snap := state.State{Unlock: state.KeyPressed, Pam: state.PamIdle, Input: 1}

	img, err := comp.Render(snap, geo.Size{Width: 3000, Height: 1920})
	require.NoError(t, err)

	for _, region := range regions {
		rect := layout.CenterIn(region.Rect(), 200, 200)
		assert.True(t, rect.In(region.Rect()), "indicator must stay inside its region")

		center := rect.Min.Add(rect.Max).Div(2)
		assert.False(t, sameColor(cfg.Background, img.At(center.X, center.Y)),
			"region %+v center should carry the indicator", region)

		// Just outside the indicator placement stays background.
		assert.True(t, sameColor(cfg.Background, img.At(rect.Min.X-5, rect.Min.Y-5)))
	}

	// The seam between the regions carries no indicator.
	assert.True(t, sameColor(cfg.Background, img.At(1920, 960)))
}

func TestRenderFallsBackToFullResolutionWithoutRegions(t *testing.T) {
	cfg := testConfig()
	comp := newTestCompositor(cfg, geo.Static{})
	snap := state.State{Unlock: state.KeyPressed, Pam: state.PamIdle, Input: 1}

	img, err := comp.Render(snap, geo.Size{Width: 640, Height: 480})
	require.NoError(t, err)
	assert.False(t, sameColor(cfg.Background, img.At(320, 240)))
	assert.True(t, sameColor(cfg.Background, img.At(20, 20)))
}

func TestDPIScaleGrowsTheIndicator(t *testing.T) {
	cfg := testConfig()
	snap := state.State{Unlock: state.KeyPressed, Pam: state.PamIdle, Input: 1}
	res := geo.Size{Width: 1000, Height: 1000}

	unscaled := newTestCompositor(cfg, geo.Static{Factor: 1})
	img1, err := unscaled.Render(snap, res)
	require.NoError(t, err)

	scaled := newTestCompositor(cfg, geo.Static{Factor: 2})
	img2, err := scaled.Render(snap, res)
	require.NoError(t, err)

	// Point 150px left of center: outside a 200px widget, inside a
	// 400px one.
	probe := image.Pt(350, 500)
	assert.True(t, sameColor(cfg.Background, img1.At(probe.X, probe.Y)))
	assert.False(t, sameColor(cfg.Background, img2.At(probe.X, probe.Y)))
}

func TestTiledWallpaperCoversSurface(t *testing.T) {
	wall := image.NewRGBA(image.Rect(0, 0, 10, 10))
	red := color.RGBA{R: 0xFF, A: 0xFF}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			wall.SetRGBA(x, y, red)
		}
	}

	cfg := testConfig()
	cfg.Wallpaper = wall
	cfg.Tile = true
	comp := newTestCompositor(cfg, geo.Static{})
	snap := state.State{Unlock: state.Started, Pam: state.PamIdle}

	img, err := comp.Render(snap, geo.Size{Width: 320, Height: 200})
	require.NoError(t, err)
	for _, p := range []image.Point{{5, 5}, {315, 195}, {123, 77}} {
		assert.True(t, sameColor(red, img.At(p.X, p.Y)), "tile should cover %v", p)
	}
}

func TestFittedWallpaperLetterboxes(t *testing.T) {
	wall := image.NewRGBA(image.Rect(0, 0, 100, 100))
	blue := color.RGBA{B: 0xFF, A: 0xFF}
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			wall.SetRGBA(x, y, blue)
		}
	}

	cfg := testConfig()
	cfg.Wallpaper = wall
	comp := newTestCompositor(cfg, geo.Static{})
	snap := state.State{Unlock: state.Started, Pam: state.PamIdle}

	// Square source on a 320x200 surface: 200x200 centered, flat fill
	// showing at the sides.
	img, err := comp.Render(snap, geo.Size{Width: 320, Height: 200})
	require.NoError(t, err)
	assert.True(t, sameColor(blue, img.At(160, 100)))
	assert.True(t, sameColor(cfg.Background, img.At(10, 100)))
	assert.True(t, sameColor(cfg.Background, img.At(310, 100)))
}

func TestFailedAttemptsLineRendered(t *testing.T) {
	cfg := testConfig()
	cfg.Face = basicfont.Face7x13
	comp := newTestCompositor(cfg, geo.Static{})
	snap := state.State{Unlock: state.KeyPressed, Pam: state.PamWrong, Input: 1, FailedAttempts: 2}

	img, err := comp.Render(snap, geo.Size{Width: 640, Height: 480})
	require.NoError(t, err)

	// The indicator occupies (220,140)-(420,340); the counter sits in a
	// band under it. Look for any near-white text pixel there.
	white := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	found := false
	for y := 340; y < 400 && !found; y++ {
		for x := 200; x < 440 && !found; x++ {
			if sameColor(white, img.At(x, y)) {
				found = true
			}
		}
	}
	assert.True(t, found, "failed-attempts text should appear under the indicator")
}

func TestRenderRejectsBadResolution(t *testing.T) {
	comp := newTestCompositor(testConfig(), geo.Static{})
	_, err := comp.Render(state.State{}, geo.Size{Width: 0, Height: 100})
	assert.Error(t, err)
	_, err = comp.Render(state.State{}, geo.Size{Width: 100, Height: -1})
	assert.Error(t, err)
}
