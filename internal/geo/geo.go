// Package geo describes display topology: where the physical outputs
// are and how much the indicator must be scaled for their DPI.
package geo

import "image"

// Region is one physical display area, in pixels, relative to the
// origin of the whole output surface.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Rect converts the region to an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Size is an output resolution in pixels.
type Size struct {
	Width  int
	Height int
}

// Provider reports the current display topology. It is queried fresh on
// every redraw; the topology can change between frames (monitor
// hot-plug), so results must never be cached by callers.
type Provider interface {
	// Regions returns the ordered display regions, in enumeration
	// order. An empty slice means the topology is unknown and the
	// caller should center once within the full resolution.
	Regions() []Region

	// Scale is the DPI scaling factor applied to the indicator.
	Scale() float64
}

// ScaleFactor computes the DPI scaling factor from a panel's physical
// dimensions: height_px * 25.4 / height_mm yields DPI, normalized
// against the 96 DPI baseline. Unknown physical size yields 1.
func ScaleFactor(heightPx, heightMM int) float64 {
	if heightPx <= 0 || heightMM <= 0 {
		return 1
	}
	dpi := float64(heightPx) * 25.4 / float64(heightMM)
	return dpi / 96.0
}

// Static serves a fixed topology. Suits single-framebuffer setups and
// tests.
type Static struct {
	Rs     []Region
	Factor float64
}

func (s Static) Regions() []Region { return s.Rs }

func (s Static) Scale() float64 {
	if s.Factor <= 0 {
		return 1
	}
	return s.Factor
}

// Func re-fetches the topology through callbacks on every query, for
// backends whose region list can change at runtime.
type Func struct {
	RegionsFn func() []Region
	ScaleFn   func() float64
}

func (f Func) Regions() []Region {
	if f.RegionsFn == nil {
		return nil
	}
	return f.RegionsFn()
}

func (f Func) Scale() float64 {
	if f.ScaleFn == nil {
		return 1
	}
	return f.ScaleFn()
}
