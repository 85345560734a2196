package render

import (
	"encoding/hex"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
)

// Config is the locker's visual configuration. It is resolved completely
// before the event loop starts; anything malformed is a startup error,
// never a per-frame one.
type Config struct {
	// Background is the flat fill used when no wallpaper is set.
	Background color.RGBA

	// Wallpaper, when non-nil, is painted instead of the flat fill:
	// fit-scaled once, or repeated across the surface when Tile is set.
	Wallpaper image.Image
	Tile      bool

	// Indicator disables the whole widget when false.
	Indicator bool

	// ShowWhenEmpty keeps the indicator visible with an empty password
	// buffer instead of hiding it until the first keypress.
	ShowWhenEmpty bool

	// Face, when non-nil, enables the failed-attempts line under the
	// indicator.
	Face font.Face
}

// DefaultConfig matches the stock locker: black background, indicator
// enabled, hidden while the buffer is empty.
func DefaultConfig() Config {
	return Config{
		Background: color.RGBA{A: 0xFF},
		Indicator:  true,
	}
}

// ParseHexColor parses an RRGGBB background color, byte pairs as hex,
// with an optional leading '#'. A malformed value is a configuration
// error and must abort startup.
func ParseHexColor(s string) (color.RGBA, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("background color %q: want 6 hex digits (RRGGBB)", s)
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("background color %q: %w", s, err)
	}
	return color.RGBA{R: raw[0], G: raw[1], B: raw[2], A: 0xFF}, nil
}
