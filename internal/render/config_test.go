package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"000000", color.RGBA{A: 0xFF}},
		{"ffffff", color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}},
		{"1A2b3C", color.RGBA{R: 0x1A, G: 0x2B, B: 0x3C, A: 0xFF}},
		{"#336699", color.RGBA{R: 0x33, G: 0x66, B: 0x99, A: 0xFF}},
	}
	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseHexColorRejectsMalformedInput(t *testing.T) {
	for _, in := range []string{"", "fff", "ffffffff", "zzzzzz", "12345g", "#12345"} {
		_, err := ParseHexColor(in)
		assert.Error(t, err, in)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.Indicator)
	assert.False(t, cfg.ShowWhenEmpty)
	assert.Equal(t, color.RGBA{A: 0xFF}, cfg.Background)
	assert.Nil(t, cfg.Wallpaper)
}
