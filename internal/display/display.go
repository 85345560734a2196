// Package display presents composited frames on an output device.
package display

import (
	"image"

	"github.com/shadeos/shade/internal/geo"
)

// Surface is where rendered frames end up. The engine re-queries Size
// before every frame and renders at exactly that resolution.
type Surface interface {
	Size() geo.Size
	Present(img image.Image) error
	Close() error
}
