package display

import (
	"fmt"
	"image"
	"image/color"

	fb "github.com/gonutz/framebuffer"

	"github.com/shadeos/shade/internal/geo"
)

// Framebuffer presents frames on a Linux framebuffer device.
type Framebuffer struct {
	dev *fb.Device
}

func OpenFramebuffer(devicePath string) (*Framebuffer, error) {
	dev, err := fb.Open(devicePath)
	if err != nil {
		return nil, fmt.Errorf("open framebuffer %s: %w", devicePath, err)
	}
	return &Framebuffer{dev: dev}, nil
}

func (f *Framebuffer) Size() geo.Size {
	bounds := f.dev.Bounds()
	return geo.Size{Width: bounds.Dx(), Height: bounds.Dy()}
}

// Present copies the frame into the device pixel by pixel. Frames are
// rendered at the framebuffer's own resolution, so no scaling happens
// here.
func (f *Framebuffer) Present(img image.Image) error {
	if f.dev == nil {
		return fmt.Errorf("framebuffer closed")
	}
	bounds := f.dev.Bounds()
	src := img.Bounds()
	for y := 0; y < bounds.Dy() && y < src.Dy(); y++ {
		for x := 0; x < bounds.Dx() && x < src.Dx(); x++ {
			r, g, b, _ := img.At(src.Min.X+x, src.Min.Y+y).RGBA()
			f.dev.Set(bounds.Min.X+x, bounds.Min.Y+y, color.RGBA{
				R: uint8(r >> 8),
				G: uint8(g >> 8),
				B: uint8(b >> 8),
				A: 0xFF,
			})
		}
	}
	return nil
}

func (f *Framebuffer) Close() error {
	if f.dev != nil {
		f.dev.Close()
		f.dev = nil
	}
	return nil
}
