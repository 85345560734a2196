package display

import (
	"image"

	"github.com/shadeos/shade/internal/geo"
)

// Memory is an in-process surface for tests and preview rendering.
type Memory struct {
	W, H      int
	Last      image.Image
	Presented int
}

func NewMemory(width, height int) *Memory {
	return &Memory{W: width, H: height}
}

func (m *Memory) Size() geo.Size {
	return geo.Size{Width: m.W, Height: m.H}
}

func (m *Memory) Present(img image.Image) error {
	m.Last = img
	m.Presented++
	return nil
}

func (m *Memory) Close() error { return nil }
