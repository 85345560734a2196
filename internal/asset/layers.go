package asset

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"
)

// Well-known layer object names inside an indicator asset. Asset authors
// may omit any of them; missing layers are skipped at render time.
const (
	LayerBG        = "bg"
	LayerIdle      = "idle"
	LayerVerify    = "verify"
	LayerFail      = "fail"
	LayerBackspace = "backspace"
	LayerFG        = "fg"
)

// Marker object names. Their mere presence in an asset toggles the
// corresponding policy flag; their content is ignored.
const (
	MarkerSequential       = "sequential_animation"
	MarkerRemoveBackground = "remove_background"
)

// AnimLayerName returns the name of the i-th animation layer, two-digit
// zero-padded ("anim00", "anim01", ...).
func AnimLayerName(i int) string {
	return fmt.Sprintf("anim%02d", i)
}

// LayerSet is the immutable, pre-rasterized form of an indicator asset.
// The asset loader hands one to the engine at startup; nothing mutates
// it afterwards.
type LayerSet struct {
	width  int
	height int
	layers map[string]*gg.ImageBuf

	animFrames       int
	sequential       bool
	removeBackground bool
}

// NewLayerSet builds a LayerSet from named rasterized layers at the
// asset's logical size. Marker names toggle flags and are not kept as
// drawable layers; their images may be nil. Animation frames are counted
// as the longest run of anim00, anim01, ... present in the map.
func NewLayerSet(width, height int, layers map[string]image.Image) *LayerSet {
	set := &LayerSet{
		width:  width,
		height: height,
		layers: make(map[string]*gg.ImageBuf, len(layers)),
	}
	for name, img := range layers {
		switch name {
		case MarkerSequential:
			set.sequential = true
			continue
		case MarkerRemoveBackground:
			set.removeBackground = true
			continue
		}
		if img == nil {
			continue
		}
		set.layers[name] = gg.ImageBufFromImage(img)
	}
	for set.has(AnimLayerName(set.animFrames)) {
		set.animFrames++
	}
	return set
}

// Size reports the asset's logical dimensions, before DPI scaling.
func (set *LayerSet) Size() (width, height int) {
	return set.width, set.height
}

// Layer looks up a drawable layer by name. Absence is not an error;
// callers treat a missing layer as a no-op.
func (set *LayerSet) Layer(name string) (*gg.ImageBuf, bool) {
	buf, ok := set.layers[name]
	return buf, ok
}

// Has reports whether the asset carries the named layer.
func (set *LayerSet) Has(name string) bool {
	return set.has(name)
}

func (set *LayerSet) has(name string) bool {
	_, ok := set.layers[name]
	return ok
}

// AnimFrames is the number of animation layers in the asset. Zero means
// no animation ever renders.
func (set *LayerSet) AnimFrames() int { return set.animFrames }

// Sequential reports whether frames advance in order instead of
// pseudo-randomly.
func (set *LayerSet) Sequential() bool { return set.sequential }

// RemoveBackground reports whether the status tint is suppressed while
// an animation or backspace layer is shown.
func (set *LayerSet) RemoveBackground() bool { return set.removeBackground }
