package render

import (
	"github.com/shadeos/shade/internal/asset"
	"github.com/shadeos/shade/internal/state"
)

// ActiveLayers maps a state snapshot to the ordered layer names the
// compositor stacks for that frame: bg, the status tint, the activity
// layer, fg. Names the asset does not carry are dropped here so a
// sparse asset degrades to fewer elements instead of erroring.
func ActiveLayers(snap state.State, set *asset.LayerSet, frame int) []string {
	names := make([]string, 0, 4)
	names = append(names, asset.LayerBG)

	active := snap.Unlock == state.KeyActive || snap.Unlock == state.BackspaceActive

	// The status tint is suppressed while an activity layer shows if the
	// asset asks for it.
	if !active || !set.RemoveBackground() {
		switch snap.Pam {
		case state.PamVerify:
			names = append(names, asset.LayerVerify)
		case state.PamWrong:
			names = append(names, asset.LayerFail)
		default:
			names = append(names, asset.LayerIdle)
		}
	}

	switch snap.Unlock {
	case state.KeyActive:
		if set.AnimFrames() > 0 {
			names = append(names, asset.AnimLayerName(frame))
		}
	case state.BackspaceActive:
		names = append(names, asset.LayerBackspace)
	}

	names = append(names, asset.LayerFG)

	present := names[:0]
	for _, name := range names {
		if set.Has(name) {
			present = append(present, name)
		}
	}
	return present
}
