package render

import (
	"context"

	"github.com/shadeos/shade/internal/display"
	"github.com/shadeos/shade/internal/state"
)

// Renderer draws one frame per state snapshot. Redraw requests are
// idempotent; callers may coalesce several state changes into a single
// redraw and only the latest frame is shown.
type Renderer interface {
	Start(ctx context.Context) error
	Stop() error
	RedrawWithState(snap state.State)
}

// SurfaceRenderer composites frames with a Compositor and presents them
// on a display surface.
type SurfaceRenderer struct {
	comp   *Compositor
	out    display.Surface
	Logger interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}
}

func NewSurfaceRenderer(comp *Compositor, out display.Surface) *SurfaceRenderer {
	return &SurfaceRenderer{comp: comp, out: out}
}

func (r *SurfaceRenderer) Start(ctx context.Context) error { return nil }

func (r *SurfaceRenderer) Stop() error { return r.out.Close() }

// RedrawWithState composites and presents one frame. A failed composite
// or present is fatal to this redraw only: it is logged and the logical
// state stays valid for a retry on the next event.
func (r *SurfaceRenderer) RedrawWithState(snap state.State) {
	res := r.out.Size()
	img, err := r.comp.Render(snap, res)
	if err != nil {
		if r.Logger != nil {
			r.Logger.Errorf("render", "compose failed: %v", err)
		}
		return
	}
	if err := r.out.Present(img); err != nil {
		if r.Logger != nil {
			r.Logger.Errorf("render", "present failed: %v", err)
		}
	}
}

// NoopRenderer discards every redraw. Placeholder wiring for tests.
type NoopRenderer struct{}

func (NoopRenderer) Start(ctx context.Context) error  { return nil }
func (NoopRenderer) Stop() error                      { return nil }
func (NoopRenderer) RedrawWithState(snap state.State) {}
