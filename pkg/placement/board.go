package placement

import (
	"context"

	"github.com/brooklinpub/brooklin/pkg/curve"
)

// CurveFunc returns the curve to use for a viewport, or nil while the
// curve cannot be measured yet.
type CurveFunc func(vp Viewport) Curve

// Static returns a CurveFunc that ignores the viewport.
func Static(c Curve) CurveFunc {
	return func(Viewport) Curve { return c }
}

// Fitted returns a CurveFunc that stretches path over the padded area of
// each viewport. A nil path is never ready.
func Fitted(path *curve.Polyline, padding float64) CurveFunc {
	return func(vp Viewport) Curve {
		if path == nil {
			return nil
		}
		return curve.Fit(path, curve.Rect{
			MinX: padding,
			MinY: padding,
			MaxX: vp.Width - padding,
			MaxY: vp.Height - padding,
		})
	}
}

// Board holds the current placements for a host that recomputes on
// events. Every trigger reruns Resolve from scratch. When a trigger cannot
// produce a layout, the previous one stays current.
//
// Board is not safe for concurrent use; hosts serialise triggers.
type Board struct {
	opts   Options
	curve  CurveFunc
	count  int
	vp     Viewport
	layout Layout
	ok     bool

	// OnChange, if set, is called after each successful recompute.
	OnChange func(Layout)
}

// NewBoard returns an empty board.
func NewBoard(opts Options) *Board {
	return &Board{opts: opts.WithDefaults()}
}

// Options returns the board's resolved tuning.
func (b *Board) Options() Options { return b.opts }

// Mount sets all inputs at once and computes the first layout.
func (b *Board) Mount(ctx context.Context, c CurveFunc, count int, vp Viewport) bool {
	b.curve, b.count, b.vp = c, count, vp
	return b.recompute(ctx)
}

// Resize changes the viewport and recomputes.
func (b *Board) Resize(ctx context.Context, vp Viewport) bool {
	b.vp = vp
	return b.recompute(ctx)
}

// SetCount changes the item count and recomputes.
func (b *Board) SetCount(ctx context.Context, n int) bool {
	b.count = n
	return b.recompute(ctx)
}

// SetCurve replaces the curve source and recomputes.
func (b *Board) SetCurve(ctx context.Context, c CurveFunc) bool {
	b.curve = c
	return b.recompute(ctx)
}

// Count returns the requested item count.
func (b *Board) Count() int { return b.count }

// Viewport returns the current viewport.
func (b *Board) Viewport() Viewport { return b.vp }

// Layout returns the most recent successful layout, and false if there has
// never been one.
func (b *Board) Layout() (Layout, bool) { return b.layout, b.ok }

// Curve returns the curve for the current viewport, or nil.
func (b *Board) Curve() Curve {
	if b.curve == nil {
		return nil
	}
	return b.curve(b.vp)
}

func (b *Board) recompute(ctx context.Context) bool {
	l, ok := ResolveContext(ctx, b.Curve(), b.count, b.vp, b.opts)
	if !ok {
		return false
	}
	b.layout, b.ok = l, true
	if b.OnChange != nil {
		b.OnChange(l)
	}
	return true
}
