package placement

import (
	"context"
	"math"
	"time"

	"github.com/brooklinpub/brooklin/pkg/curve"
	"github.com/brooklinpub/brooklin/pkg/observability"
)

// Curve is an arc-length parameterised curve in viewport coordinates.
// *curve.Polyline implements it.
type Curve interface {
	Length() float64
	PointAt(t float64) curve.Point
}

// Viewport is the drawing area in CSS pixels.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Placement is one resolved hotspot. Index is 1-based and keys the item
// the hotspot stands for.
type Placement struct {
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size"`
}

// Layout is the outcome of one resolution pass.
type Layout struct {
	Placements []Placement `json:"placements"`
	Size       float64     `json:"size"`
	Viewport   Viewport    `json:"viewport"`
	Padding    float64     `json:"padding"`
	Clearance  float64     `json:"clearance"` // Required gap between circle edges
	Device     Device      `json:"-"`

	// ShrinkAttempts and JitterPasses count the work done for the final
	// item count.
	ShrinkAttempts int  `json:"shrink_attempts"`
	JitterPasses   int  `json:"jitter_passes"`
	Fallback       bool `json:"fallback"`

	// Collision is true when the accepted layout still has an overlapping
	// pair. Only possible after Fallback.
	Collision bool `json:"collision"`
}

// Resolve places n items along c inside vp. It reports false, and produces
// nothing, when there is nothing to place: n < 1, a nil curve, a curve
// whose length is zero or not finite, or a viewport with no room inside
// the padding.
//
// The size for n items never exceeds the size resolved for n-1 items in
// the same viewport: each count's ceiling is tightened to the previous
// count's result.
func Resolve(c Curve, n int, vp Viewport, opts Options) (Layout, bool) {
	return ResolveContext(context.Background(), c, n, vp, opts)
}

// ResolveContext is Resolve with a context for the observability hooks.
func ResolveContext(ctx context.Context, c Curve, n int, vp Viewport, opts Options) (Layout, bool) {
	opts = opts.WithDefaults()
	if reason := notReady(c, n, vp, opts); reason != "" {
		observability.Placement().OnSkip(ctx, reason)
		return Layout{}, false
	}

	start := time.Now()
	r := resolver{curve: c, length: c.Length(), vp: vp, opts: opts}
	device := opts.DeviceFor(vp.Width)

	ceiling := opts.Ceiling(device)
	var l Layout
	for k := 1; k <= n; k++ {
		l = r.resolve(k, ceiling)
		ceiling = min(ceiling, l.Size)
	}
	l.Device = device

	observability.Placement().OnResolve(ctx, n, l.Size, l.ShrinkAttempts, l.JitterPasses, l.Fallback, time.Since(start))
	return l, true
}

func notReady(c Curve, n int, vp Viewport, o Options) string {
	switch {
	case n < 1:
		return "no items"
	case c == nil:
		return "curve not ready"
	}
	if l := c.Length(); l <= 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return "curve has no length"
	}
	if vp.Width-2*o.Padding <= 0 || vp.Height-2*o.Padding <= 0 {
		return "viewport smaller than padding"
	}
	return ""
}

type resolver struct {
	curve  Curve
	length float64
	vp     Viewport
	opts   Options
}

func (r resolver) layout(size float64, pl []Placement) Layout {
	return Layout{
		Placements: pl,
		Size:       size,
		Viewport:   r.vp,
		Padding:    r.opts.Padding,
		Clearance:  r.opts.Clearance(),
	}
}

// resolve runs the full pipeline for n items with the given size ceiling.
func (r resolver) resolve(n int, ceiling float64) Layout {
	o := r.opts
	if n == 1 {
		return r.single()
	}

	spacing := r.length / float64(n+1)
	size := clamp(spacing*o.SpacingFactor, o.MinSize, ceiling)

	pl := r.build(n, size, 0, 0)
	attempts := 0
	for Collides(pl, o.Clearance()) && size > o.MinSize && attempts < o.MaxShrinkAttempts {
		size = max(size*o.ShrinkFactor, o.MinSize)
		attempts++
		pl = r.build(n, size, 0, 0)
	}
	if !Collides(pl, o.Clearance()) {
		l := r.layout(size, pl)
		l.ShrinkAttempts = attempts
		return l
	}

	step := spacing * o.JitterFactor
	for pass := 1; pass <= o.MaxJitterPasses; pass++ {
		pl = r.build(n, size, pass, step)
		if !Collides(pl, o.Clearance()) {
			l := r.layout(size, pl)
			l.ShrinkAttempts = attempts
			l.JitterPasses = pass
			return l
		}
	}

	pl = r.build(n, o.MinSize, 0, 0)
	l := r.layout(o.MinSize, pl)
	l.ShrinkAttempts = attempts
	l.JitterPasses = o.MaxJitterPasses
	l.Fallback = true
	l.Collision = Collides(pl, o.Clearance())
	return l
}

// single centres one item with the largest size the padded viewport holds.
func (r resolver) single() Layout {
	o := r.opts
	availW := r.vp.Width - 2*o.Padding
	availH := r.vp.Height - 2*o.Padding
	size := max(min(availW, availH), o.MinSize)

	pl := []Placement{{
		Index: 1,
		X:     r.vp.Width / 2,
		Y:     r.vp.Height / 2,
		Size:  size,
	}}
	return r.layout(size, pl)
}

// build lays out n items of the given size. With pass > 0, odd indices
// move pass*step forward along the curve and even indices move back.
func (r resolver) build(n int, size float64, pass int, step float64) []Placement {
	o := r.opts
	half := size / 2
	innerW := r.vp.Width - 2*o.Padding

	pl := make([]Placement, n)
	for i := 1; i <= n; i++ {
		frac := float64(i) / float64(n+1)
		t := frac * r.length
		if pass > 0 {
			off := float64(pass) * step
			if i%2 == 0 {
				off = -off
			}
			t = clamp(t+off, 0, r.length)
		}

		pt := r.curve.PointAt(t)
		x := o.Padding + frac*innerW
		pl[i-1] = Placement{
			Index: i,
			X:     clampCenter(x, o.Padding+half, r.vp.Width-o.Padding-half),
			Y:     clampCenter(pt.Y, o.Padding+half, r.vp.Height-o.Padding-half),
			Size:  size,
		}
	}
	return pl
}

// Collides reports whether any two placements are closer than their radii
// plus clearance.
func Collides(pl []Placement, clearance float64) bool {
	_, _, ok := FirstCollision(pl, clearance)
	return ok
}

// FirstCollision returns the indices into pl of the first colliding pair.
func FirstCollision(pl []Placement, clearance float64) (int, int, bool) {
	for i := range pl {
		for j := i + 1; j < len(pl); j++ {
			need := (pl[i].Size+pl[j].Size)/2 + clearance
			if math.Hypot(pl[i].X-pl[j].X, pl[i].Y-pl[j].Y) < need {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}

// clampCenter clamps v into [lo, hi], or returns the midpoint when the
// circle is wider than the range.
func clampCenter(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	return clamp(v, lo, hi)
}
