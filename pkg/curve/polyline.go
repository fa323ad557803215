package curve

import (
	"math"
	"sort"
)

// Point is a position in viewport coordinates (y grows downward).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

func lerp(a, b Point, f float64) Point {
	return Point{X: a.X + (b.X-a.X)*f, Y: a.Y + (b.Y-a.Y)*f}
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns MaxX - MinX.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns MaxY - MinY.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Polyline is a piecewise-linear curve with a precomputed cumulative
// arc-length table. It is immutable and safe for concurrent reads.
type Polyline struct {
	pts []Point
	cum []float64 // cum[i] is the arc length from pts[0] to pts[i]
}

// NewPolyline builds a polyline through pts. Consecutive duplicate points
// are dropped. Fewer than two distinct points give a zero-length curve.
func NewPolyline(pts []Point) *Polyline {
	p := &Polyline{}
	for _, pt := range pts {
		if n := len(p.pts); n > 0 && p.pts[n-1] == pt {
			continue
		}
		if n := len(p.pts); n == 0 {
			p.cum = append(p.cum, 0)
		} else {
			p.cum = append(p.cum, p.cum[n-1]+p.pts[n-1].Dist(pt))
		}
		p.pts = append(p.pts, pt)
	}
	return p
}

// Length returns the total arc length. A nil polyline has length 0.
func (p *Polyline) Length() float64 {
	if p == nil || len(p.cum) == 0 {
		return 0
	}
	return p.cum[len(p.cum)-1]
}

// PointAt returns the point at arc length t from the start. t is clamped
// to [0, Length()]. An empty polyline returns the zero Point.
func (p *Polyline) PointAt(t float64) Point {
	if p == nil || len(p.pts) == 0 {
		return Point{}
	}
	if t <= 0 || len(p.pts) == 1 {
		return p.pts[0]
	}
	last := len(p.pts) - 1
	if t >= p.cum[last] {
		return p.pts[last]
	}

	// First vertex at or beyond t; t > 0 so i >= 1.
	i := sort.SearchFloat64s(p.cum, t)
	seg := p.cum[i] - p.cum[i-1]
	return lerp(p.pts[i-1], p.pts[i], (t-p.cum[i-1])/seg)
}

// Points returns a copy of the vertices.
func (p *Polyline) Points() []Point {
	if p == nil {
		return nil
	}
	return append([]Point(nil), p.pts...)
}

// Bounds returns the bounding box of the vertices.
func (p *Polyline) Bounds() Rect {
	if p == nil || len(p.pts) == 0 {
		return Rect{}
	}
	r := Rect{MinX: p.pts[0].X, MinY: p.pts[0].Y, MaxX: p.pts[0].X, MaxY: p.pts[0].Y}
	for _, pt := range p.pts[1:] {
		r.MinX = min(r.MinX, pt.X)
		r.MinY = min(r.MinY, pt.Y)
		r.MaxX = max(r.MaxX, pt.X)
		r.MaxY = max(r.MaxY, pt.Y)
	}
	return r
}

// Fit maps p onto dst by scaling each axis independently so that p's
// bounding box fills dst, the way an SVG viewBox with
// preserveAspectRatio="none" stretches its content. An axis along which p
// has no extent is centred in dst.
func Fit(p *Polyline, dst Rect) *Polyline {
	src := p.Bounds()
	axis := func(v, lo, extent, dlo, dextent float64) float64 {
		if extent == 0 {
			return dlo + dextent/2
		}
		return dlo + (v-lo)/extent*dextent
	}

	pts := make([]Point, 0, len(p.Points()))
	for _, pt := range p.Points() {
		pts = append(pts, Point{
			X: axis(pt.X, src.MinX, src.Width(), dst.MinX, dst.Width()),
			Y: axis(pt.Y, src.MinY, src.Height(), dst.MinY, dst.Height()),
		})
	}
	return NewPolyline(pts)
}
