package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolylineLength(t *testing.T) {
	p := NewPolyline([]Point{{0, 0}, {3, 4}, {3, 4}, {3, 10}})
	assert.InDelta(t, 11.0, p.Length(), 1e-9)
	assert.Len(t, p.Points(), 3, "duplicate vertex should be dropped")

	var nilLine *Polyline
	assert.Zero(t, nilLine.Length())
	assert.Zero(t, NewPolyline(nil).Length())
	assert.Zero(t, NewPolyline([]Point{{5, 5}, {5, 5}}).Length())
}

func TestPolylinePointAt(t *testing.T) {
	p := NewPolyline([]Point{{0, 0}, {10, 0}, {10, 10}})

	tests := []struct {
		t    float64
		want Point
	}{
		{-5, Point{0, 0}},
		{0, Point{0, 0}},
		{2.5, Point{2.5, 0}},
		{10, Point{10, 0}},
		{15, Point{10, 5}},
		{20, Point{10, 10}},
		{99, Point{10, 10}},
	}
	for _, tt := range tests {
		got := p.PointAt(tt.t)
		assert.InDelta(t, tt.want.X, got.X, 1e-9, "PointAt(%v).X", tt.t)
		assert.InDelta(t, tt.want.Y, got.Y, 1e-9, "PointAt(%v).Y", tt.t)
	}

	assert.Equal(t, Point{}, NewPolyline(nil).PointAt(3))
	assert.Equal(t, Point{4, 4}, NewPolyline([]Point{{4, 4}}).PointAt(3))
}

func TestPolylineBounds(t *testing.T) {
	p := NewPolyline([]Point{{2, 5}, {-1, 7}, {4, -3}})
	assert.Equal(t, Rect{MinX: -1, MinY: -3, MaxX: 4, MaxY: 7}, p.Bounds())
	assert.Equal(t, 5.0, p.Bounds().Width())
	assert.Equal(t, 10.0, p.Bounds().Height())
}

func TestFit(t *testing.T) {
	p := NewPolyline([]Point{{0, 0}, {100, 50}, {200, 0}})
	dst := Rect{MinX: 36, MinY: 36, MaxX: 354, MaxY: 436}
	f := Fit(p, dst)

	pts := f.Points()
	require.Len(t, pts, 3)
	assert.Equal(t, Point{36, 36}, pts[0])
	assert.InDelta(t, 195.0, pts[1].X, 1e-9)
	assert.InDelta(t, 436.0, pts[1].Y, 1e-9)
	assert.Equal(t, Point{354, 36}, pts[2])
	assert.Equal(t, dst, f.Bounds())
}

func TestFitFlatAxis(t *testing.T) {
	p := NewPolyline([]Point{{0, 10}, {100, 10}})
	f := Fit(p, Rect{MinX: 0, MinY: 0, MaxX: 50, MaxY: 80})

	for _, pt := range f.Points() {
		assert.Equal(t, 40.0, pt.Y, "flat curve should be centred vertically")
	}
	assert.InDelta(t, 50.0, f.Length(), 1e-9)
}
