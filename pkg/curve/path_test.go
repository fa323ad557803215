package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brooklinpub/brooklin/pkg/errors"
)

func TestParsePathLines(t *testing.T) {
	tests := []struct {
		name string
		d    string
		want []Point
	}{
		{"absolute", "M0 0 L10 0 L10 10", []Point{{0, 0}, {10, 0}, {10, 10}}},
		{"relative", "m5 5 l10 0 l0 10", []Point{{5, 5}, {15, 5}, {15, 15}}},
		{"implicit lineto", "M0,0 10,0 10,10", []Point{{0, 0}, {10, 0}, {10, 10}}},
		{"implicit relative lineto", "m1 1 2 0 0 2", []Point{{1, 1}, {3, 1}, {3, 3}}},
		{"horizontal vertical", "M0 0 H8 V6 h-8 v-6", []Point{{0, 0}, {8, 0}, {8, 6}, {0, 6}, {0, 0}}},
		{"close", "M0 0 L4 0 L4 3 Z", []Point{{0, 0}, {4, 0}, {4, 3}, {0, 0}}},
		{"compact numbers", "M0-5L.5.5", []Point{{0, -5}, {0.5, 0.5}}},
		{"exponent", "M1e1,0 L2E1,0", []Point{{10, 0}, {20, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePath(tt.d)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Points())
		})
	}
}

func TestParsePathCubic(t *testing.T) {
	p, err := ParsePathSegments("M0,0 C0,10 10,10 10,0", 8)
	require.NoError(t, err)

	pts := p.Points()
	require.Len(t, pts, 9)
	assert.Equal(t, Point{0, 0}, pts[0])
	assert.InDelta(t, 10.0, pts[8].X, 1e-9)
	assert.InDelta(t, 0.0, pts[8].Y, 1e-9)
	// Symmetric arch peaks at the midpoint: B(0.5) = (5, 7.5).
	assert.InDelta(t, 5.0, pts[4].X, 1e-9)
	assert.InDelta(t, 7.5, pts[4].Y, 1e-9)
}

func TestParsePathSmoothReflectsControl(t *testing.T) {
	explicit, err := ParsePath("M0,0 C0,10 10,10 10,0 C10,-10 20,-10 20,0")
	require.NoError(t, err)
	smooth, err := ParsePath("M0,0 C0,10 10,10 10,0 S20,-10 20,0")
	require.NoError(t, err)

	assert.Equal(t, explicit.Points(), smooth.Points())
}

func TestParsePathQuadratic(t *testing.T) {
	explicit, err := ParsePath("M0,0 Q5,10 10,0 Q15,-10 20,0")
	require.NoError(t, err)
	smooth, err := ParsePath("M0,0 q5,10 10,0 t10,0")
	require.NoError(t, err)

	assert.Equal(t, explicit.Points(), smooth.Points())
}

func TestParsePathDefault(t *testing.T) {
	p, err := ParsePath(DefaultPath)
	require.NoError(t, err)
	assert.Greater(t, p.Length(), 900.0)
	assert.Equal(t, Rect{MinX: 0, MinY: p.Bounds().MinY, MaxX: 900, MaxY: p.Bounds().MaxY}, p.Bounds())
}

func TestParsePathErrors(t *testing.T) {
	tests := []struct {
		name string
		d    string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"no moveto", "L10 10"},
		{"garbage", "M0 0 L10 x"},
		{"missing number", "M0 0 L10"},
		{"arc", "M0 0 A5 5 0 0 1 10 10"},
		{"number after close", "M0 0 L1 1 Z 4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePath(tt.d)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), "code = %s", errors.GetCode(err))
		})
	}
}
