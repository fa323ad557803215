package placement

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brooklinpub/brooklin/pkg/curve"
	"github.com/brooklinpub/brooklin/pkg/observability"
)

// lineCurve is a horizontal line at height y that claims the given length;
// x follows t. Placement only reads y from the curve.
type lineCurve struct{ y, length float64 }

func (c lineCurve) Length() float64 { return c.length }

func (c lineCurve) PointAt(t float64) curve.Point { return curve.Point{X: t, Y: c.y} }

// stepCurve is low everywhere except for a raised band of arc length.
type stepCurve struct {
	length, from, to float64
	low, high        float64
}

func (c stepCurve) Length() float64 { return c.length }
func (c stepCurve) PointAt(t float64) curve.Point {
	if t >= c.from && t < c.to {
		return curve.Point{X: t, Y: c.high}
	}
	return curve.Point{X: t, Y: c.low}
}

func defaultCurve(t *testing.T, vp Viewport) Curve {
	t.Helper()
	p, err := curve.ParsePath(curve.DefaultPath)
	require.NoError(t, err)
	return Fitted(p, DefaultPadding)(vp)
}

var viewports = []Viewport{
	{200, 200},
	{320, 568},
	{390, 844},
	{768, 1024},
	{1280, 800},
	{1920, 1080},
}

func TestResolveNotReady(t *testing.T) {
	vp := Viewport{800, 600}
	tests := []struct {
		name string
		c    Curve
		n    int
		vp   Viewport
	}{
		{"nil curve", nil, 3, vp},
		{"zero length", lineCurve{y: 100}, 3, vp},
		{"nan length", lineCurve{y: 100, length: math.NaN()}, 3, vp},
		{"no items", lineCurve{y: 100, length: 500}, 0, vp},
		{"viewport inside padding", lineCurve{y: 10, length: 500}, 3, Viewport{60, 600}},
		{"nil polyline", (*curve.Polyline)(nil), 2, vp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, ok := Resolve(tt.c, tt.n, tt.vp, Options{})
			assert.False(t, ok)
			assert.Empty(t, l.Placements)
		})
	}
}

func TestResolveSingleFitsPaddedViewport(t *testing.T) {
	for _, vp := range viewports {
		t.Run(fmt.Sprintf("%vx%v", vp.Width, vp.Height), func(t *testing.T) {
			l, ok := Resolve(defaultCurve(t, vp), 1, vp, Options{})
			require.True(t, ok)
			require.Len(t, l.Placements, 1)

			p := l.Placements[0]
			want := math.Min(vp.Width, vp.Height) - 2*DefaultPadding
			assert.InDelta(t, want, p.Size, 1e-9)
			assert.Equal(t, vp.Width/2, p.X)
			assert.Equal(t, vp.Height/2, p.Y)
			assertInsideBounds(t, l)
		})
	}
}

func TestResolveSingleFloorsAtMinSize(t *testing.T) {
	l, ok := Resolve(lineCurve{y: 50, length: 10}, 1, Viewport{100, 100}, Options{})
	require.True(t, ok)
	assert.Equal(t, DefaultMinSize, l.Size)
}

func TestResolveDeviceCeiling(t *testing.T) {
	c := lineCurve{y: 200, length: 1000}

	desktop, ok := Resolve(c, 2, Viewport{1200, 400}, Options{})
	require.True(t, ok)
	assert.Equal(t, Desktop, desktop.Device)
	assert.Equal(t, DefaultDesktopMaxSize, desktop.Size)
	assert.Zero(t, desktop.ShrinkAttempts)

	mobile, ok := Resolve(c, 2, Viewport{600, 400}, Options{})
	require.True(t, ok)
	assert.Equal(t, Mobile, mobile.Device)
	assert.Equal(t, DefaultMobileMaxSize, mobile.Size)
}

func TestResolveLinearX(t *testing.T) {
	l, ok := Resolve(lineCurve{y: 300, length: 728}, 6, Viewport{800, 600}, Options{})
	require.True(t, ok)
	require.Len(t, l.Placements, 6)

	for i, p := range l.Placements {
		assert.Equal(t, i+1, p.Index)
		assert.InDelta(t, DefaultPadding+float64(i+1)/7*728, p.X, 1e-9)
		assert.Equal(t, 300.0, p.Y)
	}
	assert.InDelta(t, 0.7*728/7, l.Size, 1e-9)
	assert.False(t, l.Fallback)
}

func TestResolveShrinks(t *testing.T) {
	// Arc spacing asks for the ceiling, but the x spacing of 145.6 only
	// fits circles up to 133.6.
	l, ok := Resolve(lineCurve{y: 300, length: 2000}, 4, Viewport{800, 600}, Options{})
	require.True(t, ok)

	assert.Equal(t, 1, l.ShrinkAttempts)
	assert.InDelta(t, DefaultDesktopMaxSize*DefaultShrinkFactor, l.Size, 1e-9)
	assert.Zero(t, l.JitterPasses)
	assert.False(t, Collides(l.Placements, DefaultBorder+DefaultSafetyMargin))
}

func TestResolveJitters(t *testing.T) {
	// Two items stacked in a narrow column only separate once the first
	// one is nudged into the raised band.
	c := stepCurve{length: 300, from: 104, to: 150, low: 100, high: 500}
	l, ok := Resolve(c, 2, Viewport{132, 600}, Options{})
	require.True(t, ok)

	assert.Equal(t, DefaultMinSize, l.Size)
	assert.Equal(t, 1, l.JitterPasses)
	assert.Positive(t, l.ShrinkAttempts)
	assert.False(t, l.Fallback)
	assert.False(t, l.Collision)
	assert.Equal(t, 500.0, l.Placements[0].Y)
	assert.Equal(t, 100.0, l.Placements[1].Y)
}

func TestResolveFallbackAcceptsCollision(t *testing.T) {
	l, ok := Resolve(lineCurve{y: 200, length: 400}, 10, Viewport{400, 400}, Options{})
	require.True(t, ok)

	assert.True(t, l.Fallback)
	assert.True(t, l.Collision)
	assert.Equal(t, DefaultMinSize, l.Size)
	assert.Equal(t, DefaultMaxJitterPasses, l.JitterPasses)
	for _, p := range l.Placements {
		assert.Equal(t, DefaultMinSize, p.Size)
	}
	assertInsideBounds(t, l)
}

func TestResolveDeterministic(t *testing.T) {
	for _, vp := range viewports {
		c := defaultCurve(t, vp)
		for n := 1; n <= 12; n++ {
			a, _ := Resolve(c, n, vp, Options{})
			b, _ := Resolve(c, n, vp, Options{})
			require.Equal(t, a, b, "viewport %v n=%d", vp, n)
		}
	}
}

func TestResolveProperties(t *testing.T) {
	opts := DefaultOptions()
	for _, vp := range viewports {
		t.Run(fmt.Sprintf("%vx%v", vp.Width, vp.Height), func(t *testing.T) {
			c := defaultCurve(t, vp)
			prev := math.Inf(1)
			for n := 1; n <= 25; n++ {
				l, ok := Resolve(c, n, vp, opts)
				require.True(t, ok)
				require.Len(t, l.Placements, n)

				assert.LessOrEqual(t, l.Size, prev, "size grew from n=%d to n=%d", n-1, n)
				prev = l.Size

				assertInsideBounds(t, l)
				if !l.Fallback {
					assert.False(t, Collides(l.Placements, opts.Clearance()), "n=%d collides without fallback", n)
				} else {
					assert.Equal(t, opts.MinSize, l.Size)
				}
				for _, p := range l.Placements {
					assert.Equal(t, l.Size, p.Size, "sizes must be uniform")
				}
			}
		})
	}
}

func TestCollides(t *testing.T) {
	pl := []Placement{
		{Index: 1, X: 0, Y: 0, Size: 40},
		{Index: 2, X: 52, Y: 0, Size: 40},
	}
	assert.False(t, Collides(pl, 12), "exactly at the required distance")

	pl[1].X = 51.9
	i, j, ok := FirstCollision(pl, 12)
	assert.True(t, ok)
	assert.Equal(t, [2]int{0, 1}, [2]int{i, j})

	assert.False(t, Collides(nil, 12))
	assert.False(t, Collides(pl[:1], 12))
}

func TestOptionsWithDefaults(t *testing.T) {
	o := Options{MinSize: 30, MaxJitterPasses: 3, ShrinkFactor: 1.5}.WithDefaults()
	assert.Equal(t, 30.0, o.MinSize)
	assert.Equal(t, 3, o.MaxJitterPasses)
	assert.Equal(t, DefaultShrinkFactor, o.ShrinkFactor, "factor >= 1 would never shrink")
	assert.Equal(t, DefaultPadding, o.Padding)
	assert.Equal(t, DefaultMaxShrinkAttempts, o.MaxShrinkAttempts)
	assert.Equal(t, 12.0, o.Clearance())

	assert.Equal(t, Mobile, o.DeviceFor(767))
	assert.Equal(t, Desktop, o.DeviceFor(768))
	assert.Equal(t, "mobile", Mobile.String())
	assert.Equal(t, "desktop", Desktop.String())
}

type recordingPlacementHooks struct {
	observability.NoopPlacementHooks
	resolved int
	skipped  []string
}

func (h *recordingPlacementHooks) OnResolve(context.Context, int, float64, int, int, bool, time.Duration) {
	h.resolved++
}

func (h *recordingPlacementHooks) OnSkip(_ context.Context, reason string) {
	h.skipped = append(h.skipped, reason)
}

func TestResolveEmitsHooks(t *testing.T) {
	hooks := &recordingPlacementHooks{}
	observability.SetPlacementHooks(hooks)
	defer observability.Reset()

	_, _ = Resolve(lineCurve{y: 100, length: 500}, 3, Viewport{800, 600}, Options{})
	_, _ = Resolve(nil, 3, Viewport{800, 600}, Options{})

	assert.Equal(t, 1, hooks.resolved)
	assert.Equal(t, []string{"curve not ready"}, hooks.skipped)
}

func assertInsideBounds(t *testing.T, l Layout) {
	t.Helper()
	const eps = 1e-9
	for _, p := range l.Placements {
		half := p.Size / 2
		assert.GreaterOrEqual(t, p.X-half, l.Padding-eps, "item %d left edge", p.Index)
		assert.LessOrEqual(t, p.X+half, l.Viewport.Width-l.Padding+eps, "item %d right edge", p.Index)
		assert.GreaterOrEqual(t, p.Y-half, l.Padding-eps, "item %d top edge", p.Index)
		assert.LessOrEqual(t, p.Y+half, l.Viewport.Height-l.Padding+eps, "item %d bottom edge", p.Index)
	}
}
