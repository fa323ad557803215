package sink

import (
	"encoding/json"

	"github.com/brooklinpub/brooklin/pkg/curve"
	"github.com/brooklinpub/brooklin/pkg/placement"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	curve    []curve.Point
	hotspots []Hotspot
}

// WithJSONCurve includes the curve vertices in the output.
func WithJSONCurve(pts []curve.Point) JSONOption { return func(r *jsonRenderer) { r.curve = pts } }

// WithJSONHotspots attaches labels and links to placements by index.
func WithJSONHotspots(hs []Hotspot) JSONOption { return func(r *jsonRenderer) { r.hotspots = hs } }

type jsonOutput struct {
	Width          float64         `json:"width"`
	Height         float64         `json:"height"`
	Padding        float64         `json:"padding"`
	Device         string          `json:"device"`
	Size           float64         `json:"size"`
	ShrinkAttempts int             `json:"shrink_attempts"`
	JitterPasses   int             `json:"jitter_passes"`
	Fallback       bool            `json:"fallback,omitempty"`
	Collision      bool            `json:"collision,omitempty"`
	Placements     []jsonPlacement `json:"placements"`
	Curve          []curve.Point   `json:"curve,omitempty"`
}

type jsonPlacement struct {
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size"`
	Label string  `json:"label,omitempty"`
	URL   string  `json:"url,omitempty"`
}

// RenderJSON exports a layout as pretty-printed JSON. It does not modify
// l and is safe to call concurrently.
func RenderJSON(l placement.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:          l.Viewport.Width,
		Height:         l.Viewport.Height,
		Padding:        l.Padding,
		Device:         l.Device.String(),
		Size:           l.Size,
		ShrinkAttempts: l.ShrinkAttempts,
		JitterPasses:   l.JitterPasses,
		Fallback:       l.Fallback,
		Collision:      l.Collision,
		Placements:     make([]jsonPlacement, 0, len(l.Placements)),
		Curve:          r.curve,
	}
	for _, p := range l.Placements {
		jp := jsonPlacement{Index: p.Index, X: p.X, Y: p.Y, Size: p.Size}
		if h, ok := hotspotFor(r.hotspots, p.Index); ok {
			jp.Label, jp.URL = h.Label, h.URL
		}
		out.Placements = append(out.Placements, jp)
	}

	return json.MarshalIndent(out, "", "  ")
}
