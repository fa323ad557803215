package sink

import (
	"fmt"

	"github.com/brooklinpub/brooklin/pkg/curve"
	"github.com/brooklinpub/brooklin/pkg/placement"
)

// Output formats accepted by [Render].
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ContentType returns the MIME type for a format.
func ContentType(format string) string {
	if format == FormatSVG {
		return "image/svg+xml"
	}
	return "application/json"
}

// Render writes l in the named format, drawing the curve and labelling
// hotspots in both.
func Render(l placement.Layout, format string, pts []curve.Point, hs []Hotspot) ([]byte, error) {
	switch format {
	case FormatSVG:
		return RenderSVG(l, WithCurve(pts), WithHotspots(hs)), nil
	case FormatJSON, "":
		return RenderJSON(l, WithJSONCurve(pts), WithJSONHotspots(hs))
	default:
		return nil, fmt.Errorf("unsupported format %q (want svg or json)", format)
	}
}
