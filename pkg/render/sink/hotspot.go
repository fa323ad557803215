package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/brooklinpub/brooklin/pkg/curve"
)

// Hotspot is the content a placement stands for. Hotspots are matched to
// placements by position: placement Index i uses hotspots[i-1].
type Hotspot struct {
	Label string `json:"label"`
	URL   string `json:"url,omitempty"`
}

func hotspotFor(hs []Hotspot, index int) (Hotspot, bool) {
	if index < 1 || index > len(hs) {
		return Hotspot{}, false
	}
	return hs[index-1], true
}

// pathData renders points as SVG path data.
func pathData(pts []curve.Point) string {
	var b strings.Builder
	for i, p := range pts {
		cmd := 'L'
		if i == 0 {
			cmd = 'M'
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%c%.2f,%.2f", cmd, p.X, p.Y)
	}
	return b.String()
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
