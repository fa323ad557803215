package sink

import (
	"bytes"
	"fmt"

	"github.com/brooklinpub/brooklin/pkg/curve"
	"github.com/brooklinpub/brooklin/pkg/placement"
)

const hotspotCSS = `
    .curve { fill: none; stroke: #c8a165; stroke-width: 3; stroke-linecap: round; }
    .hotspot circle { fill: #1f3a32; stroke: #f4ead5; transition: transform 0.2s ease; transform-origin: center; transform-box: fill-box; }
    .hotspot:hover circle { transform: scale(1.08); }
    .hotspot text { fill: #f4ead5; font-family: Georgia, serif; text-anchor: middle; dominant-baseline: central; pointer-events: none; }
    .hotspot.collision circle { stroke: #d62728; }
    .bounds { fill: none; stroke: #999; stroke-dasharray: 4 4; }`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	curve    []curve.Point
	hotspots []Hotspot
	bounds   bool
}

// WithCurve draws the curve the hotspots sit on.
func WithCurve(pts []curve.Point) SVGOption { return func(r *svgRenderer) { r.curve = pts } }

// WithHotspots labels circles and links them to their content.
func WithHotspots(hs []Hotspot) SVGOption { return func(r *svgRenderer) { r.hotspots = hs } }

// WithBounds outlines the padded area, for debugging layouts.
func WithBounds() SVGOption { return func(r *svgRenderer) { r.bounds = true } }

// RenderSVG renders a layout as a standalone SVG document. Circles that
// still overlap in a fallback layout get the "collision" class.
func RenderSVG(l placement.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := l.Viewport.Width, l.Viewport.Height
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n", w, h, w, h)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", hotspotCSS)

	if r.bounds {
		fmt.Fprintf(&buf, `  <rect class="bounds" x="%.2f" y="%.2f" width="%.2f" height="%.2f"/>`+"\n",
			l.Padding, l.Padding, w-2*l.Padding, h-2*l.Padding)
	}
	if len(r.curve) > 1 {
		fmt.Fprintf(&buf, `  <path class="curve" d="%s"/>`+"\n", pathData(r.curve))
	}

	colliding := collidingSet(l)
	for _, p := range l.Placements {
		renderHotspot(&buf, p, colliding[p.Index], r.hotspots)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderHotspot(buf *bytes.Buffer, p placement.Placement, colliding bool, hs []Hotspot) {
	class := "hotspot"
	if colliding {
		class += " collision"
	}
	h, labelled := hotspotFor(hs, p.Index)

	if labelled && h.URL != "" {
		fmt.Fprintf(buf, `  <a href="%s">`+"\n", escapeXML(h.URL))
	}
	fmt.Fprintf(buf, `  <g class="%s" data-index="%d">`+"\n", class, p.Index)
	fmt.Fprintf(buf, `    <circle cx="%.2f" cy="%.2f" r="%.2f" stroke-width="%.0f"/>`+"\n", p.X, p.Y, p.Size/2, placement.DefaultBorder)
	if labelled {
		fmt.Fprintf(buf, "    <title>%s</title>\n", escapeXML(h.Label))
	}
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-size="%.0f">%d</text>`+"\n", p.X, p.Y, p.Size*0.4, p.Index)
	buf.WriteString("  </g>\n")
	if labelled && h.URL != "" {
		buf.WriteString("  </a>\n")
	}
}

// collidingSet marks every placement that overlaps another one. Only
// fallback layouts can contain any.
func collidingSet(l placement.Layout) map[int]bool {
	if !l.Collision {
		return nil
	}
	set := make(map[int]bool)
	for i, a := range l.Placements {
		for _, b := range l.Placements[i+1:] {
			if placement.Collides([]placement.Placement{a, b}, l.Clearance) {
				set[a.Index], set[b.Index] = true, true
			}
		}
	}
	return set
}
