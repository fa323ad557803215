// Package sink writes resolved placements in output formats.
//
// [RenderSVG] draws the curve and one circle per placement; each circle
// is a <g class="hotspot" data-index="N"> group so the page can attach
// a click handler keyed by index. [RenderJSON] exports the same data for
// a rendering layer that draws its own markup.
//
// Both take functional options:
//
//	svg := sink.RenderSVG(layout,
//	    sink.WithCurve(points),
//	    sink.WithHotspots(items),
//	)
//	data, err := sink.RenderJSON(layout, sink.WithJSONCurve(points))
package sink
