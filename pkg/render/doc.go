// Package render holds brooklin's rendering helpers.
//
// The subpackages produce SVG; this package converts SVG to raster and
// print formats with the external rsvg-convert tool (from librsvg):
//
//	svg := sink.RenderSVG(layout)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// Subpackages:
//   - [nodelink]: module import graphs as Graphviz diagrams, cycles in red
//   - [sink]: curve point placements as SVG or JSON
//
// [nodelink]: github.com/brooklinpub/brooklin/pkg/render/nodelink
// [sink]: github.com/brooklinpub/brooklin/pkg/render/sink
package render
