// Package nodelink renders module import graphs as node-link diagrams.
//
// [ToDOT] produces Graphviz DOT source with one box per module and one
// arrow per import. Edges that close a detected cycle are drawn red and
// the modules on any cycle are shaded, so a failed check can be attached
// to a CI run as a picture:
//
//	cycles := transform.FindCycles(g)
//	dot := nodelink.ToDOT(g, nodelink.Options{Cycles: cycles})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Rendering uses [github.com/goccy/go-graphviz] in-process, so no Graphviz
// installation is needed. PDF and PNG go through [render.ToPDF] and
// [render.ToPNG], which require librsvg.
package nodelink
