package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/brooklinpub/brooklin/pkg/dag"
	"github.com/brooklinpub/brooklin/pkg/dag/transform"
	"github.com/brooklinpub/brooklin/pkg/render"
)

// Colors used to mark cycles.
const (
	CycleEdgeColor = "#d62728"
	CycleNodeFill  = "#fde0dd"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed appends node metadata (sorted by key) to each label.
	Detailed bool

	// Cycles to highlight. Every edge between consecutive entries of a
	// cycle is drawn in CycleEdgeColor.
	Cycles []transform.Cycle

	// LeftToRight lays the graph out horizontally instead of top to bottom.
	LeftToRight bool
}

// ToDOT converts a module graph to Graphviz DOT source.
func ToDOT(g *dag.DAG, opts Options) string {
	cycleEdges, cycleNodes := cycleMembers(opts.Cycles)

	rankdir := "TB"
	if opts.LeftToRight {
		rankdir = "LR"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [color=\"#555555\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(*n, opts.Detailed))}
		if cycleNodes[n.ID] {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", CycleNodeFill), fmt.Sprintf("color=%q", CycleEdgeColor))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if cycleEdges[[2]string{e.From, e.To}] {
			fmt.Fprintf(&buf, "  %q -> %q [color=%q, penwidth=2];\n", e.From, e.To, CycleEdgeColor)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func cycleMembers(cycles []transform.Cycle) (map[[2]string]bool, map[string]bool) {
	edges := make(map[[2]string]bool)
	nodes := make(map[string]bool)
	for _, c := range cycles {
		for i := 0; i+1 < len(c); i++ {
			edges[[2]string{c[i], c[i+1]}] = true
			nodes[c[i]] = true
		}
	}
	return edges, nodes
}

func fmtLabel(n dag.Node, detailed bool) string {
	if !detailed || len(n.Meta) == 0 {
		return n.ID
	}
	parts := make([]string, 0, len(n.Meta))
	for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, n.Meta[k]))
	}
	return n.ID + "\n" + strings.Join(parts, "\n")
}

// RenderSVG renders DOT source to SVG using the embedded Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one
// whose width and height match the viewBox, so browsers scale it cleanly.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// Render renders DOT source in the given format: "dot" returns the source
// itself, "svg" renders in-process and "pdf"/"png" convert the SVG.
func Render(ctx context.Context, dot, format string) ([]byte, error) {
	if format == "dot" {
		return []byte(dot), nil
	}
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.Convert(ctx, svg, format)
}
