// Package pkg provides the libraries behind the Brooklin Pub site tooling.
//
// # Overview
//
// Two independent features live here:
//
//  1. A post-build check that fails when the emitted JavaScript chunks
//     import each other in a circle.
//  2. The placement engine that spreads the menu hotspots along a curve
//     and shrinks them until they no longer overlap.
//
// Around them sit the pieces the CLI and the HTTP API share: configuration,
// caching, the specials API client and the renderers.
//
// # Architecture
//
// The cycle check:
//
//	build output directory
//	         ↓
//	    [imports] (scan files, match static imports, keep known targets)
//	         ↓
//	    [dag] + [dag/transform] (three-colour DFS, cycle chains, cuts)
//	         ↓
//	    stderr lines, exit status, optional [render/nodelink] graph
//
// Hotspot placement:
//
//	SVG path data → [curve] (flatten, fit to viewport)
//	         ↓
//	    [placement] (shrink, jitter, fall back to the minimum size)
//	         ↓
//	    [render/sink] (SVG or JSON), [render] (PDF/PNG), [server] (HTTP)
//
// # Quick Start
//
//	res, _ := imports.Scan(ctx, "dist/assets", imports.Options{})
//	for _, c := range transform.FindCycles(res.Graph) {
//	    fmt.Fprintln(os.Stderr, c)
//	}
//
//	path, _ := curve.ParsePath(curve.DefaultPath)
//	vp := placement.Viewport{Width: 1200, Height: 600}
//	fitted := placement.Fitted(path, 40)(vp)
//	layout, ok := placement.Resolve(fitted, 6, vp, placement.DefaultOptions())
//
// # Main Packages
//
// [imports] - Scans a flat directory of module files and builds the import
// graph. Only same-directory static imports are matched; anything else is
// left out on purpose.
//
// [dag] - Directed module graph with insertion-ordered traversal.
//
// [dag/transform] - Cycle enumeration, back-edge cuts and cycle breaking.
//
// [curve] - SVG path parsing (M, L, H, V, C, S, Q, T, Z) into an
// arc-length parameterised polyline.
//
// [placement] - Hotspot sizing and placement, plus [placement.Board] for
// callers that recompute on resize or count changes.
//
// [render/sink] - SVG and JSON output for layouts.
//
// [render/nodelink] - Graphviz DOT output for the import graph.
//
// [render] - SVG to PDF/PNG conversion.
//
// [specials] - Client, event bus and poller for the specials API.
//
// [server] - HTTP API serving placements and active specials.
//
// ## Infrastructure
//
// [config] - TOML configuration with environment overrides.
//
// [cache] - Memory, file, Redis and null cache backends with key builders.
//
// [httputil] - Typed JSON cache wrapper and retry helpers for HTTP clients.
//
// [observability] - Hooks for scans, placement, cache and HTTP events.
//
// [errors] - Coded errors and their exit statuses.
//
// # Testing
//
//	go test ./pkg/...                  # All tests
//	go test ./pkg/placement/...        # Specific package
//	go test -run Example ./pkg/...     # Examples only
//
// [imports]: https://pkg.go.dev/github.com/brooklinpub/brooklin/pkg/imports
// [dag]: https://pkg.go.dev/github.com/brooklinpub/brooklin/pkg/dag
// [dag/transform]: https://pkg.go.dev/github.com/brooklinpub/brooklin/pkg/dag/transform
// [curve]: https://pkg.go.dev/github.com/brooklinpub/brooklin/pkg/curve
// [placement]: https://pkg.go.dev/github.com/brooklinpub/brooklin/pkg/placement
// [placement.Board]: https://pkg.go.dev/github.com/brooklinpub/brooklin/pkg/placement#Board
// [render/sink]: https://pkg.go.dev/github.com/brooklinpub/brooklin/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/brooklinpub/brooklin/pkg/render/nodelink
// [render]: https://pkg.go.dev/github.com/brooklinpub/brooklin/pkg/render
// [specials]: https://pkg.go.dev/github.com/brooklinpub/brooklin/pkg/specials
// [server]: https://pkg.go.dev/github.com/brooklinpub/brooklin/pkg/server
// [config]: https://pkg.go.dev/github.com/brooklinpub/brooklin/pkg/config
// [cache]: https://pkg.go.dev/github.com/brooklinpub/brooklin/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/brooklinpub/brooklin/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/brooklinpub/brooklin/pkg/observability
// [errors]: https://pkg.go.dev/github.com/brooklinpub/brooklin/pkg/errors
package pkg
