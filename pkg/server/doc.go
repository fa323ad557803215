// Package server exposes hotspot placement over HTTP for a rendering layer.
//
// Routes:
//
//	GET /healthz
//	GET /placements?count=N&width=W&height=H[&format=json|svg]
//	GET /specials/active
//
// Placements are computed for the configured curve, stretched onto the
// requested viewport. When a specials client is configured, hotspots are
// labelled with the active specials in API order. Rendered responses are
// cached by count, viewport, curve and format.
package server
