// Package placement spreads circular hotspots along a curve.
//
// Given a curve, an item count and a viewport, [Resolve] picks the largest
// uniform circle size for which no two circles overlap, within a fixed
// effort budget:
//
//  1. Start from 70% of the ideal arc-length spacing, clamped between
//     MinSize and the device ceiling.
//  2. Shrink by 15% up to 20 times while any pair collides.
//  3. Nudge items along the curve, odd indices forward and even indices
//     back, by a growing deterministic offset for up to 10 passes.
//  4. Give up: place everything at MinSize and accept the result.
//
// The last step may leave circles overlapping; [Layout.Collision] reports
// it. Every circle always lies inside the padded viewport.
//
// Item x positions are spaced linearly across the padded width; only y
// follows the curve. With that arrangement a curve that doubles back on
// itself still yields left-to-right reading order.
//
// [Board] wraps Resolve for hosts that recompute on events (mount, resize,
// count change) and must keep showing the previous result while the curve
// is not ready.
package placement
