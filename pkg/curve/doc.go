// Package curve provides arc-length parameterised 2-D curves.
//
// A [Polyline] answers two questions: how long is the curve, and where is
// the point a given distance along it. Smooth shapes are flattened into a
// polyline once, so lookups are a binary search plus a linear blend.
//
// Curves usually come from SVG path data, the same "d" attribute a
// designer exports:
//
//	p, err := curve.ParsePath("M0,300 C150,120 300,120 450,300 S750,480 900,300")
//	if err != nil {
//	    return err
//	}
//	fitted := curve.Fit(p, curve.Rect{MinX: 36, MinY: 36, MaxX: 354, MaxY: 808})
//	mid := fitted.PointAt(fitted.Length() / 2)
package curve
