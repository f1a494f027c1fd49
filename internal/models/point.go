package models

// Point is one retained sample of the measurement, in pixel coordinates.
// X and Y are the source column and row cast to float64; Z starts out as
// the unwrapped phase value and becomes the residual depth once the
// fitted surface has been subtracted. Quality is the confidence value
// that admitted the point past the filter threshold.
type Point struct {
	X       float64
	Y       float64
	Z       float64
	Quality float64
}

// PointCloud is an ordered sequence of points. The order is row-major
// scan order at build time; renderers may re-order a derived index
// permutation for depth-correct drawing but never reorder the cloud
// itself.
type PointCloud []Point

// FitCoefficients parameterizes the rational bilinear surface
//
//	z = (A*x + B*y + C) / (D*x + E*y + 1)
//
// that models the projective distortion of a flat reference target.
// Coefficients are either solved from the data or supplied directly by
// the caller; the two sources are interchangeable everywhere downstream.
type FitCoefficients struct {
	A, B, C, D, E float64
}

// Evaluate computes the modeled surface height at (x, y)
func (c FitCoefficients) Evaluate(x, y float64) float64 {
	return (c.A*x + c.B*y + c.C) / (c.D*x + c.E*y + 1)
}

// AxisRange describes one render axis. When Reversed is set the axis is
// mirrored: Min maps to the far end of the screen interval and Max to
// the near end.
type AxisRange struct {
	Min      float64
	Max      float64
	Reversed bool
}

// Norm maps v into [0,1] along the axis, honouring reversal. A
// degenerate range (Min == Max) maps everything to the midpoint so a
// constant field still renders.
func (r AxisRange) Norm(v float64) float64 {
	span := r.Max - r.Min
	if span == 0 {
		return 0.5
	}
	t := (v - r.Min) / span
	if r.Reversed {
		t = 1 - t
	}
	return t
}
