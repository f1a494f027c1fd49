// Package surfacefit estimates the rational bilinear surface
//
//	z = (a*x + b*y + c) / (d*x + e*y + 1)
//
// that projective distortion imposes on the phase image of a flat
// reference target, and subtracts it to leave the calibrated residual
// depth field.
//
// The model is nonlinear in its natural form but becomes linear in the
// coefficients after multiplying through the denominator:
//
//	a*x + b*y + c - d*(x*z) - e*(y*z) = z
//
// The rearrangement is exact, not an approximation, so the fit is a
// plain linear least-squares solve. The fit target is z; only surface
// evaluation uses the rational form.
package surfacefit

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"phaseviz/internal/models"
)

// minPoints is the number of unknowns in the linearized system; fewer
// samples leave the fit underdetermined with no sensible default.
const minPoints = 5

// rcond is the relative cutoff below which singular values are treated
// as zero when forming the pseudo-inverse solution.
const rcond = 1e-12

// InsufficientDataError reports that too few points survived the
// quality filter for the 5-parameter fit.
type InsufficientDataError struct {
	Points int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("surface fit needs at least %d points, have %d", minPoints, e.Points)
}

// FitDivergenceError reports a numerically singular least-squares
// system. It wraps the underlying numerical failure.
type FitDivergenceError struct {
	Err error
}

func (e *FitDivergenceError) Error() string {
	return fmt.Sprintf("surface fit diverged: %v", e.Err)
}

func (e *FitDivergenceError) Unwrap() error { return e.Err }

// Fit solves for the surface coefficients minimizing the sum of squared
// residuals of the linearized system, with design-matrix rows
// [x, y, 1, -x*z, -y*z] against target z. The solve goes through a thin
// SVD so rank-deficient systems (a perfectly flat field, for instance)
// yield the minimum-norm solution instead of failing.
func Fit(cloud models.PointCloud) (models.FitCoefficients, error) {
	n := len(cloud)
	if n < minPoints {
		return models.FitCoefficients{}, &InsufficientDataError{Points: n}
	}

	a := mat.NewDense(n, minPoints, nil)
	b := mat.NewVecDense(n, nil)
	for i, p := range cloud {
		a.SetRow(i, []float64{p.X, p.Y, 1, -p.X * p.Z, -p.Y * p.Z})
		b.SetVec(i, p.Z)
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return models.FitCoefficients{}, &FitDivergenceError{
			Err: errors.New("SVD factorization did not converge"),
		}
	}

	s := svd.Values(nil)
	if s[0] <= 0 || math.IsNaN(s[0]) {
		return models.FitCoefficients{}, &FitDivergenceError{
			Err: fmt.Errorf("design matrix is singular (largest singular value %g)", s[0]),
		}
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	// Minimum-norm solution x = V * S^+ * U^T * b, truncating singular
	// values below rcond relative to the largest.
	var utb mat.VecDense
	utb.MulVec(u.T(), b)

	scaled := mat.NewVecDense(minPoints, nil)
	for i := 0; i < minPoints; i++ {
		if s[i] > rcond*s[0] {
			scaled.SetVec(i, utb.AtVec(i)/s[i])
		}
	}

	var x mat.VecDense
	x.MulVec(&v, scaled)

	return models.FitCoefficients{
		A: x.AtVec(0),
		B: x.AtVec(1),
		C: x.AtVec(2),
		D: x.AtVec(3),
		E: x.AtVec(4),
	}, nil
}

// Residual evaluates the fitted surface at every point and replaces z
// with z minus the surface height, returning the transformed cloud plus
// the residual extrema folded during the same pass. The backing slice is
// reused; callers must not retain the pre-fit cloud since z now means
// residual depth, not phase. With zeroCenter set the post-fit mean is
// subtracted as a final shift so the visualized field is centered on
// zero. An empty cloud is a no-op, not an error.
func Residual(cloud models.PointCloud, c models.FitCoefficients, zeroCenter bool) (models.PointCloud, float64, float64) {
	zmin := math.Inf(1)
	zmax := math.Inf(-1)
	if len(cloud) == 0 {
		return cloud, zmin, zmax
	}

	residuals := make([]float64, len(cloud))
	for i := range cloud {
		cloud[i].Z -= c.Evaluate(cloud[i].X, cloud[i].Y)
		residuals[i] = cloud[i].Z
	}

	var shift float64
	if zeroCenter {
		shift = stat.Mean(residuals, nil)
	}

	for i := range cloud {
		cloud[i].Z -= shift
		if cloud[i].Z < zmin {
			zmin = cloud[i].Z
		}
		if cloud[i].Z > zmax {
			zmax = cloud[i].Z
		}
	}

	return cloud, zmin, zmax
}
