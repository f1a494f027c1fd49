// Package pipeline coordinates the full run: load the two input
// arrays, build the filtered point cloud, resolve the surface
// coefficients (computed or supplied), subtract the surface, map
// colours, and hand the scene to the selected render backend. Each
// stage completes before the next begins and every failure aborts the
// run; there is no partial output.
package pipeline

import (
	"fmt"
	"io"
	"os"

	"phaseviz/internal/models"
	"phaseviz/pkg/colormap"
	"phaseviz/pkg/config"
	"phaseviz/pkg/fieldio"
	"phaseviz/pkg/pointcloud"
	"phaseviz/pkg/render"
	"phaseviz/pkg/surfacefit"
)

// rampStops is how many samples of the ramp external colour engines get
const rampStops = 10

// Params holds everything one invocation needs. Coefficients nil means
// "fit the surface from the data"; a non-nil value bypasses the fitter
// entirely and the two are interchangeable downstream.
type Params struct {
	// PhasePath is the unwrapped-phase .npy input
	PhasePath string

	// QualityPath is the co-registered quality .npy input
	QualityPath string

	// OutputPath is where the rendered image (or page) is written
	OutputPath string

	// Width, Height are the output dimensions in pixels
	Width  int
	Height int

	// Threshold is the quality cutoff, strict greater-than
	Threshold float64

	// ZRange overrides the depth/colour axis; nil derives it from the
	// observed residual extrema
	ZRange *models.AxisRange

	// Mirror flips the x-axis in the 3D view
	Mirror bool

	// ZeroCenter subtracts the mean residual after the fit
	ZeroCenter bool

	// ColorMode is "clamp" or "periodic"
	ColorMode string

	// ColorPeriod is the wrap length for periodic colour mapping
	ColorPeriod float64

	// Coefficients bypasses the fitter when non-nil
	Coefficients *models.FitCoefficients

	// Backend selects the renderer: png, jpeg, gnuplot or html
	Backend string

	// GnuplotBin is the executable used by the gnuplot backend
	GnuplotBin string

	// Report receives the coefficient report when the fit is computed
	// internally; defaults to stdout
	Report io.Writer
}

// Run executes the pipeline for one invocation
func Run(p *Params) error {
	report := p.Report
	if report == nil {
		report = os.Stdout
	}

	phase, err := fieldio.Load(p.PhasePath)
	if err != nil {
		return fmt.Errorf("unwrapped phase: %w", err)
	}
	quality, err := fieldio.Load(p.QualityPath)
	if err != nil {
		return fmt.Errorf("quality: %w", err)
	}

	cloud, _, _, err := pointcloud.Build(phase, quality, p.Threshold)
	if err != nil {
		return fmt.Errorf("building point cloud: %w", err)
	}

	coeffs, computed, err := resolveFit(p.Coefficients, cloud)
	if err != nil {
		return fmt.Errorf("fitting surface: %w", err)
	}
	if computed {
		fmt.Fprintf(report, "fitted surface coefficients:\n")
		fmt.Fprintf(report, "  a = %g\n  b = %g\n  c = %g\n  d = %g\n  e = %g\n",
			coeffs.A, coeffs.B, coeffs.C, coeffs.D, coeffs.E)
	}

	cloud, zmin, zmax := surfacefit.Residual(cloud, coeffs, p.ZeroCenter)

	zrange := models.AxisRange{Min: zmin, Max: zmax}
	if p.ZRange != nil {
		zrange = *p.ZRange
	}

	normalizer, ramp, err := colorStrategy(p, zrange)
	if err != nil {
		return err
	}

	scene := &render.Scene{
		Cloud:      cloud,
		Colors:     colormap.Colors(cloud, normalizer, ramp),
		Stops:      colormap.Stops(ramp, rampStops),
		X:          models.AxisRange{Min: 0, Max: float64(phase.Cols), Reversed: p.Mirror},
		Y:          models.AxisRange{Min: 0, Max: float64(phase.Rows), Reversed: true},
		Z:          zrange,
		Width:      p.Width,
		Height:     p.Height,
		OutputPath: p.OutputPath,
	}

	renderer, err := backendFor(p)
	if err != nil {
		return err
	}
	if err := renderer.Render(scene); err != nil {
		return fmt.Errorf("rendering: %w", err)
	}
	return nil
}

// resolveFit collapses the computed-vs-supplied duality into one
// concrete coefficient set before the residual stage, so nothing
// downstream branches on the source. The returned flag is used only for
// the console report.
func resolveFit(supplied *models.FitCoefficients, cloud models.PointCloud) (models.FitCoefficients, bool, error) {
	if supplied != nil {
		return *supplied, false, nil
	}
	coeffs, err := surfacefit.Fit(cloud)
	if err != nil {
		return models.FitCoefficients{}, false, err
	}
	return coeffs, true, nil
}

// colorStrategy picks the normalization policy and ramp for the run
func colorStrategy(p *Params, zrange models.AxisRange) (colormap.Normalizer, colormap.Ramp, error) {
	switch p.ColorMode {
	case "", "clamp":
		return colormap.Clamp{Min: zrange.Min, Max: zrange.Max}, colormap.Sequential(), nil
	case "periodic":
		period := p.ColorPeriod
		if period == 0 {
			period = 1
		}
		return colormap.Periodic{Period: period}, colormap.CyclicRainbow(), nil
	}
	return nil, nil, config.ValidateColorMode(p.ColorMode)
}

// backendFor maps the backend selector to a renderer
func backendFor(p *Params) (render.Renderer, error) {
	switch p.Backend {
	case "", "png":
		return render.NewRaster("png"), nil
	case "jpeg":
		return render.NewRaster("jpeg"), nil
	case "gnuplot":
		return &render.Gnuplot{Bin: p.GnuplotBin}, nil
	case "html":
		return &render.HTML{}, nil
	}
	return nil, config.ValidateBackend(p.Backend)
}
