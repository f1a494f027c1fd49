// Package render draws the coloured, calibrated point cloud. The core
// pipeline hands every backend the same Scene; which backend runs is
// the caller's choice and never leaks back into the pipeline.
//
// Three backends are provided: a direct raster renderer (in-process 3D
// projection with painter's-algorithm ordering), a gnuplot renderer
// (generates a data file plus command script and shells out), and an
// HTML renderer (interactive 2D scatter via go-echarts).
package render

import (
	"fmt"
	"image/color"

	"phaseviz/internal/models"
)

// Scene is everything a backend needs to produce an image: the residual
// point cloud in build order, one colour per point, the three axis
// ranges, the output geometry and path.
type Scene struct {
	Cloud  models.PointCloud
	Colors []color.RGBA

	// Stops holds hex samples of the active colour ramp for backends
	// that delegate colour interpolation to an external engine.
	Stops []string

	X, Y, Z models.AxisRange

	Width  int
	Height int

	OutputPath string
}

// Renderer consumes a scene and writes the output file.
type Renderer interface {
	Render(s *Scene) error
}

// RenderError reports a failed render: an unwritable output, a missing
// external tool, or a tool that exited non-zero. Stderr carries the
// external tool's diagnostics when there are any.
type RenderError struct {
	Op     string
	Err    error
	Stderr string
}

func (e *RenderError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Stderr)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
