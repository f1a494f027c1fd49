// Command phaseviz renders an unwrapped-phase measurement as a
// calibrated 3D point cloud. It fits the rational bilinear surface that
// projective distortion imposes on a flat reference target (or takes
// the coefficients on the command line), subtracts it, and draws the
// colour-mapped residual field.
//
// Usage:
//
//	phaseviz [flags] unwrapped.npy quality.npy output-image
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"phaseviz/internal/models"
	"phaseviz/pkg/config"
	"phaseviz/pkg/pipeline"
)

func main() {
	configPath := flag.String("config", "", "Optional YAML config file supplying defaults")
	dimensions := flag.String("dimensions", "", "Dimensions of the output image as WIDTHxHEIGHT (default 640x480)")
	threshold := flag.Float64("threshold", 0, "Quality threshold, below which points are not plotted")
	zlim := flag.String("zlim", "", "Range of values for the z-axis as MIN..MAX (default: observed residual range)")
	mirror := flag.Bool("mirror", false, "Mirror along the x-axis in 3D space")
	center := flag.Bool("center", false, "Zero-center the residual field after the fit")
	colorMode := flag.String("color-mode", "", "Colour normalization: clamp or periodic (default clamp)")
	colorPeriod := flag.Float64("color-period", 0, "Colour wrap length for periodic mode (default 1.0)")
	fitCoeffs := flag.String("fit", "", "Explicit surface coefficients a,b,c,d,e, bypassing the fit")
	backend := flag.String("backend", "", "Output backend: png, jpeg, gnuplot or html (default png)")
	gnuplotBin := flag.String("gnuplot-bin", "", "gnuplot executable for the gnuplot backend")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 3 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Flags that were set explicitly override the config file
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["dimensions"] {
		cfg.Render.Dimensions = *dimensions
	}
	if set["backend"] {
		cfg.Render.Backend = *backend
	}
	if set["gnuplot-bin"] {
		cfg.Render.GnuplotBin = *gnuplotBin
	}
	if set["threshold"] {
		cfg.Filter.Threshold = *threshold
	}
	if set["color-mode"] {
		cfg.Color.Mode = *colorMode
	}
	if set["color-period"] {
		cfg.Color.Period = *colorPeriod
	}
	if set["center"] {
		cfg.Fit.ZeroCenter = *center
	}

	// All option validation happens here, before any array is read
	width, height, err := config.ParseDimensions(cfg.Render.Dimensions)
	if err != nil {
		log.Fatalf("Invalid options: %v", err)
	}
	if err := config.ValidateBackend(cfg.Render.Backend); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}
	if err := config.ValidateColorMode(cfg.Color.Mode); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	var zrange *models.AxisRange
	if *zlim != "" {
		r, err := config.ParseRange(*zlim)
		if err != nil {
			log.Fatalf("Invalid options: %v", err)
		}
		zrange = &r
	}

	var coeffs *models.FitCoefficients
	if *fitCoeffs != "" {
		c, err := config.ParseCoefficients(*fitCoeffs)
		if err != nil {
			log.Fatalf("Invalid options: %v", err)
		}
		coeffs = &c
	}

	params := &pipeline.Params{
		PhasePath:    flag.Arg(0),
		QualityPath:  flag.Arg(1),
		OutputPath:   flag.Arg(2),
		Width:        width,
		Height:       height,
		Threshold:    cfg.Filter.Threshold,
		ZRange:       zrange,
		Mirror:       *mirror,
		ZeroCenter:   cfg.Fit.ZeroCenter,
		ColorMode:    cfg.Color.Mode,
		ColorPeriod:  cfg.Color.Period,
		Coefficients: coeffs,
		Backend:      cfg.Render.Backend,
		GnuplotBin:   cfg.Render.GnuplotBin,
	}

	if err := pipeline.Run(params); err != nil {
		log.Fatalf("phaseviz failed: %v", err)
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] unwrapped.npy quality.npy output-image\n\n", os.Args[0])
	fmt.Fprintf(flag.CommandLine.Output(), "Renders a calibrated 3D point cloud from an unwrapped-phase array\nand its co-registered quality array.\n\nFlags:\n")
	flag.PrintDefaults()
}
