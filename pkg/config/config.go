// Package config provides configuration loading and management for
// phaseviz. Defaults can be overridden by a YAML file, and the YAML
// values in turn by command-line flags; parsing of the compound option
// syntaxes (dimensions, ranges, coefficient lists) also lives here.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"phaseviz/internal/models"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Render parameters
	Render struct {
		// Dimensions is the output image size as WIDTHxHEIGHT
		Dimensions string `yaml:"dimensions"`

		// Backend selects the output renderer: png, jpeg, gnuplot or html
		Backend string `yaml:"backend"`

		// GnuplotBin is the gnuplot executable used by the gnuplot backend
		GnuplotBin string `yaml:"gnuplotBin"`
	} `yaml:"render"`

	// Filter parameters
	Filter struct {
		// Threshold is the quality cutoff; only strictly greater samples are kept
		Threshold float64 `yaml:"threshold"`
	} `yaml:"filter"`

	// Color parameters
	Color struct {
		// Mode is the normalization policy, clamp or periodic
		Mode string `yaml:"mode"`

		// Period is the wrap length used by periodic mode
		Period float64 `yaml:"period"`
	} `yaml:"color"`

	// Fit parameters
	Fit struct {
		// ZeroCenter subtracts the mean residual after the surface is removed
		ZeroCenter bool `yaml:"zeroCenter"`
	} `yaml:"fit"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Render.Dimensions = "640x480"
	cfg.Render.Backend = "png"
	cfg.Render.GnuplotBin = "gnuplot"
	cfg.Filter.Threshold = 0
	cfg.Color.Mode = "clamp"
	cfg.Color.Period = 1.0
	cfg.Fit.ZeroCenter = false
	return cfg
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath == "" {
		return cfg, nil
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// ParseError reports a malformed option value. These surface before any
// input array is read.
type ParseError struct {
	Option string
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Option, e.Value, e.Reason)
}

// ParseDimensions parses an image size of the form WIDTHxHEIGHT
func ParseDimensions(s string) (int, int, error) {
	parts := strings.Split(s, "x")
	if len(parts) != 2 {
		return 0, 0, &ParseError{Option: "dimensions", Value: s, Reason: "must be of the form WIDTHxHEIGHT"}
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, &ParseError{Option: "dimensions", Value: s, Reason: "invalid integer for width"}
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, &ParseError{Option: "dimensions", Value: s, Reason: "invalid integer for height"}
	}
	if w <= 0 || h <= 0 {
		return 0, 0, &ParseError{Option: "dimensions", Value: s, Reason: "width and height must be positive"}
	}
	return w, h, nil
}

// ParseRange parses an axis range of the form START..END. A range given
// high-to-low comes back normalized with Reversed set, so the axis is
// mirrored rather than empty.
func ParseRange(s string) (models.AxisRange, error) {
	parts := strings.Split(s, "..")
	if len(parts) != 2 {
		return models.AxisRange{}, &ParseError{Option: "range", Value: s, Reason: "must be of the form START..END"}
	}
	start, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return models.AxisRange{}, &ParseError{Option: "range", Value: s, Reason: "invalid float for range start"}
	}
	end, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return models.AxisRange{}, &ParseError{Option: "range", Value: s, Reason: "invalid float for range end"}
	}
	if start > end {
		return models.AxisRange{Min: end, Max: start, Reversed: true}, nil
	}
	return models.AxisRange{Min: start, Max: end}, nil
}

// ParseCoefficients parses the five comma-separated surface
// coefficients a,b,c,d,e that bypass the fitter.
func ParseCoefficients(s string) (models.FitCoefficients, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 5 {
		return models.FitCoefficients{}, &ParseError{Option: "fit coefficients", Value: s, Reason: fmt.Sprintf("want 5 values a,b,c,d,e, got %d", len(parts))}
	}
	vals := make([]float64, 5)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return models.FitCoefficients{}, &ParseError{Option: "fit coefficients", Value: s, Reason: fmt.Sprintf("invalid float %q", p)}
		}
		vals[i] = v
	}
	return models.FitCoefficients{A: vals[0], B: vals[1], C: vals[2], D: vals[3], E: vals[4]}, nil
}

// ValidateBackend checks the renderer selector before any input is read
func ValidateBackend(s string) error {
	switch s {
	case "png", "jpeg", "gnuplot", "html":
		return nil
	}
	return &ParseError{Option: "backend", Value: s, Reason: "must be png, jpeg, gnuplot or html"}
}

// ValidateColorMode checks the normalization policy selector
func ValidateColorMode(s string) error {
	switch s {
	case "clamp", "periodic":
		return nil
	}
	return &ParseError{Option: "color mode", Value: s, Reason: "must be clamp or periodic"}
}
