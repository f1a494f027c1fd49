package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Render.Dimensions != "640x480" {
		t.Errorf("default dimensions = %q, want 640x480", cfg.Render.Dimensions)
	}
	if cfg.Render.Backend != "png" {
		t.Errorf("default backend = %q, want png", cfg.Render.Backend)
	}
	if cfg.Filter.Threshold != 0 {
		t.Errorf("default threshold = %v, want 0", cfg.Filter.Threshold)
	}
	if cfg.Color.Period != 1.0 {
		t.Errorf("default period = %v, want 1.0", cfg.Color.Period)
	}
}

func TestLoadConfigMissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Render.Backend != "png" {
		t.Errorf("backend = %q, want default png", cfg.Render.Backend)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "render:\n  backend: gnuplot\ncolor:\n  mode: periodic\n  period: 6.28\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Render.Backend != "gnuplot" {
		t.Errorf("backend = %q, want gnuplot", cfg.Render.Backend)
	}
	if cfg.Color.Mode != "periodic" || cfg.Color.Period != 6.28 {
		t.Errorf("color = %+v, want periodic/6.28", cfg.Color)
	}
	// Untouched keys keep their defaults
	if cfg.Render.Dimensions != "640x480" {
		t.Errorf("dimensions = %q, want default 640x480", cfg.Render.Dimensions)
	}
}

func TestParseDimensions(t *testing.T) {
	w, h, err := ParseDimensions("800x600")
	if err != nil {
		t.Fatalf("ParseDimensions failed: %v", err)
	}
	if w != 800 || h != 600 {
		t.Errorf("got %dx%d, want 800x600", w, h)
	}

	for _, bad := range []string{"800", "800x", "x600", "800x600x2", "-1x600", "axb"} {
		if _, _, err := ParseDimensions(bad); err == nil {
			t.Errorf("ParseDimensions(%q) should fail", bad)
		} else {
			var parse *ParseError
			if !errors.As(err, &parse) {
				t.Errorf("ParseDimensions(%q) error type %T, want ParseError", bad, err)
			}
		}
	}
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("-1.5..2")
	if err != nil {
		t.Fatalf("ParseRange failed: %v", err)
	}
	if r.Min != -1.5 || r.Max != 2 || r.Reversed {
		t.Errorf("got %+v, want {-1.5 2 false}", r)
	}

	// High-to-low means a mirrored axis, not an empty one
	rev, err := ParseRange("5..1")
	if err != nil {
		t.Fatalf("ParseRange failed: %v", err)
	}
	if rev.Min != 1 || rev.Max != 5 || !rev.Reversed {
		t.Errorf("got %+v, want {1 5 true}", rev)
	}

	for _, bad := range []string{"1", "1..", "..2", "a..b"} {
		if _, err := ParseRange(bad); err == nil {
			t.Errorf("ParseRange(%q) should fail", bad)
		}
	}
}

func TestParseCoefficients(t *testing.T) {
	c, err := ParseCoefficients("0.1, -0.2,3,0,1e-3")
	if err != nil {
		t.Fatalf("ParseCoefficients failed: %v", err)
	}
	if c.A != 0.1 || c.B != -0.2 || c.C != 3 || c.D != 0 || c.E != 1e-3 {
		t.Errorf("got %+v", c)
	}

	for _, bad := range []string{"1,2,3,4", "1,2,3,4,5,6", "1,2,3,4,x", ""} {
		if _, err := ParseCoefficients(bad); err == nil {
			t.Errorf("ParseCoefficients(%q) should fail", bad)
		}
	}
}

func TestValidateBackend(t *testing.T) {
	for _, ok := range []string{"png", "jpeg", "gnuplot", "html"} {
		if err := ValidateBackend(ok); err != nil {
			t.Errorf("ValidateBackend(%q) = %v", ok, err)
		}
	}
	if err := ValidateBackend("svg"); err == nil {
		t.Error("ValidateBackend(svg) should fail")
	}
}

func TestValidateColorMode(t *testing.T) {
	if err := ValidateColorMode("clamp"); err != nil {
		t.Errorf("clamp rejected: %v", err)
	}
	if err := ValidateColorMode("rainbow"); err == nil {
		t.Error("unknown mode accepted")
	}
}
