package pointcloud

import (
	"errors"
	"math"
	"testing"

	"phaseviz/internal/models"
)

func fieldFrom(rows, cols int, values []float64) *models.Field {
	f := models.NewField(rows, cols)
	copy(f.Data, values)
	return f
}

func TestBuildFiltersOnQuality(t *testing.T) {
	phase := fieldFrom(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})
	quality := fieldFrom(2, 3, []float64{
		0.9, 0.1, 0.9,
		0.5, 0.9, 0.1,
	})

	cloud, zmin, zmax, err := Build(phase, quality, 0.5)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// Strictly-greater filter: quality 0.5 at threshold 0.5 is dropped
	want := models.PointCloud{
		{X: 0, Y: 0, Z: 1, Quality: 0.9},
		{X: 2, Y: 0, Z: 3, Quality: 0.9},
		{X: 1, Y: 1, Z: 5, Quality: 0.9},
	}
	if len(cloud) != len(want) {
		t.Fatalf("got %d points, want %d", len(cloud), len(want))
	}
	for i, p := range cloud {
		if p != want[i] {
			t.Errorf("point %d = %+v, want %+v", i, p, want[i])
		}
	}

	if zmin != 1 || zmax != 5 {
		t.Errorf("retained extrema = (%v, %v), want (1, 5)", zmin, zmax)
	}
}

func TestBuildRowMajorOrder(t *testing.T) {
	phase := fieldFrom(2, 2, []float64{0, 1, 2, 3})
	quality := fieldFrom(2, 2, []float64{1, 1, 1, 1})

	cloud, _, _, err := Build(phase, quality, 0)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// z values were chosen to equal the scan index
	for i, p := range cloud {
		if p.Z != float64(i) {
			t.Errorf("point %d out of row-major order: z = %v", i, p.Z)
		}
	}
}

func TestBuildShapeMismatch(t *testing.T) {
	phase := models.NewField(4, 4)
	quality := models.NewField(4, 5)

	_, _, _, err := Build(phase, quality, 0)
	if err == nil {
		t.Fatal("expected shape mismatch error")
	}

	var mismatch *ShapeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected ShapeMismatchError, got %T: %v", err, err)
	}
	if mismatch.QualityCols != 5 {
		t.Errorf("error reports quality cols %d, want 5", mismatch.QualityCols)
	}
}

func TestBuildNothingRetained(t *testing.T) {
	phase := fieldFrom(2, 2, []float64{1, 2, 3, 4})
	quality := models.NewField(2, 2) // all zero

	cloud, zmin, zmax, err := Build(phase, quality, 0)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(cloud) != 0 {
		t.Errorf("got %d points, want 0", len(cloud))
	}
	if !math.IsInf(zmin, 1) || !math.IsInf(zmax, -1) {
		t.Errorf("empty extrema = (%v, %v), want (+Inf, -Inf)", zmin, zmax)
	}
}

func TestBuildNegativeThresholdKeepsZeroQuality(t *testing.T) {
	phase := fieldFrom(1, 2, []float64{5, 6})
	quality := fieldFrom(1, 2, []float64{0, -1})

	cloud, _, _, err := Build(phase, quality, -0.5)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(cloud) != 1 {
		t.Fatalf("got %d points, want 1 (only quality 0 > -0.5)", len(cloud))
	}
	if cloud[0].Z != 5 {
		t.Errorf("retained wrong point: z = %v", cloud[0].Z)
	}
}
