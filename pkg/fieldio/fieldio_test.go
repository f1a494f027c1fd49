package fieldio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

func writeNpy(t *testing.T, name string, v interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", name, err)
	}
	defer f.Close()
	if err := npyio.Write(f, v); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadFloat64(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6}
	path := writeNpy(t, "phase.npy", mat.NewDense(2, 3, values))

	field, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if field.Rows != 2 || field.Cols != 3 {
		t.Fatalf("shape = %dx%d, want 2x3", field.Rows, field.Cols)
	}
	for i, want := range values {
		if field.Data[i] != want {
			t.Errorf("Data[%d] = %v, want %v", i, field.Data[i], want)
		}
	}
	if got := field.At(1, 2); got != 6 {
		t.Errorf("At(1,2) = %v, want 6", got)
	}
}

func TestLoadRejectsNon2D(t *testing.T) {
	path := writeNpy(t, "flat.npy", []float64{1, 2, 3})

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for 1D array")
	}
	var format *FormatError
	if !errors.As(err, &format) {
		t.Fatalf("expected FormatError, got %T: %v", err, err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.npy"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped os.ErrNotExist, got %v", err)
	}
}

func TestLoadNotNpy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.npy")
	if err := os.WriteFile(path, []byte("definitely not numpy"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	var format *FormatError
	if !errors.As(err, &format) {
		t.Fatalf("expected FormatError, got %T: %v", err, err)
	}
}
