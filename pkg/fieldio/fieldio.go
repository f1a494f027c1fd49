// Package fieldio loads the 2D measurement arrays from NumPy .npy
// files, the interchange format the upstream unwrapping stage writes.
package fieldio

import (
	"fmt"
	"os"

	"github.com/sbinet/npyio"

	"phaseviz/internal/models"
)

// FormatError reports an .npy file whose contents cannot serve as a 2D
// real-valued field.
type FormatError struct {
	Path   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// Load reads a 2D float array from path. float32 data is widened to
// float64. Fortran-ordered files are rejected; the pipeline's row-major
// (row, col) indexing would silently transpose them.
func Load(path string) (*models.Field, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open array file: %w", err)
	}
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, &FormatError{Path: path, Reason: fmt.Sprintf("not a readable .npy file: %v", err)}
	}

	shape := r.Header.Descr.Shape
	if len(shape) != 2 {
		return nil, &FormatError{Path: path, Reason: fmt.Sprintf("want a 2D array, got shape %v", shape)}
	}
	if r.Header.Descr.Fortran {
		return nil, &FormatError{Path: path, Reason: "Fortran-ordered arrays are not supported"}
	}

	rows, cols := shape[0], shape[1]
	var data []float64

	switch r.Header.Descr.Type {
	case "<f8", ">f8", "f8", "float64":
		if err := r.Read(&data); err != nil {
			return nil, &FormatError{Path: path, Reason: fmt.Sprintf("reading float64 data: %v", err)}
		}
	case "<f4", ">f4", "f4", "float32":
		var narrow []float32
		if err := r.Read(&narrow); err != nil {
			return nil, &FormatError{Path: path, Reason: fmt.Sprintf("reading float32 data: %v", err)}
		}
		data = make([]float64, len(narrow))
		for i, v := range narrow {
			data[i] = float64(v)
		}
	default:
		return nil, &FormatError{Path: path, Reason: fmt.Sprintf("unsupported dtype %q, want float32 or float64", r.Header.Descr.Type)}
	}

	if len(data) != rows*cols {
		return nil, &FormatError{Path: path, Reason: fmt.Sprintf("data length %d does not match shape %v", len(data), shape)}
	}

	return &models.Field{Data: data, Rows: rows, Cols: cols}, nil
}
