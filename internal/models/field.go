package models

// Field is a 2D array of real-valued samples stored in row-major order.
// It serves both the unwrapped-phase and the quality input arrays, which
// are co-registered index for index. Fields are treated as immutable once
// loaded.
type Field struct {
	// Data holds Rows*Cols samples, row-major
	Data []float64

	// Rows is the number of rows (the image height)
	Rows int

	// Cols is the number of columns (the image width)
	Cols int
}

// NewField allocates a zero-filled field with the given shape
func NewField(rows, cols int) *Field {
	return &Field{
		Data: make([]float64, rows*cols),
		Rows: rows,
		Cols: cols,
	}
}

// At returns the sample at (row, col)
func (f *Field) At(row, col int) float64 {
	return f.Data[row*f.Cols+col]
}

// Set stores a sample at (row, col)
func (f *Field) Set(row, col int, v float64) {
	f.Data[row*f.Cols+col] = v
}

// SameShape reports whether two fields have identical dimensions
func (f *Field) SameShape(other *Field) bool {
	return f.Rows == other.Rows && f.Cols == other.Cols
}
