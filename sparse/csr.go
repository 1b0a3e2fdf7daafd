package sparse

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goxgb/pkg/errors"
)

// CSR is a sparse matrix in compressed sparse row form.
//
// RowPtr has length Rows+1 and is monotonically non-decreasing with
// RowPtr[0] == 0; the entries of row i live at positions
// [RowPtr[i], RowPtr[i+1]) of Indices and Values. Indices holds column
// indices in [0, Cols); Values holds the stored entries. The final RowPtr
// entry equals len(Values).
type CSR struct {
	RowPtr  []uint64
	Indices []uint64
	Values  []float32
	Rows    int
	Cols    int
}

// NewCSR builds a CSR from its raw arrays and validates it. The arrays are
// referenced, not copied; callers must not mutate them while the CSR is in
// use.
func NewCSR(rowPtr, indices []uint64, values []float32, rows, cols int) (*CSR, error) {
	m := &CSR{RowPtr: rowPtr, Indices: indices, Values: values, Rows: rows, Cols: cols}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks every structural invariant of the CSR form and returns a
// descriptive error naming the first violated one.
func (m *CSR) Validate() error {
	const op = "CSR.Validate"
	if m.Rows <= 0 {
		return errors.NewValidationError("rows", "row count must be positive", m.Rows)
	}
	if m.Cols <= 0 {
		return errors.NewValidationError("cols", "column count must be positive", m.Cols)
	}
	if len(m.RowPtr) != m.Rows+1 {
		return errors.NewDimensionError(op, m.Rows+1, len(m.RowPtr), 0)
	}
	if m.RowPtr[0] != 0 {
		return errors.NewValidationError("rowPtr", "first entry must be 0", m.RowPtr[0])
	}
	for i := 1; i < len(m.RowPtr); i++ {
		if m.RowPtr[i] < m.RowPtr[i-1] {
			return errors.NewValidationError("rowPtr",
				"entries must be monotonically non-decreasing", m.RowPtr[i])
		}
	}
	if len(m.Indices) != len(m.Values) {
		return errors.NewValidationError("indices",
			"indices and values must have equal length", len(m.Indices))
	}
	if m.RowPtr[m.Rows] != uint64(len(m.Values)) {
		return errors.NewValidationError("values",
			"value count must equal the final row-pointer entry", len(m.Values))
	}
	for _, j := range m.Indices {
		if j >= uint64(m.Cols) {
			return errors.NewValidationError("indices",
				"column index out of range", j)
		}
	}
	return nil
}

// Dims returns the matrix shape.
func (m *CSR) Dims() (rows, cols int) {
	return m.Rows, m.Cols
}

// NNZ returns the number of stored entries.
func (m *CSR) NNZ() int {
	return len(m.Values)
}

// At returns the stored entry at (i, j) and whether one exists. Rows may
// contain unsorted indices, so the lookup scans the row.
func (m *CSR) At(i, j int) (float32, bool) {
	if i < 0 || i >= m.Rows || j < 0 || j >= m.Cols {
		return 0, false
	}
	for k := m.RowPtr[i]; k < m.RowPtr[i+1]; k++ {
		if m.Indices[k] == uint64(j) {
			return m.Values[k], true
		}
	}
	return 0, false
}

// ToDense materializes the matrix as a gonum dense matrix, writing the
// missing sentinel into every cell that has no stored entry.
func (m *CSR) ToDense(missing float64) *mat.Dense {
	d := mat.NewDense(m.Rows, m.Cols, nil)
	if !math.IsNaN(missing) && missing != 0 {
		for i := 0; i < m.Rows; i++ {
			for j := 0; j < m.Cols; j++ {
				d.Set(i, j, missing)
			}
		}
	} else if math.IsNaN(missing) {
		for i := 0; i < m.Rows; i++ {
			for j := 0; j < m.Cols; j++ {
				d.Set(i, j, math.NaN())
			}
		}
	}
	for i := 0; i < m.Rows; i++ {
		for k := m.RowPtr[i]; k < m.RowPtr[i+1]; k++ {
			d.Set(i, int(m.Indices[k]), float64(m.Values[k]))
		}
	}
	return d
}

// ToCSC converts the matrix to compressed sparse column form using a
// counting sort over columns. The conversion is deterministic: within each
// column, entries appear in increasing row order.
func (m *CSR) ToCSC() *CSC {
	colPtr := make([]uint64, m.Cols+1)
	for _, j := range m.Indices {
		colPtr[j+1]++
	}
	for j := 0; j < m.Cols; j++ {
		colPtr[j+1] += colPtr[j]
	}

	rowIdx := make([]uint64, len(m.Indices))
	values := make([]float32, len(m.Values))
	next := make([]uint64, m.Cols)
	copy(next, colPtr[:m.Cols])
	for i := 0; i < m.Rows; i++ {
		for k := m.RowPtr[i]; k < m.RowPtr[i+1]; k++ {
			j := m.Indices[k]
			pos := next[j]
			rowIdx[pos] = uint64(i)
			values[pos] = m.Values[k]
			next[j]++
		}
	}

	return &CSC{
		ColPtr:  colPtr,
		Indices: rowIdx,
		Values:  values,
		Rows:    m.Rows,
		Cols:    m.Cols,
	}
}
