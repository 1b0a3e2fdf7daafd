package sparse

import (
	"github.com/YuminosukeSato/goxgb/pkg/errors"
)

// CSC is a sparse matrix in compressed sparse column form.
//
// ColPtr has length Cols+1 and is monotonically non-decreasing with
// ColPtr[0] == 0; the entries of column j live at positions
// [ColPtr[j], ColPtr[j+1]) of Indices and Values. Indices holds row indices
// in [0, Rows).
type CSC struct {
	ColPtr  []uint64
	Indices []uint64
	Values  []float32
	Rows    int
	Cols    int
}

// NewCSC builds a CSC from its raw arrays and validates it. The arrays are
// referenced, not copied; callers must not mutate them while the CSC is in
// use.
func NewCSC(colPtr, indices []uint64, values []float32, rows, cols int) (*CSC, error) {
	m := &CSC{ColPtr: colPtr, Indices: indices, Values: values, Rows: rows, Cols: cols}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks every structural invariant of the CSC form and returns a
// descriptive error naming the first violated one.
func (m *CSC) Validate() error {
	const op = "CSC.Validate"
	if m.Rows <= 0 {
		return errors.NewValidationError("rows", "row count must be positive", m.Rows)
	}
	if m.Cols <= 0 {
		return errors.NewValidationError("cols", "column count must be positive", m.Cols)
	}
	if len(m.ColPtr) != m.Cols+1 {
		return errors.NewDimensionError(op, m.Cols+1, len(m.ColPtr), 1)
	}
	if m.ColPtr[0] != 0 {
		return errors.NewValidationError("colPtr", "first entry must be 0", m.ColPtr[0])
	}
	for j := 1; j < len(m.ColPtr); j++ {
		if m.ColPtr[j] < m.ColPtr[j-1] {
			return errors.NewValidationError("colPtr",
				"entries must be monotonically non-decreasing", m.ColPtr[j])
		}
	}
	if len(m.Indices) != len(m.Values) {
		return errors.NewValidationError("indices",
			"indices and values must have equal length", len(m.Indices))
	}
	if m.ColPtr[m.Cols] != uint64(len(m.Values)) {
		return errors.NewValidationError("values",
			"value count must equal the final column-pointer entry", len(m.Values))
	}
	for _, i := range m.Indices {
		if i >= uint64(m.Rows) {
			return errors.NewValidationError("indices",
				"row index out of range", i)
		}
	}
	return nil
}

// Dims returns the matrix shape.
func (m *CSC) Dims() (rows, cols int) {
	return m.Rows, m.Cols
}

// NNZ returns the number of stored entries.
func (m *CSC) NNZ() int {
	return len(m.Values)
}

// At returns the stored entry at (i, j) and whether one exists.
func (m *CSC) At(i, j int) (float32, bool) {
	if i < 0 || i >= m.Rows || j < 0 || j >= m.Cols {
		return 0, false
	}
	for k := m.ColPtr[j]; k < m.ColPtr[j+1]; k++ {
		if m.Indices[k] == uint64(i) {
			return m.Values[k], true
		}
	}
	return 0, false
}

// ToCSR converts the matrix to compressed sparse row form using a counting
// sort over rows. Within each row, entries appear in increasing column
// order.
func (m *CSC) ToCSR() *CSR {
	rowPtr := make([]uint64, m.Rows+1)
	for _, i := range m.Indices {
		rowPtr[i+1]++
	}
	for i := 0; i < m.Rows; i++ {
		rowPtr[i+1] += rowPtr[i]
	}

	colIdx := make([]uint64, len(m.Indices))
	values := make([]float32, len(m.Values))
	next := make([]uint64, m.Rows)
	copy(next, rowPtr[:m.Rows])
	for j := 0; j < m.Cols; j++ {
		for k := m.ColPtr[j]; k < m.ColPtr[j+1]; k++ {
			i := m.Indices[k]
			pos := next[i]
			colIdx[pos] = uint64(j)
			values[pos] = m.Values[k]
			next[i]++
		}
	}

	return &CSR{
		RowPtr:  rowPtr,
		Indices: colIdx,
		Values:  values,
		Rows:    m.Rows,
		Cols:    m.Cols,
	}
}
