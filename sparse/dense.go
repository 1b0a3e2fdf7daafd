package sparse

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goxgb/pkg/errors"
)

// FromDense builds a CSR from a gonum matrix, skipping cells that match the
// missing sentinel. A NaN sentinel matches NaN cells; any other sentinel
// matches by equality.
//
// Values are narrowed from float64 to float32, the element type the engine
// stores. If any value loses precision in the narrowing, a single
// DataConversionWarning is emitted through the library warning handler.
func FromDense(m mat.Matrix, missing float64) (*CSR, error) {
	rows, cols := m.Dims()
	if rows <= 0 || cols <= 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "FromDense")
	}

	rowPtr := make([]uint64, 1, rows+1)
	var indices []uint64
	var values []float32
	lossy := 0

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := m.At(i, j)
			if isMissing(v, missing) {
				continue
			}
			f := float32(v)
			if !math.IsInf(v, 0) && float64(f) != v {
				lossy++
			}
			indices = append(indices, uint64(j))
			values = append(values, f)
		}
		rowPtr = append(rowPtr, uint64(len(values)))
	}

	if lossy > 0 {
		errors.Warn(errors.NewDataConversionWarning("float64", "float32",
			fmt.Sprintf("%d of %d stored values lost precision during narrowing", lossy, len(values))))
	}

	return &CSR{
		RowPtr:  rowPtr,
		Indices: indices,
		Values:  values,
		Rows:    rows,
		Cols:    cols,
	}, nil
}

func isMissing(v, missing float64) bool {
	if math.IsNaN(missing) {
		return math.IsNaN(v)
	}
	return v == missing
}
