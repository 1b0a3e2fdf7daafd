package sparse

import "math"

// Random generates a CSR with the given shape where each cell is stored with
// probability density. The generator is a xorshift sequence, so identical
// arguments always produce identical matrices; tests and benchmarks rely on
// this reproducibility.
func Random(rows, cols int, density float64, seed uint64) *CSR {
	if seed == 0 {
		seed = 12345
	}

	rowPtr := make([]uint64, 1, rows+1)
	var indices []uint64
	var values []float32

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			seed ^= seed << 13
			seed ^= seed >> 7
			seed ^= seed << 17
			r := float64(seed) / float64(math.MaxUint64)
			if r < density {
				indices = append(indices, uint64(j))
				values = append(values, float32(r))
			}
		}
		rowPtr = append(rowPtr, uint64(len(values)))
	}

	return &CSR{
		RowPtr:  rowPtr,
		Indices: indices,
		Values:  values,
		Rows:    rows,
		Cols:    cols,
	}
}
