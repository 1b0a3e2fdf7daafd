package capi

import (
	"fmt"
	"math"
	"sync"

	"github.com/YuminosukeSato/goxgb/core/parallel"
	"github.com/YuminosukeSato/goxgb/pkg/errors"
	"github.com/YuminosukeSato/goxgb/sparse"
)

// DMatrixHandle is an opaque reference to a matrix owned by the engine. The
// zero value is never a valid handle.
type DMatrixHandle uint64

// engineMatrix is the engine-owned representation of a constructed matrix:
// canonical CSR with the missing-sentinel entries already dropped, plus
// attached float info fields.
type engineMatrix struct {
	rows, cols uint64
	rowPtr     []uint64
	indices    []uint64
	values     []float32
	info       map[string][]float32
}

var (
	registryMu sync.Mutex
	registry   = make(map[DMatrixHandle]*engineMatrix)
	nextHandle DMatrixHandle
)

func registerMatrix(m *engineMatrix) DMatrixHandle {
	registryMu.Lock()
	defer registryMu.Unlock()
	nextHandle++
	registry[nextHandle] = m
	return nextHandle
}

// lookupMatrix resolves a handle. Resolving an unknown or freed handle is a
// fatal programming error.
func lookupMatrix(op string, h DMatrixHandle) *engineMatrix {
	registryMu.Lock()
	defer registryMu.Unlock()
	m, ok := registry[h]
	if !ok {
		panic(fmt.Sprintf("goxgb/capi: %s: invalid or freed DMatrix handle %d", op, h))
	}
	return m
}

// XGDMatrixFree releases the matrix owned by the engine. Freeing an unknown
// or already-freed handle panics.
func XGDMatrixFree(h DMatrixHandle) error {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[h]; !ok {
		panic(fmt.Sprintf("goxgb/capi: XGDMatrixFree: invalid or freed DMatrix handle %d", h))
	}
	delete(registry, h)
	return nil
}

// XGDMatrixNumRow returns the number of rows of the matrix.
func XGDMatrixNumRow(h DMatrixHandle) uint64 {
	return lookupMatrix("XGDMatrixNumRow", h).rows
}

// XGDMatrixNumCol returns the number of columns of the matrix.
func XGDMatrixNumCol(h DMatrixHandle) uint64 {
	return lookupMatrix("XGDMatrixNumCol", h).cols
}

// XGDMatrixNumNonMissing returns the number of entries the engine stored
// after dropping missing-sentinel values.
func XGDMatrixNumNonMissing(h DMatrixHandle) uint64 {
	return uint64(len(lookupMatrix("XGDMatrixNumNonMissing", h).values))
}

// XGDMatrixGetDataAsCSR copies the engine's canonical CSR content back out.
// The returned slices are fresh copies owned by the caller.
func XGDMatrixGetDataAsCSR(h DMatrixHandle) (indptr, indices []uint64, values []float32) {
	m := lookupMatrix("XGDMatrixGetDataAsCSR", h)
	indptr = append([]uint64(nil), m.rowPtr...)
	indices = append([]uint64(nil), m.indices...)
	values = append([]float32(nil), m.values...)
	return indptr, indices, values
}

// Float info fields the engine accepts, matching the native library's
// per-row metadata.
const (
	FieldLabel      = "label"
	FieldWeight     = "weight"
	FieldBaseMargin = "base_margin"
)

// XGDMatrixSetFloatInfo attaches a per-row float field (label, weight or
// base_margin) to the matrix. The values are copied.
func XGDMatrixSetFloatInfo(h DMatrixHandle, field string, values []float32) error {
	m := lookupMatrix("XGDMatrixSetFloatInfo", h)
	switch field {
	case FieldLabel, FieldWeight, FieldBaseMargin:
	default:
		return errors.NewValidationError("field", "unknown float info field", field)
	}
	if uint64(len(values)) != m.rows {
		return errors.NewDimensionError("XGDMatrixSetFloatInfo", int(m.rows), len(values), 0)
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	m.info[field] = append([]float32(nil), values...)
	return nil
}

// XGDMatrixGetFloatInfo returns a copy of a previously attached float field.
// A field that was never set returns an empty slice, matching the native
// behavior.
func XGDMatrixGetFloatInfo(h DMatrixHandle, field string) ([]float32, error) {
	m := lookupMatrix("XGDMatrixGetFloatInfo", h)
	switch field {
	case FieldLabel, FieldWeight, FieldBaseMargin:
	default:
		return nil, errors.NewValidationError("field", "unknown float info field", field)
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	return append([]float32(nil), m.info[field]...), nil
}

// isMissing32 reports whether v matches the missing sentinel. A NaN sentinel
// matches NaN values.
func isMissing32(v, missing float32) bool {
	if math.IsNaN(float64(missing)) {
		return math.IsNaN(float64(v))
	}
	return v == missing
}

// buildFromCSR constructs the engine matrix from resolved CSR buffers: it
// re-checks the structural invariants the way the native library does,
// drops missing-sentinel entries, and copies everything into engine-owned
// storage. The copy runs across cfg.NThread workers (0 = one per core).
func buildFromCSR(indptr, indices []uint64, values []float32, ncol uint64, cfg ConstructionConfig) (*engineMatrix, error) {
	if len(indptr) < 2 {
		return nil, errors.Newf("bad indptr: need at least 2 entries, got %d", len(indptr))
	}
	if ncol == 0 {
		return nil, errors.New("bad shape: ncol must be positive")
	}
	rows := len(indptr) - 1
	if indptr[0] != 0 {
		return nil, errors.Newf("bad indptr: first entry must be 0, got %d", indptr[0])
	}
	for i := 1; i < len(indptr); i++ {
		if indptr[i] < indptr[i-1] {
			return nil, errors.Newf("bad indptr: decreasing at entry %d", i)
		}
	}
	if indptr[rows] != uint64(len(values)) {
		return nil, errors.Newf("bad indptr: final entry %d does not match value count %d",
			indptr[rows], len(values))
	}
	if len(indices) != len(values) {
		return nil, errors.Newf("bad indices: length %d does not match value count %d",
			len(indices), len(values))
	}
	for _, j := range indices {
		if j >= ncol {
			return nil, errors.Newf("bad indices: column index %d out of range [0, %d)", j, ncol)
		}
	}

	// First pass: count surviving entries per row.
	kept := make([]uint64, rows)
	parallel.ParallelizeN(cfg.NThread, rows, func(start, end int) {
		for i := start; i < end; i++ {
			var n uint64
			for k := indptr[i]; k < indptr[i+1]; k++ {
				if !isMissing32(values[k], cfg.Missing) {
					n++
				}
			}
			kept[i] = n
		}
	})

	rowPtr := make([]uint64, rows+1)
	for i := 0; i < rows; i++ {
		rowPtr[i+1] = rowPtr[i] + kept[i]
	}
	nnz := rowPtr[rows]

	// Second pass: copy surviving entries into engine-owned storage.
	outIdx := make([]uint64, nnz)
	outVal := make([]float32, nnz)
	parallel.ParallelizeN(cfg.NThread, rows, func(start, end int) {
		for i := start; i < end; i++ {
			pos := rowPtr[i]
			for k := indptr[i]; k < indptr[i+1]; k++ {
				if isMissing32(values[k], cfg.Missing) {
					continue
				}
				outIdx[pos] = indices[k]
				outVal[pos] = values[k]
				pos++
			}
		}
	})

	return &engineMatrix{
		rows:    uint64(rows),
		cols:    ncol,
		rowPtr:  rowPtr,
		indices: outIdx,
		values:  outVal,
		info:    make(map[string][]float32),
	}, nil
}

// buildFromCSC constructs the engine matrix from resolved CSC buffers. The
// column-form input is filtered the same way as CSR input and then converted
// to the engine's canonical row form.
func buildFromCSC(colptr, indices []uint64, values []float32, nrow uint64, cfg ConstructionConfig) (*engineMatrix, error) {
	if len(colptr) < 2 {
		return nil, errors.Newf("bad colptr: need at least 2 entries, got %d", len(colptr))
	}
	if nrow == 0 {
		return nil, errors.New("bad shape: nrow must be positive")
	}
	cols := len(colptr) - 1
	if colptr[0] != 0 {
		return nil, errors.Newf("bad colptr: first entry must be 0, got %d", colptr[0])
	}
	for j := 1; j < len(colptr); j++ {
		if colptr[j] < colptr[j-1] {
			return nil, errors.Newf("bad colptr: decreasing at entry %d", j)
		}
	}
	if colptr[cols] != uint64(len(values)) {
		return nil, errors.Newf("bad colptr: final entry %d does not match value count %d",
			colptr[cols], len(values))
	}
	if len(indices) != len(values) {
		return nil, errors.Newf("bad indices: length %d does not match value count %d",
			len(indices), len(values))
	}
	for _, i := range indices {
		if i >= nrow {
			return nil, errors.Newf("bad indices: row index %d out of range [0, %d)", i, nrow)
		}
	}

	// Filter missing-sentinel entries per column.
	kept := make([]uint64, cols)
	parallel.ParallelizeN(cfg.NThread, cols, func(start, end int) {
		for j := start; j < end; j++ {
			var n uint64
			for k := colptr[j]; k < colptr[j+1]; k++ {
				if !isMissing32(values[k], cfg.Missing) {
					n++
				}
			}
			kept[j] = n
		}
	})

	outColPtr := make([]uint64, cols+1)
	for j := 0; j < cols; j++ {
		outColPtr[j+1] = outColPtr[j] + kept[j]
	}
	nnz := outColPtr[cols]

	outIdx := make([]uint64, nnz)
	outVal := make([]float32, nnz)
	parallel.ParallelizeN(cfg.NThread, cols, func(start, end int) {
		for j := start; j < end; j++ {
			pos := outColPtr[j]
			for k := colptr[j]; k < colptr[j+1]; k++ {
				if isMissing32(values[k], cfg.Missing) {
					continue
				}
				outIdx[pos] = indices[k]
				outVal[pos] = values[k]
				pos++
			}
		}
	})

	csc := &sparse.CSC{
		ColPtr:  outColPtr,
		Indices: outIdx,
		Values:  outVal,
		Rows:    int(nrow),
		Cols:    cols,
	}
	csr := csc.ToCSR()

	return &engineMatrix{
		rows:    nrow,
		cols:    uint64(cols),
		rowPtr:  csr.RowPtr,
		indices: csr.Indices,
		values:  csr.Values,
		info:    make(map[string][]float32),
	}, nil
}
