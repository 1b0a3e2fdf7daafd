package dmatrix

import (
	"sync"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goxgb/capi"
	"github.com/YuminosukeSato/goxgb/pkg/errors"
	"github.com/YuminosukeSato/goxgb/pkg/log"
	"github.com/YuminosukeSato/goxgb/sparse"
)

// DMatrix owns an engine matrix handle for the lifetime of a training or
// prediction session. The adapter keeps no reference into the input buffers
// after construction; the engine copies everything it needs.
//
// Close releases the handle. Using a DMatrix after Close is a programming
// error and panics.
type DMatrix struct {
	mu     sync.Mutex
	handle capi.DMatrixHandle
	rows   int
	cols   int
	closed bool
}

// FromCSR constructs a DMatrix from a CSR input. The input is fully
// validated before the engine boundary is crossed; malformed input never
// reaches the engine. The caller may reuse or release the input arrays as
// soon as the call returns.
func FromCSR(m *sparse.CSR, opts ...Option) (*DMatrix, error) {
	if m == nil {
		return nil, errors.NewValidationError("csr", "matrix must not be nil", nil)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	cfg := o.config(m.NNZ())
	handle, err := nativeCreateFromCSR(m, cfg)
	if err != nil {
		return nil, errors.NewConstructionError("FromCSR", "construction failed", err)
	}

	log.GetLoggerWithName("dmatrix").Debug("DMatrix constructed",
		log.OperationKey, log.OperationFromCSR,
		log.RowsKey, m.Rows,
		log.ColsKey, m.Cols,
		log.NNZKey, m.NNZ(),
		log.NThreadKey, cfg.NThread,
		log.HandleKey, uint64(handle),
		log.DurationMsKey, float64(time.Since(start).Microseconds())/1000.0,
	)

	return &DMatrix{handle: handle, rows: m.Rows, cols: m.Cols}, nil
}

// FromCSC constructs a DMatrix from a CSC input under the same contract as
// FromCSR.
func FromCSC(m *sparse.CSC, opts ...Option) (*DMatrix, error) {
	if m == nil {
		return nil, errors.NewValidationError("csc", "matrix must not be nil", nil)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	cfg := o.config(m.NNZ())
	handle, err := nativeCreateFromCSC(m, cfg)
	if err != nil {
		return nil, errors.NewConstructionError("FromCSC", "construction failed", err)
	}

	log.GetLoggerWithName("dmatrix").Debug("DMatrix constructed",
		log.OperationKey, log.OperationFromCSC,
		log.RowsKey, m.Rows,
		log.ColsKey, m.Cols,
		log.NNZKey, m.NNZ(),
		log.NThreadKey, cfg.NThread,
		log.HandleKey, uint64(handle),
		log.DurationMsKey, float64(time.Since(start).Microseconds())/1000.0,
	)

	return &DMatrix{handle: handle, rows: m.Rows, cols: m.Cols}, nil
}

// FromDense constructs a DMatrix from a gonum dense matrix. Cells matching
// the missing sentinel (NaN by default) are not stored.
func FromDense(m mat.Matrix, opts ...Option) (*DMatrix, error) {
	if m == nil {
		return nil, errors.NewValidationError("dense", "matrix must not be nil", nil)
	}
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	csr, err := sparse.FromDense(m, float64(o.missing))
	if err != nil {
		return nil, err
	}
	return FromCSR(csr, opts...)
}

// NumRow returns the number of rows of the constructed matrix.
func (d *DMatrix) NumRow() int {
	d.ensureOpen("NumRow")
	return int(capi.XGDMatrixNumRow(d.handle))
}

// NumCol returns the number of columns of the constructed matrix.
func (d *DMatrix) NumCol() int {
	d.ensureOpen("NumCol")
	return int(capi.XGDMatrixNumCol(d.handle))
}

// NumNonMissing returns the number of entries the engine stored.
func (d *DMatrix) NumNonMissing() int {
	d.ensureOpen("NumNonMissing")
	return int(capi.XGDMatrixNumNonMissing(d.handle))
}

// AsCSR reads the logical content of the matrix back out of the engine as a
// fresh CSR owned by the caller.
func (d *DMatrix) AsCSR() *sparse.CSR {
	d.ensureOpen("AsCSR")
	indptr, indices, values := capi.XGDMatrixGetDataAsCSR(d.handle)
	return &sparse.CSR{
		RowPtr:  indptr,
		Indices: indices,
		Values:  values,
		Rows:    d.rows,
		Cols:    d.cols,
	}
}

// ToDense materializes the logical content as a gonum dense matrix, writing
// missing into every cell without a stored entry.
func (d *DMatrix) ToDense(missing float64) *mat.Dense {
	return d.AsCSR().ToDense(missing)
}

// Close releases the engine handle. Close is safe to call exactly once;
// a second Close returns ErrClosedMatrix without touching the engine.
func (d *DMatrix) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return errors.Wrap(errors.ErrClosedMatrix, "Close")
	}
	d.closed = true
	return capi.XGDMatrixFree(d.handle)
}

// ensureOpen panics when the matrix has been closed. Use-after-close is a
// programming error, not a recoverable condition.
func (d *DMatrix) ensureOpen(op string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		panic("goxgb: " + op + " called on closed DMatrix")
	}
}
