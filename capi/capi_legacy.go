//go:build goxgb_legacy_capi

package capi

import (
	"math"

	"github.com/YuminosukeSato/goxgb/pkg/errors"
)

// Deprecated-generation entry points. These mirror the fixed-signature
// functions removed from the native library: no array-interface documents,
// no construction config. The missing sentinel is fixed to NaN and
// construction is hardcoded single-threaded.

// XGDMatrixCreateFromCSREx creates a DMatrix from raw CSR buffers. nindptr
// and nelem are the logical lengths of indptr and of indices/data; ncol is
// the number of columns.
func XGDMatrixCreateFromCSREx(indptr []uint64, indices []uint32, data []float32, nindptr, nelem, ncol uint64) (DMatrixHandle, error) {
	var handle DMatrixHandle
	err := errors.SafeExecute("XGDMatrixCreateFromCSREx", func() error {
		indptr64, indices64, values, err := checkLegacyBuffers(indptr, indices, data, nindptr, nelem)
		if err != nil {
			return err
		}
		cfg := ConstructionConfig{Missing: float32(math.NaN()), NThread: 1}
		m, err := buildFromCSR(indptr64, indices64, values, ncol, cfg)
		if err != nil {
			return err
		}
		handle = registerMatrix(m)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return handle, nil
}

// XGDMatrixCreateFromCSCEx creates a DMatrix from raw CSC buffers. nrow is
// the number of rows.
func XGDMatrixCreateFromCSCEx(colptr []uint64, indices []uint32, data []float32, ncolptr, nelem, nrow uint64) (DMatrixHandle, error) {
	var handle DMatrixHandle
	err := errors.SafeExecute("XGDMatrixCreateFromCSCEx", func() error {
		colptr64, indices64, values, err := checkLegacyBuffers(colptr, indices, data, ncolptr, nelem)
		if err != nil {
			return err
		}
		cfg := ConstructionConfig{Missing: float32(math.NaN()), NThread: 1}
		m, err := buildFromCSC(colptr64, indices64, values, nrow, cfg)
		if err != nil {
			return err
		}
		handle = registerMatrix(m)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return handle, nil
}

func checkLegacyBuffers(ptr []uint64, indices []uint32, data []float32, nptr, nelem uint64) ([]uint64, []uint64, []float32, error) {
	if uint64(len(ptr)) != nptr {
		return nil, nil, nil, errors.Newf("bad indptr: declared length %d does not match buffer length %d", nptr, len(ptr))
	}
	if uint64(len(indices)) != nelem || uint64(len(data)) != nelem {
		return nil, nil, nil, errors.Newf("bad buffers: declared element count %d does not match indices %d / data %d",
			nelem, len(indices), len(data))
	}
	indices64 := make([]uint64, len(indices))
	for i, v := range indices {
		indices64[i] = uint64(v)
	}
	return ptr, indices64, data, nil
}
