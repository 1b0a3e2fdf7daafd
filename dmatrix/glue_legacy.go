//go:build goxgb_legacy_capi

package dmatrix

import (
	"math"

	"github.com/YuminosukeSato/goxgb/capi"
	"github.com/YuminosukeSato/goxgb/pkg/errors"
	"github.com/YuminosukeSato/goxgb/sparse"
)

// Legacy-generation glue: construction goes through the deprecated
// fixed-signature entry points. These are hardcoded single-threaded and only
// support the NaN missing sentinel, so any other configuration is rejected
// before the boundary. Declared as variables so tests can intercept the
// boundary.

var nativeCreateFromCSR = func(m *sparse.CSR, cfg capi.ConstructionConfig) (capi.DMatrixHandle, error) {
	indices, err := legacyIndices(m.Indices)
	if err != nil {
		return 0, err
	}
	if !math.IsNaN(float64(cfg.Missing)) {
		return 0, errors.NewValidationError("missing",
			"the legacy construction API supports only the NaN missing sentinel", cfg.Missing)
	}
	return capi.XGDMatrixCreateFromCSREx(m.RowPtr, indices, m.Values,
		uint64(len(m.RowPtr)), uint64(len(m.Values)), uint64(m.Cols))
}

var nativeCreateFromCSC = func(m *sparse.CSC, cfg capi.ConstructionConfig) (capi.DMatrixHandle, error) {
	indices, err := legacyIndices(m.Indices)
	if err != nil {
		return 0, err
	}
	if !math.IsNaN(float64(cfg.Missing)) {
		return 0, errors.NewValidationError("missing",
			"the legacy construction API supports only the NaN missing sentinel", cfg.Missing)
	}
	return capi.XGDMatrixCreateFromCSCEx(m.ColPtr, indices, m.Values,
		uint64(len(m.ColPtr)), uint64(len(m.Values)), uint64(m.Rows))
}

func legacyIndices(indices []uint64) ([]uint32, error) {
	out := make([]uint32, len(indices))
	for i, v := range indices {
		if v > math.MaxUint32 {
			return nil, errors.NewValidationError("indices",
				"index exceeds the legacy API's 32-bit range", v)
		}
		out[i] = uint32(v)
	}
	return out, nil
}
