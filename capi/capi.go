//go:build !goxgb_legacy_capi

package capi

import (
	"github.com/YuminosukeSato/goxgb/pkg/errors"
)

// XGDMatrixCreateFromCSR creates a DMatrix from CSR buffers described by
// JSON array-interface documents (indptr and indices as "<u8", data as
// "<f4"). ncol is the number of columns; configJSON carries the
// construction config ({"missing": ..., "nthread": ...}, empty string for
// defaults).
//
// The caller's buffers must stay live and unmodified until this function
// returns; the engine copies them and keeps no reference afterwards. A
// failed construction registers nothing, so there is no handle to leak.
func XGDMatrixCreateFromCSR(indptrJSON, indicesJSON, dataJSON string, ncol uint64, configJSON string) (DMatrixHandle, error) {
	var handle DMatrixHandle
	err := errors.SafeExecute("XGDMatrixCreateFromCSR", func() error {
		indptr, indices, values, err := resolveBuffers(indptrJSON, indicesJSON, dataJSON)
		if err != nil {
			return err
		}
		cfg, err := parseOptionalConfig(configJSON)
		if err != nil {
			return err
		}
		m, err := buildFromCSR(indptr, indices, values, ncol, cfg)
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

// XGDMatrixCreateFromCSC creates a DMatrix from CSC buffers described by
// JSON array-interface documents, under the same contract as
// XGDMatrixCreateFromCSR. nrow is the number of rows.
func XGDMatrixCreateFromCSC(colptrJSON, indicesJSON, dataJSON string, nrow uint64, configJSON string) (DMatrixHandle, error) {
	var handle DMatrixHandle
	err := errors.SafeExecute("XGDMatrixCreateFromCSC", func() error {
		colptr, indices, values, err := resolveBuffers(colptrJSON, indicesJSON, dataJSON)
		if err != nil {
			return err
		}
		cfg, err := parseOptionalConfig(configJSON)
		if err != nil {
			return err
		}
		m, err := buildFromCSC(colptr, indices, values, nrow, cfg)
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

func resolveBuffers(ptrJSON, indicesJSON, dataJSON string) (ptr, indices []uint64, values []float32, err error) {
	ptrAI, err := parseArrayInterface(ptrJSON)
	if err != nil {
		return nil, nil, nil, err
	}
	indicesAI, err := parseArrayInterface(indicesJSON)
	if err != nil {
		return nil, nil, nil, err
	}
	dataAI, err := parseArrayInterface(dataJSON)
	if err != nil {
		return nil, nil, nil, err
	}
	if ptr, err = ptrAI.u64Slice(); err != nil {
		return nil, nil, nil, err
	}
	if indices, err = indicesAI.u64Slice(); err != nil {
		return nil, nil, nil, err
	}
	if values, err = dataAI.f32Slice(); err != nil {
		return nil, nil, nil, err
	}
	return ptr, indices, values, nil
}

func parseOptionalConfig(configJSON string) (ConstructionConfig, error) {
	if configJSON == "" {
		return DefaultConstructionConfig(), nil
	}
	return ParseConstructionConfig(configJSON)
}
