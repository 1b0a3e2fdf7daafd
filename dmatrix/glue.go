//go:build !goxgb_legacy_capi

package dmatrix

import (
	"runtime"

	"github.com/YuminosukeSato/goxgb/capi"
	"github.com/YuminosukeSato/goxgb/sparse"
)

// Current-generation glue: construction goes through the array-interface
// entry points. The input arrays are described by JSON documents carrying
// their data pointers, so they are explicitly kept alive until the call has
// returned. Declared as variables so tests can intercept the boundary.

var nativeCreateFromCSR = func(m *sparse.CSR, cfg capi.ConstructionConfig) (capi.DMatrixHandle, error) {
	indptrJSON := capi.MakeU64ArrayInterface(m.RowPtr)
	indicesJSON := capi.MakeU64ArrayInterface(m.Indices)
	dataJSON := capi.MakeF32ArrayInterface(m.Values)
	handle, err := capi.XGDMatrixCreateFromCSR(indptrJSON, indicesJSON, dataJSON, uint64(m.Cols), cfg.JSON())
	runtime.KeepAlive(m)
	return handle, err
}

var nativeCreateFromCSC = func(m *sparse.CSC, cfg capi.ConstructionConfig) (capi.DMatrixHandle, error) {
	colptrJSON := capi.MakeU64ArrayInterface(m.ColPtr)
	indicesJSON := capi.MakeU64ArrayInterface(m.Indices)
	dataJSON := capi.MakeF32ArrayInterface(m.Values)
	handle, err := capi.XGDMatrixCreateFromCSC(colptrJSON, indicesJSON, dataJSON, uint64(m.Rows), cfg.JSON())
	runtime.KeepAlive(m)
	return handle, err
}
