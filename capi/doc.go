// Package capi exposes the XGBoost C-API surface for DMatrix construction,
// backed by a pure Go engine.
//
// The package mirrors the native library's boundary: construction entry
// points receive JSON array-interface documents describing caller-owned
// buffers plus a JSON construction config, and hand back an opaque
// DMatrixHandle. The engine copies all data during construction, so caller
// buffers may be reused or freed as soon as the call returns; no aliasing
// persists into the handle.
//
// Two entry-point generations exist and are never compiled together. The
// default build provides the current array-interface functions
// (XGDMatrixCreateFromCSR/CSC); building with the goxgb_legacy_capi tag
// swaps in the deprecated fixed-signature functions
// (XGDMatrixCreateFromCSREx/CSCEx), whose construction is hardcoded
// single-threaded. Call sites select the generation through build-time glue,
// never at runtime.
//
// Any use of a freed or unknown handle is a programming error and panics;
// it is not a recoverable condition.
package capi
