// Package goxgb provides DMatrix construction for XGBoost-compatible
// engines in pure Go.
//
// The library's job is narrow: marshal in-memory sparse matrices (CSR or
// CSC form) across the engine boundary and forward the construction
// configuration. Training, tree building and evaluation are owned by the
// engine and are deliberately not part of this module.
//
// # Features
//
// - Validated construction: malformed input is rejected with a descriptive
// error before any engine call
// - Thread-count auto-tuning: small inputs are built single-threaded to
// avoid synchronization overhead, with a configurable crossover threshold
// - Array-interface marshaling matching the engine's JSON dialect
// - Structured logging and errors throughout
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/goxgb/dmatrix"
//	    "github.com/YuminosukeSato/goxgb/sparse"
//	)
//
//	func main() {
//	    m := sparse.Random(1000, 100, 0.1, 12345)
//
//	    dm, err := dmatrix.FromCSR(m)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer dm.Close()
//
//	    fmt.Println(dm.NumRow(), dm.NumCol(), dm.NumNonMissing())
//	}
//
// # Package layout
//
//   - sparse: CSR/CSC value types, validation, dense conversion
//   - dmatrix: the construction adapter and auto-tuning policy
//   - capi: the engine boundary (array-interface codec, entry points)
//   - pkg/errors, pkg/log: structured errors and logging
package goxgb
