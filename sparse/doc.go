// Package sparse provides the compressed sparse row (CSR) and compressed
// sparse column (CSC) value types consumed by DMatrix construction.
//
// The types in this package are plain in-memory descriptions: pointer,
// index and value arrays plus a shape. Validation of the structural
// invariants (monotonic pointer array, index bounds, matching lengths) is
// performed here, before any engine boundary is crossed, so that malformed
// input is rejected with a descriptive error rather than corrupting the
// construction call.
//
// Index and pointer arrays use uint64 and values use float32, matching the
// types the engine's array-interface codec transports ("<u8" and "<f4").
package sparse
