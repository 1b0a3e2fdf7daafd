// Package log defines standard attribute keys for matrix construction
// operations.
//
// Using these keys consistently enables structured analysis of construction
// logs: which entry point ran, the shape and sparsity of the input, and the
// threading configuration that was forwarded to the engine.

package log

// Operation context.
const (
	// OperationKey specifies the construction operation being performed.
	// Standard values: "from_csr", "from_csc", "from_dense", "close".
	OperationKey = "op"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "dmatrix", "capi", "sparse"
	ComponentKey = "component"
)

// Matrix shape and sparsity.
const (
	// RowsKey indicates the number of rows of the matrix being built.
	RowsKey = "matrix.rows"

	// ColsKey indicates the number of columns of the matrix being built.
	ColsKey = "matrix.cols"

	// NNZKey indicates the number of stored (non-zero) entries.
	NNZKey = "matrix.nnz"

	// HandleKey carries the opaque engine handle value after construction.
	HandleKey = "matrix.handle"
)

// Construction configuration.
const (
	// NThreadKey records the thread count forwarded to the engine.
	// 0 means the engine default (all cores).
	NThreadKey = "config.nthread"

	// MissingKey records the missing-value sentinel in effect.
	MissingKey = "config.missing"

	// ThresholdKey records the single-thread auto-tuning threshold in effect.
	ThresholdKey = "config.threshold"
)

// Performance.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Error context.
const (
	// ErrorTypeKey categorizes the type of error encountered.
	// Examples: "ValidationError", "ConstructionError"
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information for debugging.
	StacktraceKey = "error.stacktrace"
)

// Standard attribute values for construction operations.
const (
	OperationFromCSR   = "from_csr"
	OperationFromCSC   = "from_csc"
	OperationFromDense = "from_dense"
	OperationClose     = "close"
)
