// Package dmatrix provides the construction adapter between caller-supplied
// sparse matrices and the engine's DMatrix handles.
//
// The adapter is stateless and reentrant: each call validates its input,
// resolves the construction config, crosses the engine boundary once and
// hands back a *DMatrix owning the resulting handle. Concurrent calls with
// independent inputs need no coordination.
//
// Thread-count auto-tuning: when the caller does not request a thread count
// explicitly, construction is forced single-threaded for inputs below the
// single-thread threshold (30,000 stored entries by default) because thread
// synchronization overhead dominates wall-clock time for small inputs. At or
// above the threshold the engine default (one worker per core) applies. The
// threshold is process-wide configuration with a per-call override; 30,000
// is an empirically measured crossover, not a guaranteed optimum, so
// recalibrate it when the engine's threading behavior changes.
package dmatrix
