package dmatrix

import (
	"math"
	"sync/atomic"

	"github.com/YuminosukeSato/goxgb/capi"
	"github.com/YuminosukeSato/goxgb/pkg/errors"
)

// DefaultSingleThreadThreshold is the stored-entry count below which
// construction is forced single-threaded when the caller does not request a
// thread count. The value is the measured crossover point where parallel
// construction starts to beat single-threaded construction.
const DefaultSingleThreadThreshold = 30000

var singleThreadThreshold atomic.Int64

func init() {
	singleThreadThreshold.Store(DefaultSingleThreadThreshold)
}

// SingleThreadThreshold returns the process-wide auto-tuning threshold.
func SingleThreadThreshold() int {
	return int(singleThreadThreshold.Load())
}

// SetSingleThreadThreshold replaces the process-wide auto-tuning threshold.
// A value of 0 or below disables forcing: every construction uses the engine
// default unless an explicit thread count is given.
func SetSingleThreadThreshold(n int) {
	singleThreadThreshold.Store(int64(n))
}

// Option configures a single construction call.
type Option func(*options)

type options struct {
	missing           float32
	nthread           int
	explicitNThread   bool
	threshold         int
	explicitThreshold bool
}

// WithMissing sets the missing-value sentinel. The default is NaN.
func WithMissing(missing float32) Option {
	return func(o *options) {
		o.missing = missing
	}
}

// WithNThread requests an explicit construction thread count, bypassing
// auto-tuning. The count must be positive.
func WithNThread(n int) Option {
	return func(o *options) {
		o.nthread = n
		o.explicitNThread = true
	}
}

// WithSingleThreadThreshold overrides the auto-tuning threshold for this
// call only. A value of 0 or below disables forcing for this call.
func WithSingleThreadThreshold(n int) Option {
	return func(o *options) {
		o.threshold = n
		o.explicitThreshold = true
	}
}

func applyOptions(opts []Option) (*options, error) {
	o := &options{missing: float32(math.NaN())}
	for _, opt := range opts {
		opt(o)
	}
	if o.explicitNThread && o.nthread < 1 {
		return nil, errors.NewValueError("applyOptions", "nthread must be a positive integer")
	}
	return o, nil
}

// config resolves the construction config for an input with nnz stored
// entries. Auto-tuning applies only when the caller did not set an explicit
// thread count: below the threshold nthread is forced to 1, otherwise it is
// left unset so the engine picks its default.
func (o *options) config(nnz int) capi.ConstructionConfig {
	cfg := capi.ConstructionConfig{Missing: o.missing}
	if o.explicitNThread {
		cfg.NThread = o.nthread
		return cfg
	}
	threshold := SingleThreadThreshold()
	if o.explicitThreshold {
		threshold = o.threshold
	}
	if threshold > 0 && nnz < threshold {
		cfg.NThread = 1
	}
	return cfg
}
