package dmatrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/goxgb/capi"
	"github.com/YuminosukeSato/goxgb/pkg/errors"
	"github.com/YuminosukeSato/goxgb/sparse"
)

// csrRecorder intercepts the construction boundary and records the config
// each call would forward to the engine. Tests that install it must not run
// in parallel.
type csrRecorder struct {
	calls   int
	lastCfg capi.ConstructionConfig
}

func (r *csrRecorder) install(t *testing.T) {
	t.Helper()
	orig := nativeCreateFromCSR
	nativeCreateFromCSR = func(m *sparse.CSR, cfg capi.ConstructionConfig) (capi.DMatrixHandle, error) {
		r.calls++
		r.lastCfg = cfg
		return orig(m, cfg)
	}
	t.Cleanup(func() { nativeCreateFromCSR = orig })
}

// exactNNZ builds a valid CSR with the given shape and exactly nnz stored
// entries, spread as evenly as possible across the rows.
func exactNNZ(rows, cols, nnz int) *sparse.CSR {
	base := nnz / rows
	extra := nnz % rows
	rowPtr := make([]uint64, 1, rows+1)
	indices := make([]uint64, 0, nnz)
	values := make([]float32, 0, nnz)

	for i := 0; i < rows; i++ {
		n := base
		if i < extra {
			n++
		}
		for j := 0; j < n; j++ {
			indices = append(indices, uint64(j))
			values = append(values, float32(j+1))
		}
		rowPtr = append(rowPtr, uint64(len(values)))
	}

	return &sparse.CSR{RowPtr: rowPtr, Indices: indices, Values: values, Rows: rows, Cols: cols}
}

func TestExactNNZ(t *testing.T) {
	m := exactNNZ(1000, 100, 979)
	require.NoError(t, m.Validate())
	assert.Equal(t, 979, m.NNZ())

	m = exactNNZ(10000, 100, 99738)
	require.NoError(t, m.Validate())
	assert.Equal(t, 99738, m.NNZ())
}

func TestAutoTuneForcesSingleThreadBelowThreshold(t *testing.T) {
	rec := &csrRecorder{}
	rec.install(t)

	d, err := FromCSR(exactNNZ(1000, 100, 979))
	require.NoError(t, err)
	defer func() { _ = d.Close() }()

	require.Equal(t, 1, rec.calls)
	assert.Equal(t, `{"missing": NaN, "nthread": 1}`, rec.lastCfg.JSON())
}

func TestAutoTuneLeavesLargeInputsAlone(t *testing.T) {
	rec := &csrRecorder{}
	rec.install(t)

	d, err := FromCSR(exactNNZ(10000, 100, 99738))
	require.NoError(t, err)
	defer func() { _ = d.Close() }()

	require.Equal(t, 1, rec.calls)
	assert.Equal(t, `{"missing": NaN}`, rec.lastCfg.JSON())
}

func TestAutoTuneBoundary(t *testing.T) {
	tests := []struct {
		name    string
		nnz     int
		nthread int
	}{
		{"one below threshold", DefaultSingleThreadThreshold - 1, 1},
		{"exactly at threshold", DefaultSingleThreadThreshold, 0},
		{"one above threshold", DefaultSingleThreadThreshold + 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &csrRecorder{}
			rec.install(t)

			d, err := FromCSR(exactNNZ(10000, 100, tt.nnz))
			require.NoError(t, err)
			defer func() { _ = d.Close() }()

			assert.Equal(t, tt.nthread, rec.lastCfg.NThread)
		})
	}
}

func TestWithNThreadBypassesAutoTuning(t *testing.T) {
	rec := &csrRecorder{}
	rec.install(t)

	d, err := FromCSR(exactNNZ(1000, 100, 979), WithNThread(4))
	require.NoError(t, err)
	defer func() { _ = d.Close() }()

	assert.Equal(t, `{"missing": NaN, "nthread": 4}`, rec.lastCfg.JSON())
}

func TestWithNThreadRejectsNonPositive(t *testing.T) {
	rec := &csrRecorder{}
	rec.install(t)

	for _, n := range []int{0, -1} {
		d, err := FromCSR(testCSR(), WithNThread(n))
		require.Error(t, err)
		assert.Nil(t, d)

		var valErr *errors.ValueError
		assert.True(t, errors.As(err, &valErr))
	}
	assert.Equal(t, 0, rec.calls)
}

func TestWithSingleThreadThreshold(t *testing.T) {
	rec := &csrRecorder{}
	rec.install(t)

	// A per-call threshold below the input's nnz leaves nthread unset.
	d, err := FromCSR(testCSR(), WithSingleThreadThreshold(2))
	require.NoError(t, err)
	defer func() { _ = d.Close() }()
	assert.Equal(t, 0, rec.lastCfg.NThread)

	// A per-call threshold of 0 disables forcing entirely.
	d2, err := FromCSR(testCSR(), WithSingleThreadThreshold(0))
	require.NoError(t, err)
	defer func() { _ = d2.Close() }()
	assert.Equal(t, 0, rec.lastCfg.NThread)

	// A per-call threshold above nnz forces single-threaded construction.
	d3, err := FromCSR(testCSR(), WithSingleThreadThreshold(100))
	require.NoError(t, err)
	defer func() { _ = d3.Close() }()
	assert.Equal(t, 1, rec.lastCfg.NThread)
}

func TestSetSingleThreadThreshold(t *testing.T) {
	orig := SingleThreadThreshold()
	defer SetSingleThreadThreshold(orig)

	rec := &csrRecorder{}
	rec.install(t)

	SetSingleThreadThreshold(2)
	assert.Equal(t, 2, SingleThreadThreshold())

	d, err := FromCSR(testCSR())
	require.NoError(t, err)
	defer func() { _ = d.Close() }()
	assert.Equal(t, 0, rec.lastCfg.NThread)

	SetSingleThreadThreshold(0)
	d2, err := FromCSR(testCSR())
	require.NoError(t, err)
	defer func() { _ = d2.Close() }()
	assert.Equal(t, 0, rec.lastCfg.NThread)

	SetSingleThreadThreshold(1 << 20)
	d3, err := FromCSR(testCSR())
	require.NoError(t, err)
	defer func() { _ = d3.Close() }()
	assert.Equal(t, 1, rec.lastCfg.NThread)
}

func TestMalformedInputNeverReachesEngine(t *testing.T) {
	rec := &csrRecorder{}
	rec.install(t)

	bad := []*sparse.CSR{
		nil,
		{RowPtr: []uint64{0, 2}, Indices: []uint64{0, 1}, Values: []float32{1, 2}, Rows: 3, Cols: 4},
		{RowPtr: []uint64{0, 3, 2, 4}, Indices: []uint64{0, 2, 1, 3}, Values: []float32{1, 2, 3, 4}, Rows: 3, Cols: 4},
		{RowPtr: []uint64{0, 2, 2, 4}, Indices: []uint64{0, 9, 1, 3}, Values: []float32{1, 2, 3, 4}, Rows: 3, Cols: 4},
		{RowPtr: []uint64{0, 2, 2, 4}, Indices: []uint64{0, 2, 1, 3}, Values: []float32{1, 2, 3}, Rows: 3, Cols: 4},
	}
	for _, m := range bad {
		_, err := FromCSR(m)
		assert.Error(t, err)
	}
	assert.Equal(t, 0, rec.calls)
}

func TestWithMissingForwarded(t *testing.T) {
	rec := &csrRecorder{}
	rec.install(t)

	d, err := FromCSR(testCSR(), WithMissing(0), WithNThread(2))
	require.NoError(t, err)
	defer func() { _ = d.Close() }()

	assert.Equal(t, `{"missing": 0, "nthread": 2}`, rec.lastCfg.JSON())
}
