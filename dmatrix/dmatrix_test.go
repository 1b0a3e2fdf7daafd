package dmatrix

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goxgb/pkg/errors"
	"github.com/YuminosukeSato/goxgb/sparse"
)

// testCSR returns the 3x4 fixture used throughout the boundary tests:
//
//	[1 0 2 0]
//	[0 0 0 0]
//	[0 3 0 4]
func testCSR() *sparse.CSR {
	return &sparse.CSR{
		RowPtr:  []uint64{0, 2, 2, 4},
		Indices: []uint64{0, 2, 1, 3},
		Values:  []float32{1, 2, 3, 4},
		Rows:    3,
		Cols:    4,
	}
}

func TestFromCSRRoundTrip(t *testing.T) {
	in := testCSR()
	d, err := FromCSR(in)
	require.NoError(t, err)
	defer func() { _ = d.Close() }()

	assert.Equal(t, 3, d.NumRow())
	assert.Equal(t, 4, d.NumCol())
	assert.Equal(t, in.NNZ(), d.NumNonMissing())

	out := d.AsCSR()
	assert.Equal(t, in.RowPtr, out.RowPtr)
	assert.Equal(t, in.Indices, out.Indices)
	assert.Equal(t, in.Values, out.Values)
}

func TestFromCSRRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		m    *sparse.CSR
	}{
		{"nil matrix", nil},
		{
			"short rowptr",
			&sparse.CSR{RowPtr: []uint64{0, 2}, Indices: []uint64{0, 1}, Values: []float32{1, 2}, Rows: 3, Cols: 4},
		},
		{
			"decreasing rowptr",
			&sparse.CSR{RowPtr: []uint64{0, 2, 1, 4}, Indices: []uint64{0, 2, 1, 3}, Values: []float32{1, 2, 3, 4}, Rows: 3, Cols: 4},
		},
		{
			"column index out of range",
			&sparse.CSR{RowPtr: []uint64{0, 2, 2, 4}, Indices: []uint64{0, 2, 1, 4}, Values: []float32{1, 2, 3, 4}, Rows: 3, Cols: 4},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := FromCSR(tt.m)
			assert.Error(t, err)
			assert.Nil(t, d)
		})
	}
}

func TestFromCSCMatchesFromCSR(t *testing.T) {
	csr := testCSR()
	csc := csr.ToCSC()

	fromRow, err := FromCSR(csr)
	require.NoError(t, err)
	defer func() { _ = fromRow.Close() }()

	fromCol, err := FromCSC(csc)
	require.NoError(t, err)
	defer func() { _ = fromCol.Close() }()

	assert.Equal(t, fromRow.NumRow(), fromCol.NumRow())
	assert.Equal(t, fromRow.NumCol(), fromCol.NumCol())
	assert.Equal(t, fromRow.AsCSR(), fromCol.AsCSR())
}

func TestFromCSRDropsMissingValues(t *testing.T) {
	nan := float32(math.NaN())
	in := &sparse.CSR{
		RowPtr:  []uint64{0, 2, 2, 4},
		Indices: []uint64{0, 2, 1, 3},
		Values:  []float32{1, nan, 3, 4},
		Rows:    3,
		Cols:    4,
	}

	d, err := FromCSR(in)
	require.NoError(t, err)
	defer func() { _ = d.Close() }()

	assert.Equal(t, 3, d.NumNonMissing())
	out := d.AsCSR()
	assert.Equal(t, []uint64{0, 1, 1, 3}, out.RowPtr)
	assert.Equal(t, []uint64{0, 1, 3}, out.Indices)
	assert.Equal(t, []float32{1, 3, 4}, out.Values)
}

func TestFromCSRWithNumericMissing(t *testing.T) {
	d, err := FromCSR(testCSR(), WithMissing(2))
	require.NoError(t, err)
	defer func() { _ = d.Close() }()

	assert.Equal(t, 3, d.NumNonMissing())
}

func TestFromDense(t *testing.T) {
	nan := math.NaN()
	dense := mat.NewDense(3, 4, []float64{
		1, nan, 2, nan,
		nan, nan, nan, nan,
		nan, 3, nan, 4,
	})

	d, err := FromDense(dense)
	require.NoError(t, err)
	defer func() { _ = d.Close() }()

	assert.Equal(t, 3, d.NumRow())
	assert.Equal(t, 4, d.NumCol())
	assert.Equal(t, 4, d.NumNonMissing())

	out := d.AsCSR()
	assert.Equal(t, testCSR(), out)
}

func TestFromDenseZeroMissing(t *testing.T) {
	dense := mat.NewDense(2, 3, []float64{
		1, 0, 2,
		0, 3, 0,
	})

	d, err := FromDense(dense, WithMissing(0))
	require.NoError(t, err)
	defer func() { _ = d.Close() }()

	assert.Equal(t, 3, d.NumNonMissing())

	back := d.ToDense(0)
	assert.True(t, mat.Equal(dense, back))
}

func TestFromDenseNil(t *testing.T) {
	d, err := FromDense(nil)
	assert.Error(t, err)
	assert.Nil(t, d)
}

func TestConstructionIsDeterministic(t *testing.T) {
	in := sparse.Random(500, 64, 0.1, 42)

	first, err := FromCSR(in)
	require.NoError(t, err)
	defer func() { _ = first.Close() }()

	second, err := FromCSR(in)
	require.NoError(t, err)
	defer func() { _ = second.Close() }()

	assert.Equal(t, first.AsCSR(), second.AsCSR())
}

func TestCloseSemantics(t *testing.T) {
	d, err := FromCSR(testCSR())
	require.NoError(t, err)

	require.NoError(t, d.Close())

	err = d.Close()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrClosedMatrix))

	assert.Panics(t, func() { d.NumRow() })
	assert.Panics(t, func() { d.AsCSR() })
}

func TestFloatInfo(t *testing.T) {
	d, err := FromCSR(testCSR())
	require.NoError(t, err)
	defer func() { _ = d.Close() }()

	labels := []float32{0, 1, 0}
	require.NoError(t, d.SetLabel(labels))

	got, err := d.FloatInfo("label")
	require.NoError(t, err)
	assert.Equal(t, labels, got)

	weights := []float32{1, 2, 3}
	require.NoError(t, d.SetWeight(weights))
	require.NoError(t, d.SetBaseMargin([]float32{0.5, 0.5, 0.5}))

	missing, err := d.FloatInfo("weight")
	require.NoError(t, err)
	assert.Equal(t, weights, missing)
}

func TestFloatInfoLengthMismatch(t *testing.T) {
	d, err := FromCSR(testCSR())
	require.NoError(t, err)
	defer func() { _ = d.Close() }()

	err = d.SetLabel([]float32{0, 1})
	require.Error(t, err)

	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
}
