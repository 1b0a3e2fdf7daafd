package dmatrix

import (
	"github.com/YuminosukeSato/goxgb/capi"
	"github.com/YuminosukeSato/goxgb/pkg/errors"
)

// Per-row float metadata. The adapter forwards these to the engine; what the
// engine does with them during training is outside this package.

// SetLabel attaches training labels, one per row.
func (d *DMatrix) SetLabel(values []float32) error {
	return d.setFloatInfo("SetLabel", capi.FieldLabel, values)
}

// SetWeight attaches instance weights, one per row.
func (d *DMatrix) SetWeight(values []float32) error {
	return d.setFloatInfo("SetWeight", capi.FieldWeight, values)
}

// SetBaseMargin attaches base margins, one per row.
func (d *DMatrix) SetBaseMargin(values []float32) error {
	return d.setFloatInfo("SetBaseMargin", capi.FieldBaseMargin, values)
}

// FloatInfo returns a copy of a previously attached float field ("label",
// "weight" or "base_margin"). A field that was never set returns an empty
// slice.
func (d *DMatrix) FloatInfo(field string) ([]float32, error) {
	d.ensureOpen("FloatInfo")
	return capi.XGDMatrixGetFloatInfo(d.handle, field)
}

func (d *DMatrix) setFloatInfo(op, field string, values []float32) error {
	d.ensureOpen(op)
	if len(values) != d.rows {
		return errors.NewDimensionError(op, d.rows, len(values), 0)
	}
	return capi.XGDMatrixSetFloatInfo(d.handle, field, values)
}
