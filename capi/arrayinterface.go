package capi

import (
	"encoding/json"
	"fmt"
	"unsafe"

	"github.com/YuminosukeSato/goxgb/pkg/errors"
)

// Array-interface type strings transported across the boundary:
// little-endian float32 and little-endian uint64.
const (
	typeStrF32 = "<f4"
	typeStrU64 = "<u8"
)

const arrayInterfaceVersion = 3

// MakeF32ArrayInterface returns the JSON array-interface document describing
// a float32 slice. The document embeds the slice's data pointer; the caller
// must keep the slice alive and unmodified until the construction call that
// consumes the document has returned.
func MakeF32ArrayInterface(data []float32) string {
	var ptr uintptr
	if len(data) > 0 {
		ptr = uintptr(unsafe.Pointer(&data[0]))
	}
	return fmt.Sprintf(`{"data":[%d,false],"shape":[%d],"strides":null,"typestr":%q,"version":%d}`,
		ptr, len(data), typeStrF32, arrayInterfaceVersion)
}

// MakeU64ArrayInterface returns the JSON array-interface document describing
// a uint64 slice, under the same lifetime contract as MakeF32ArrayInterface.
func MakeU64ArrayInterface(data []uint64) string {
	var ptr uintptr
	if len(data) > 0 {
		ptr = uintptr(unsafe.Pointer(&data[0]))
	}
	return fmt.Sprintf(`{"data":[%d,false],"shape":[%d],"strides":null,"typestr":%q,"version":%d}`,
		ptr, len(data), typeStrU64, arrayInterfaceVersion)
}

// arrayInterface is the decoded form of an array-interface document.
type arrayInterface struct {
	Data    [2]json.RawMessage `json:"data"`
	Shape   []uint64           `json:"shape"`
	TypeStr string             `json:"typestr"`
	Version int                `json:"version"`
}

func parseArrayInterface(doc string) (*arrayInterface, error) {
	var ai arrayInterface
	if err := json.Unmarshal([]byte(doc), &ai); err != nil {
		return nil, errors.NewValidationError("array_interface", "invalid JSON document", doc)
	}
	if ai.Version != arrayInterfaceVersion {
		return nil, errors.NewValidationError("array_interface",
			fmt.Sprintf("unsupported version, want %d", arrayInterfaceVersion), ai.Version)
	}
	if len(ai.Shape) != 1 {
		return nil, errors.NewValidationError("array_interface",
			"expected a one-dimensional shape", ai.Shape)
	}
	return &ai, nil
}

func (a *arrayInterface) dataPtr() (uintptr, error) {
	var ptr uint64
	if err := json.Unmarshal(a.Data[0], &ptr); err != nil {
		return 0, errors.NewValidationError("array_interface", "invalid data pointer", string(a.Data[0]))
	}
	return uintptr(ptr), nil
}

// f32Slice reconstructs the described float32 buffer. The returned slice
// aliases caller memory and must only be read while the construction call is
// in flight.
func (a *arrayInterface) f32Slice() ([]float32, error) {
	if a.TypeStr != typeStrF32 {
		return nil, errors.NewValidationError("array_interface",
			fmt.Sprintf("expected typestr %q", typeStrF32), a.TypeStr)
	}
	n := a.Shape[0]
	if n == 0 {
		return nil, nil
	}
	ptr, err := a.dataPtr()
	if err != nil {
		return nil, err
	}
	if ptr == 0 {
		return nil, errors.NewValidationError("array_interface", "nil data pointer with non-zero shape", n)
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(ptr)), n), nil
}

// u64Slice reconstructs the described uint64 buffer under the same contract
// as f32Slice.
func (a *arrayInterface) u64Slice() ([]uint64, error) {
	if a.TypeStr != typeStrU64 {
		return nil, errors.NewValidationError("array_interface",
			fmt.Sprintf("expected typestr %q", typeStrU64), a.TypeStr)
	}
	n := a.Shape[0]
	if n == 0 {
		return nil, nil
	}
	ptr, err := a.dataPtr()
	if err != nil {
		return nil, err
	}
	if ptr == 0 {
		return nil, errors.NewValidationError("array_interface", "nil data pointer with non-zero shape", n)
	}
	return unsafe.Slice((*uint64)(unsafe.Pointer(ptr)), n), nil
}
