package matfile

import (
	"fmt"
)

// Class identifies the MATLAB array class of an element.
type Class int

// MAT-file Level 5 array class codes.
const (
	ClassCell   Class = 1
	ClassStruct Class = 2
	ClassObject Class = 3
	ClassChar   Class = 4
	ClassSparse Class = 5
	ClassDouble Class = 6
	ClassSingle Class = 7
	ClassInt8   Class = 8
	ClassUint8  Class = 9
	ClassInt16  Class = 10
	ClassUint16 Class = 11
	ClassInt32  Class = 12
	ClassUint32 Class = 13
	ClassInt64  Class = 14
	ClassUint64 Class = 15
)

// String returns the MATLAB name of the class.
func (c Class) String() string {
	switch c {
	case ClassCell:
		return "cell"
	case ClassStruct:
		return "struct"
	case ClassObject:
		return "object"
	case ClassChar:
		return "char"
	case ClassSparse:
		return "sparse"
	case ClassDouble:
		return "double"
	case ClassSingle:
		return "single"
	case ClassInt8:
		return "int8"
	case ClassUint8:
		return "uint8"
	case ClassInt16:
		return "int16"
	case ClassUint16:
		return "uint16"
	case ClassInt32:
		return "int32"
	case ClassUint32:
		return "uint32"
	case ClassInt64:
		return "int64"
	case ClassUint64:
		return "uint64"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// IsNumeric reports whether the class holds numeric data.
func (c Class) IsNumeric() bool {
	return c >= ClassDouble && c <= ClassUint64
}

// Array is one MATLAB array: a numeric matrix, a character array, a cell
// array, or a struct array. Numeric data is held as float64 regardless of
// the stored width, matching what the downstream pipeline consumes.
type Array struct {
	// Name is the variable name for top-level arrays; nested arrays
	// (struct field values, cell contents) are unnamed.
	Name string
	// Class is the MATLAB array class.
	Class Class
	// Dims are the array dimensions as stored (column-major order).
	Dims []int
	// Complex reports whether the numeric array carried an imaginary part.
	Complex bool

	re    []float64
	im    []float64
	chars string
	cells []*Array
	// fields holds struct field names in declaration order; elems holds,
	// for every array element, one value per field in that same order.
	fields []string
	elems  [][]*Array
}

// NumElements returns the total element count (product of dimensions).
func (a *Array) NumElements() int {
	if len(a.Dims) == 0 {
		return 0
	}
	n := 1
	for _, d := range a.Dims {
		n *= d
	}
	return n
}

// IsEmpty reports whether the array has no elements.
func (a *Array) IsEmpty() bool {
	return a.NumElements() == 0
}

// IsScalar reports whether the array holds exactly one element.
func (a *Array) IsScalar() bool {
	return a.NumElements() == 1
}

// Floats returns the real part of a numeric array in storage (column-major)
// order. It returns nil for non-numeric classes.
func (a *Array) Floats() []float64 {
	return a.re
}

// Imag returns the imaginary part of a complex numeric array, or nil.
func (a *Array) Imag() []float64 {
	return a.im
}

// Float returns the single value of a scalar numeric array.
func (a *Array) Float() (float64, error) {
	if !a.Class.IsNumeric() {
		return 0, fmt.Errorf("array %q is %s, not numeric", a.Name, a.Class)
	}
	if len(a.re) != 1 {
		return 0, fmt.Errorf("array %q has %d elements, want scalar", a.Name, len(a.re))
	}
	return a.re[0], nil
}

// String returns the contents of a char array as a Go string.
func (a *Array) String() string {
	if a == nil {
		return ""
	}
	if a.Class == ClassChar {
		return a.chars
	}
	return fmt.Sprintf("<%s %v>", a.Class, a.Dims)
}

// Cell returns the i-th element of a cell array in storage order.
func (a *Array) Cell(i int) (*Array, error) {
	if a.Class != ClassCell {
		return nil, fmt.Errorf("array %q is %s, not cell", a.Name, a.Class)
	}
	if i < 0 || i >= len(a.cells) {
		return nil, fmt.Errorf("cell index %d out of range [0,%d)", i, len(a.cells))
	}
	return a.cells[i], nil
}

// NumField returns the number of struct fields, or 0 for non-structs.
func (a *Array) NumField() int {
	return len(a.fields)
}

// FieldName returns the declared name of field i.
func (a *Array) FieldName(i int) string {
	return a.fields[i]
}

// FieldNames returns the struct field names in declaration order.
func (a *Array) FieldNames() []string {
	out := make([]string, len(a.fields))
	copy(out, a.fields)
	return out
}

// Field returns field fi of struct element elem, addressed by position.
func (a *Array) Field(elem, fi int) (*Array, error) {
	if a.Class != ClassStruct {
		return nil, fmt.Errorf("array %q is %s, not struct", a.Name, a.Class)
	}
	if elem < 0 || elem >= len(a.elems) {
		return nil, fmt.Errorf("struct element %d out of range [0,%d)", elem, len(a.elems))
	}
	if fi < 0 || fi >= len(a.fields) {
		return nil, fmt.Errorf("struct field %d out of range [0,%d)", fi, len(a.fields))
	}
	return a.elems[elem][fi], nil
}

// FieldByName returns the named field of struct element elem.
func (a *Array) FieldByName(elem int, name string) (*Array, error) {
	for i, f := range a.fields {
		if f == name {
			return a.Field(elem, i)
		}
	}
	return nil, fmt.Errorf("struct %q has no field %q", a.Name, name)
}
