// Package mattest builds small MAT-file Level 5 byte buffers for tests.
// It supports just enough of the format to exercise the reader and the
// battery pipeline: little-endian numeric, char, cell and struct arrays,
// optionally wrapped in zlib-compressed elements. It is test support code,
// not a general MAT writer.
package mattest

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"math"
	"unicode/utf16"
)

const (
	miINT8       = 1
	miINT32      = 5
	miUINT32     = 6
	miDOUBLE     = 9
	miUINT16     = 4
	miMATRIX     = 14
	miCOMPRESSED = 15

	mxCell   = 1
	mxStruct = 2
	mxChar   = 4
	mxDouble = 6

	complexFlag = 0x0800

	fieldNameLen = 32
)

// Val is an encodable MATLAB array value.
type Val interface {
	encode(name string) []byte
}

// Var is a named top-level variable.
type Var struct {
	Name string
	Val  Val
}

// V pairs a name with a value.
func V(name string, v Val) Var {
	return Var{Name: name, Val: v}
}

// FileBytes assembles a complete little-endian MAT-file from the given
// top-level variables.
func FileBytes(vars ...Var) []byte {
	var buf bytes.Buffer
	buf.Write(header())
	for _, v := range vars {
		buf.Write(v.Val.encode(v.Name))
	}
	return buf.Bytes()
}

// CompressedFileBytes is FileBytes with every variable wrapped in a
// zlib-compressed element, the way MATLAB -v7 saves archives.
func CompressedFileBytes(vars ...Var) []byte {
	var buf bytes.Buffer
	buf.Write(header())
	for _, v := range vars {
		var z bytes.Buffer
		zw := zlib.NewWriter(&z)
		zw.Write(v.Val.encode(v.Name))
		zw.Close()
		buf.Write(element(miCOMPRESSED, z.Bytes()))
	}
	return buf.Bytes()
}

func header() []byte {
	h := make([]byte, 128)
	copy(h, "MATLAB 5.0 MAT-file, Platform: GLNXA64, Created by: mattest")
	for i := len("MATLAB 5.0 MAT-file, Platform: GLNXA64, Created by: mattest"); i < 116; i++ {
		h[i] = ' '
	}
	binary.LittleEndian.PutUint16(h[124:], 0x0100)
	h[126] = 'I'
	h[127] = 'M'
	return h
}

type numVal struct {
	dims []int
	re   []float64
	im   []float64
}

// Num builds a double array with the given dimensions.
func Num(dims []int, vals ...float64) Val {
	return numVal{dims: dims, re: vals}
}

// Scalar builds a 1x1 double array.
func Scalar(v float64) Val {
	return Num([]int{1, 1}, v)
}

// Row builds a 1xN double array.
func Row(vals ...float64) Val {
	return Num([]int{1, len(vals)}, vals...)
}

// NumComplex builds a complex double array.
func NumComplex(dims []int, re, im []float64) Val {
	return numVal{dims: dims, re: re, im: im}
}

func (v numVal) encode(name string) []byte {
	var sub bytes.Buffer
	sub.Write(element(miDOUBLE, doubleBytes(v.re)))
	if v.im != nil {
		sub.Write(element(miDOUBLE, doubleBytes(v.im)))
	}
	flags := uint32(mxDouble)
	if v.im != nil {
		flags |= complexFlag
	}
	return matrix(name, flags, v.dims, sub.Bytes())
}

type charVal struct {
	s string
}

// Char builds a 1xN char array stored as UTF-16 units.
func Char(s string) Val {
	return charVal{s: s}
}

func (v charVal) encode(name string) []byte {
	units := utf16.Encode([]rune(v.s))
	data := make([]byte, 2*len(units))
	for i, u := range units {
		binary.LittleEndian.PutUint16(data[2*i:], u)
	}
	sub := element(miUINT16, data)
	return matrix(name, mxChar, []int{1, len(units)}, sub)
}

type cellVal struct {
	dims  []int
	elems []Val
}

// Cell builds a cell array; elems are in storage (column-major) order.
func Cell(dims []int, elems ...Val) Val {
	return cellVal{dims: dims, elems: elems}
}

func (v cellVal) encode(name string) []byte {
	var sub bytes.Buffer
	for _, e := range v.elems {
		sub.Write(e.encode(""))
	}
	return matrix(name, mxCell, v.dims, sub.Bytes())
}

type structVal struct {
	dims   []int
	fields []string
	elems  [][]Val
}

// Struct builds a struct array. elems holds one slice per array element,
// each with one value per field in field order.
func Struct(dims []int, fields []string, elems ...[]Val) Val {
	return structVal{dims: dims, fields: fields, elems: elems}
}

func (v structVal) encode(name string) []byte {
	var sub bytes.Buffer

	lenBody := make([]byte, 4)
	binary.LittleEndian.PutUint32(lenBody, fieldNameLen)
	sub.Write(element(miINT32, lenBody))

	names := make([]byte, fieldNameLen*len(v.fields))
	for i, f := range v.fields {
		copy(names[i*fieldNameLen:], f)
	}
	sub.Write(element(miINT8, names))

	for _, elem := range v.elems {
		for _, fv := range elem {
			sub.Write(fv.encode(""))
		}
	}
	return matrix(name, mxStruct, v.dims, sub.Bytes())
}

type emptyVal struct{}

// Empty builds the 0x0 empty array.
func Empty() Val {
	return emptyVal{}
}

func (emptyVal) encode(string) []byte {
	return element(miMATRIX, nil)
}

// matrix wraps class-specific subelements into a full miMATRIX element.
func matrix(name string, flagWord uint32, dims []int, sub []byte) []byte {
	var body bytes.Buffer

	flags := make([]byte, 8)
	binary.LittleEndian.PutUint32(flags, flagWord)
	body.Write(element(miUINT32, flags))

	dimBody := make([]byte, 4*len(dims))
	for i, d := range dims {
		binary.LittleEndian.PutUint32(dimBody[4*i:], uint32(int32(d)))
	}
	body.Write(element(miINT32, dimBody))

	body.Write(element(miINT8, []byte(name)))

	body.Write(sub)
	return element(miMATRIX, body.Bytes())
}

// element encodes one data element, using the small-data-element format
// when the payload fits, the way MATLAB writers do.
func element(typ int, data []byte) []byte {
	if n := len(data); n > 0 && n <= 4 {
		out := make([]byte, 8)
		binary.LittleEndian.PutUint32(out, uint32(typ)|uint32(n)<<16)
		copy(out[4:], data)
		return out
	}

	padded := len(data)
	if rem := padded % 8; rem != 0 {
		padded += 8 - rem
	}
	out := make([]byte, 8+padded)
	binary.LittleEndian.PutUint32(out, uint32(typ))
	binary.LittleEndian.PutUint32(out[4:], uint32(len(data)))
	copy(out[8:], data)
	return out
}

func doubleBytes(vals []float64) []byte {
	out := make([]byte, 8*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint64(out[8*i:], math.Float64bits(v))
	}
	return out
}
