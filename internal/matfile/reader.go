package matfile

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf16"
)

// MAT-file data element type codes.
const (
	miINT8       = 1
	miUINT8      = 2
	miINT16      = 3
	miUINT16     = 4
	miINT32      = 5
	miUINT32     = 6
	miSINGLE     = 7
	miDOUBLE     = 9
	miINT64      = 12
	miUINT64     = 13
	miMATRIX     = 14
	miCOMPRESSED = 15
	miUTF8       = 16
	miUTF16      = 17
	miUTF32      = 18
)

const headerSize = 128

// arrayFlagComplex is the complex bit of the array-flags word (flags byte
// shifted above the class byte).
const arrayFlagComplex = 0x0800

// File is one fully parsed MAT-file.
type File struct {
	// Header is the descriptive text from the 116-byte file header.
	Header string

	names []string
	vars  map[string]*Array
}

// Open reads and parses the MAT-file at path.
func Open(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return f, nil
}

// Read parses a MAT-file from r. The entire stream is consumed.
func Read(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses a MAT-file held in memory.
func Parse(data []byte) (*File, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("file too short for MAT header: %d bytes", len(data))
	}

	var bo binary.ByteOrder
	switch string(data[126:128]) {
	case "IM":
		bo = binary.LittleEndian
	case "MI":
		bo = binary.BigEndian
	default:
		return nil, fmt.Errorf("bad endian indicator %q", data[126:128])
	}

	if v := bo.Uint16(data[124:126]); v != 0x0100 {
		return nil, fmt.Errorf("unsupported MAT version 0x%04x", v)
	}

	f := &File{
		Header: strings.TrimRight(string(data[:116]), " \x00"),
		vars:   make(map[string]*Array),
	}

	d := &decoder{data: data, off: headerSize, bo: bo}
	for d.remaining() >= 8 {
		typ, body, err := d.readElement()
		if err != nil {
			return nil, err
		}

		var a *Array
		switch typ {
		case miMATRIX:
			a, err = parseMatrix(body, bo)
		case miCOMPRESSED:
			a, err = parseCompressed(body, bo)
		default:
			err = fmt.Errorf("unexpected top-level element type %d", typ)
		}
		if err != nil {
			return nil, err
		}

		f.names = append(f.names, a.Name)
		f.vars[a.Name] = a
	}

	return f, nil
}

// Var returns the named top-level variable.
func (f *File) Var(name string) (*Array, bool) {
	a, ok := f.vars[name]
	return a, ok
}

// VarNames returns the top-level variable names in file order.
func (f *File) VarNames() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// decoder walks a buffer of 8-byte-aligned data elements.
type decoder struct {
	data []byte
	off  int
	bo   binary.ByteOrder
}

func (d *decoder) remaining() int {
	return len(d.data) - d.off
}

// readElement reads the next data element, handling the small-data-element
// tag format and trailing alignment padding.
func (d *decoder) readElement() (typ int, body []byte, err error) {
	if d.remaining() < 8 {
		return 0, nil, fmt.Errorf("truncated element tag at offset %d", d.off)
	}

	w := d.bo.Uint32(d.data[d.off:])
	if w>>16 != 0 {
		// Small data element: size and type packed into the first word,
		// data in the second.
		typ = int(w & 0xFFFF)
		n := int(w >> 16)
		if n > 4 {
			return 0, nil, fmt.Errorf("small element at offset %d claims %d bytes", d.off, n)
		}
		body = d.data[d.off+4 : d.off+4+n]
		d.off += 8
		return typ, body, nil
	}

	typ = int(w)
	n := int(d.bo.Uint32(d.data[d.off+4:]))
	start := d.off + 8
	if n < 0 || start+n > len(d.data) {
		return 0, nil, fmt.Errorf("element at offset %d overruns buffer (%d bytes)", d.off, n)
	}
	body = d.data[start : start+n]
	d.off = start + n
	if rem := d.off % 8; rem != 0 {
		pad := 8 - rem
		if pad > d.remaining() {
			pad = d.remaining()
		}
		d.off += pad
	}
	return typ, body, nil
}

// parseCompressed inflates a miCOMPRESSED element and parses the single
// miMATRIX it contains.
func parseCompressed(body []byte, bo binary.ByteOrder) (*Array, error) {
	zr, err := zlib.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("opening compressed element: %w", err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("inflating compressed element: %w", err)
	}

	d := &decoder{data: raw, bo: bo}
	typ, inner, err := d.readElement()
	if err != nil {
		return nil, err
	}
	if typ != miMATRIX {
		return nil, fmt.Errorf("compressed element holds type %d, want matrix", typ)
	}
	return parseMatrix(inner, bo)
}

// parseMatrix parses the body of a miMATRIX element.
func parseMatrix(body []byte, bo binary.ByteOrder) (*Array, error) {
	// A zero-length matrix element encodes the empty array.
	if len(body) == 0 {
		return &Array{Class: ClassDouble, Dims: []int{0, 0}}, nil
	}

	d := &decoder{data: body, bo: bo}

	typ, flags, err := d.readElement()
	if err != nil {
		return nil, err
	}
	if typ != miUINT32 || len(flags) < 8 {
		return nil, fmt.Errorf("bad array-flags subelement (type %d, %d bytes)", typ, len(flags))
	}
	flagWord := bo.Uint32(flags)

	a := &Array{
		Class:   Class(flagWord & 0xFF),
		Complex: flagWord&arrayFlagComplex != 0,
	}

	typ, dimBody, err := d.readElement()
	if err != nil {
		return nil, err
	}
	if typ != miINT32 {
		return nil, fmt.Errorf("bad dimensions subelement type %d", typ)
	}
	for i := 0; i+4 <= len(dimBody); i += 4 {
		a.Dims = append(a.Dims, int(int32(bo.Uint32(dimBody[i:]))))
	}

	typ, nameBody, err := d.readElement()
	if err != nil {
		return nil, err
	}
	if typ != miINT8 {
		return nil, fmt.Errorf("bad array-name subelement type %d", typ)
	}
	a.Name = string(nameBody)

	switch {
	case a.Class.IsNumeric():
		return a, parseNumeric(d, a)
	case a.Class == ClassChar:
		return a, parseChar(d, a)
	case a.Class == ClassCell:
		return a, parseCell(d, a)
	case a.Class == ClassStruct:
		return a, parseStruct(d, a)
	default:
		return nil, fmt.Errorf("unsupported array class %s for %q", a.Class, a.Name)
	}
}

func parseNumeric(d *decoder, a *Array) error {
	typ, body, err := d.readElement()
	if err != nil {
		return err
	}
	a.re, err = convertNumeric(typ, body, d.bo)
	if err != nil {
		return fmt.Errorf("real part of %q: %w", a.Name, err)
	}
	if len(a.re) != a.NumElements() {
		return fmt.Errorf("array %q: %d values for %v dims", a.Name, len(a.re), a.Dims)
	}

	if a.Complex {
		typ, body, err = d.readElement()
		if err != nil {
			return err
		}
		a.im, err = convertNumeric(typ, body, d.bo)
		if err != nil {
			return fmt.Errorf("imaginary part of %q: %w", a.Name, err)
		}
		if len(a.im) != len(a.re) {
			return fmt.Errorf("array %q: %d imaginary values for %d real", a.Name, len(a.im), len(a.re))
		}
	}
	return nil
}

func parseChar(d *decoder, a *Array) error {
	typ, body, err := d.readElement()
	if err != nil {
		return err
	}
	switch typ {
	case miINT8, miUINT8, miUTF8:
		a.chars = string(body)
	case miUINT16, miUTF16:
		units := make([]uint16, len(body)/2)
		for i := range units {
			units[i] = d.bo.Uint16(body[2*i:])
		}
		a.chars = string(utf16.Decode(units))
	default:
		return fmt.Errorf("unsupported char storage type %d for %q", typ, a.Name)
	}
	return nil
}

func parseCell(d *decoder, a *Array) error {
	n := a.NumElements()
	a.cells = make([]*Array, 0, n)
	for i := 0; i < n; i++ {
		typ, body, err := d.readElement()
		if err != nil {
			return err
		}
		if typ != miMATRIX {
			return fmt.Errorf("cell %q element %d has type %d, want matrix", a.Name, i, typ)
		}
		c, err := parseMatrix(body, d.bo)
		if err != nil {
			return err
		}
		a.cells = append(a.cells, c)
	}
	return nil
}

func parseStruct(d *decoder, a *Array) error {
	typ, lenBody, err := d.readElement()
	if err != nil {
		return err
	}
	if typ != miINT32 || len(lenBody) < 4 {
		return fmt.Errorf("bad field-name-length subelement for %q", a.Name)
	}
	maxLen := int(int32(d.bo.Uint32(lenBody)))
	if maxLen <= 0 {
		return fmt.Errorf("struct %q has field name length %d", a.Name, maxLen)
	}

	typ, nameBody, err := d.readElement()
	if err != nil {
		return err
	}
	if typ != miINT8 {
		return fmt.Errorf("bad field-names subelement type %d for %q", typ, a.Name)
	}
	if len(nameBody)%maxLen != 0 {
		return fmt.Errorf("struct %q field-name table size %d not a multiple of %d", a.Name, len(nameBody), maxLen)
	}
	for i := 0; i+maxLen <= len(nameBody); i += maxLen {
		a.fields = append(a.fields, strings.TrimRight(string(nameBody[i:i+maxLen]), "\x00"))
	}

	// Field values are stored element-major: every field of element 0,
	// then every field of element 1, and so on.
	n := a.NumElements()
	a.elems = make([][]*Array, n)
	for e := 0; e < n; e++ {
		vals := make([]*Array, len(a.fields))
		for fi := range a.fields {
			typ, body, err := d.readElement()
			if err != nil {
				return fmt.Errorf("struct %q element %d field %q: %w", a.Name, e, a.fields[fi], err)
			}
			if typ != miMATRIX {
				return fmt.Errorf("struct %q field %q has type %d, want matrix", a.Name, a.fields[fi], typ)
			}
			v, err := parseMatrix(body, d.bo)
			if err != nil {
				return fmt.Errorf("struct %q element %d field %q: %w", a.Name, e, a.fields[fi], err)
			}
			vals[fi] = v
		}
		a.elems[e] = vals
	}
	return nil
}

// convertNumeric widens stored numeric data of any element type to float64.
// MAT files routinely store double-class arrays in narrower integer types
// when the values fit.
func convertNumeric(typ int, body []byte, bo binary.ByteOrder) ([]float64, error) {
	switch typ {
	case miINT8:
		out := make([]float64, len(body))
		for i, b := range body {
			out[i] = float64(int8(b))
		}
		return out, nil
	case miUINT8:
		out := make([]float64, len(body))
		for i, b := range body {
			out[i] = float64(b)
		}
		return out, nil
	case miINT16:
		out := make([]float64, len(body)/2)
		for i := range out {
			out[i] = float64(int16(bo.Uint16(body[2*i:])))
		}
		return out, nil
	case miUINT16:
		out := make([]float64, len(body)/2)
		for i := range out {
			out[i] = float64(bo.Uint16(body[2*i:]))
		}
		return out, nil
	case miINT32:
		out := make([]float64, len(body)/4)
		for i := range out {
			out[i] = float64(int32(bo.Uint32(body[4*i:])))
		}
		return out, nil
	case miUINT32:
		out := make([]float64, len(body)/4)
		for i := range out {
			out[i] = float64(bo.Uint32(body[4*i:]))
		}
		return out, nil
	case miSINGLE:
		out := make([]float64, len(body)/4)
		for i := range out {
			out[i] = float64(math.Float32frombits(bo.Uint32(body[4*i:])))
		}
		return out, nil
	case miDOUBLE:
		out := make([]float64, len(body)/8)
		for i := range out {
			out[i] = math.Float64frombits(bo.Uint64(body[8*i:]))
		}
		return out, nil
	case miINT64:
		out := make([]float64, len(body)/8)
		for i := range out {
			out[i] = float64(int64(bo.Uint64(body[8*i:])))
		}
		return out, nil
	case miUINT64:
		out := make([]float64, len(body)/8)
		for i := range out {
			out[i] = float64(bo.Uint64(body[8*i:]))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported numeric storage type %d", typ)
	}
}
