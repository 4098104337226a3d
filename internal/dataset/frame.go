// Package dataset provides the flat tabular model the converter emits:
// ordered, typed columns of equal length, concatenation across tables with
// differing column sets, and the cell formatting rules shared by every
// output writer.
package dataset

import (
	"fmt"
	"strconv"
	"time"
)

// TimeFormat is how timestamp cells render in text output. Millisecond
// precision matches the source date vectors.
const TimeFormat = "2006-01-02 15:04:05.000"

// Kind is a column's value type.
type Kind int

const (
	KindFloat Kind = iota
	KindString
	KindTime
)

// Column is one named, typed column. Exactly one of the value slices is
// populated, matching Kind; Valid marks cells that hold a real value
// (cells filled in during union concatenation are invalid and render
// empty).
type Column struct {
	Name    string
	Kind    Kind
	Floats  []float64
	Strings []string
	Times   []time.Time
	Valid   []bool
}

// FloatColumn builds a float column with every cell valid.
func FloatColumn(name string, vals []float64) *Column {
	return &Column{Name: name, Kind: KindFloat, Floats: vals, Valid: allValid(len(vals))}
}

// ConstFloatColumn builds a float column repeating v for n rows.
func ConstFloatColumn(name string, v float64, n int) *Column {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = v
	}
	return FloatColumn(name, vals)
}

// ConstStringColumn builds a string column repeating v for n rows.
func ConstStringColumn(name, v string, n int) *Column {
	vals := make([]string, n)
	for i := range vals {
		vals[i] = v
	}
	return &Column{Name: name, Kind: KindString, Strings: vals, Valid: allValid(n)}
}

// ConstTimeColumn builds a time column repeating v for n rows.
func ConstTimeColumn(name string, v time.Time, n int) *Column {
	vals := make([]time.Time, n)
	for i := range vals {
		vals[i] = v
	}
	return &Column{Name: name, Kind: KindTime, Times: vals, Valid: allValid(n)}
}

func allValid(n int) []bool {
	v := make([]bool, n)
	for i := range v {
		v[i] = true
	}
	return v
}

// Len returns the column's row count.
func (c *Column) Len() int {
	return len(c.Valid)
}

// CellString renders one cell as text. Invalid cells render empty.
func (c *Column) CellString(row int) string {
	if !c.Valid[row] {
		return ""
	}
	switch c.Kind {
	case KindFloat:
		return strconv.FormatFloat(c.Floats[row], 'g', -1, 64)
	case KindString:
		return c.Strings[row]
	case KindTime:
		return c.Times[row].Format(TimeFormat)
	default:
		return ""
	}
}

// CellValue returns the cell's dynamic value for writers that keep types
// (xlsx, parquet), or nil for invalid cells.
func (c *Column) CellValue(row int) interface{} {
	if !c.Valid[row] {
		return nil
	}
	switch c.Kind {
	case KindFloat:
		return c.Floats[row]
	case KindString:
		return c.Strings[row]
	case KindTime:
		return c.Times[row].Format(TimeFormat)
	default:
		return nil
	}
}

// padTo extends the column to n rows with invalid cells.
func (c *Column) padTo(n int) {
	for c.Len() < n {
		switch c.Kind {
		case KindFloat:
			c.Floats = append(c.Floats, 0)
		case KindString:
			c.Strings = append(c.Strings, "")
		case KindTime:
			c.Times = append(c.Times, time.Time{})
		}
		c.Valid = append(c.Valid, false)
	}
}

// appendFrom appends every cell of src (same name and kind) to c.
func (c *Column) appendFrom(src *Column) {
	c.Floats = append(c.Floats, src.Floats...)
	c.Strings = append(c.Strings, src.Strings...)
	c.Times = append(c.Times, src.Times...)
	c.Valid = append(c.Valid, src.Valid...)
}

// Frame is an ordered collection of equal-length columns.
type Frame struct {
	cols   []*Column
	byName map[string]int
	rows   int
}

// New builds a frame from columns, which must share one length.
func New(cols ...*Column) (*Frame, error) {
	f := &Frame{byName: make(map[string]int)}
	for _, c := range cols {
		if len(f.cols) > 0 && c.Len() != f.rows {
			return nil, fmt.Errorf("column %q has %d rows, frame has %d", c.Name, c.Len(), f.rows)
		}
		if _, dup := f.byName[c.Name]; dup {
			return nil, fmt.Errorf("duplicate column %q", c.Name)
		}
		f.rows = c.Len()
		f.byName[c.Name] = len(f.cols)
		f.cols = append(f.cols, c)
	}
	return f, nil
}

// NumRows returns the row count.
func (f *Frame) NumRows() int {
	return f.rows
}

// NumCols returns the column count.
func (f *Frame) NumCols() int {
	return len(f.cols)
}

// Header returns the column names in order.
func (f *Frame) Header() []string {
	out := make([]string, len(f.cols))
	for i, c := range f.cols {
		out[i] = c.Name
	}
	return out
}

// Column returns the named column.
func (f *Frame) Column(name string) (*Column, bool) {
	i, ok := f.byName[name]
	if !ok {
		return nil, false
	}
	return f.cols[i], true
}

// ColumnAt returns the column at position i.
func (f *Frame) ColumnAt(i int) *Column {
	return f.cols[i]
}

// RowStrings renders row i as text cells in column order.
func (f *Frame) RowStrings(i int) []string {
	out := make([]string, len(f.cols))
	for j, c := range f.cols {
		out[j] = c.CellString(i)
	}
	return out
}

// Concat stacks frames vertically. The result's column set is the union of
// the inputs' columns in first-seen order; cells of columns absent from a
// given input are invalid (empty) for that input's rows. Input order is
// preserved and rows are never reordered or deduplicated.
func Concat(frames ...*Frame) (*Frame, error) {
	out := &Frame{byName: make(map[string]int)}

	for _, src := range frames {
		for _, c := range src.cols {
			i, seen := out.byName[c.Name]
			if !seen {
				nc := &Column{Name: c.Name, Kind: c.Kind}
				nc.padTo(out.rows)
				out.byName[c.Name] = len(out.cols)
				out.cols = append(out.cols, nc)
				i = len(out.cols) - 1
			} else if out.cols[i].Kind != c.Kind {
				return nil, fmt.Errorf("column %q changes kind across tables", c.Name)
			}
			out.cols[i].appendFrom(c)
		}
		out.rows += src.rows
		// Columns the source table lacked get empty cells for its rows.
		for _, c := range out.cols {
			c.padTo(out.rows)
		}
	}

	return out, nil
}
