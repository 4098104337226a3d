package matfile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battcli/internal/matfile/mattest"
)

func TestParse_NumericArray(t *testing.T) {
	data := mattest.FileBytes(
		mattest.V("readings", mattest.Num([]int{1, 4}, 3.2, 3.3, 3.4, 3.5)),
	)

	f, err := Parse(data)
	require.NoError(t, err)

	a, ok := f.Var("readings")
	require.True(t, ok)
	assert.Equal(t, ClassDouble, a.Class)
	assert.Equal(t, []int{1, 4}, a.Dims)
	assert.Equal(t, []float64{3.2, 3.3, 3.4, 3.5}, a.Floats())
	assert.False(t, a.Complex)
	assert.Equal(t, []string{"readings"}, f.VarNames())
}

func TestParse_ScalarUsesSmallElements(t *testing.T) {
	// A scalar's name and dimensions exercise the packed tag format.
	data := mattest.FileBytes(mattest.V("t", mattest.Scalar(24)))

	f, err := Parse(data)
	require.NoError(t, err)

	a, ok := f.Var("t")
	require.True(t, ok)
	require.True(t, a.IsScalar())
	v, err := a.Float()
	require.NoError(t, err)
	assert.Equal(t, 24.0, v)
}

func TestParse_CharArray(t *testing.T) {
	data := mattest.FileBytes(mattest.V("label", mattest.Char("discharge")))

	f, err := Parse(data)
	require.NoError(t, err)

	a, ok := f.Var("label")
	require.True(t, ok)
	assert.Equal(t, ClassChar, a.Class)
	assert.Equal(t, "discharge", a.String())
}

func TestParse_ComplexArray(t *testing.T) {
	data := mattest.FileBytes(mattest.V("z", mattest.NumComplex(
		[]int{1, 2}, []float64{3, 0}, []float64{4, 1},
	)))

	f, err := Parse(data)
	require.NoError(t, err)

	a, ok := f.Var("z")
	require.True(t, ok)
	assert.True(t, a.Complex)
	assert.Equal(t, []float64{3, 0}, a.Floats())
	assert.Equal(t, []float64{4, 1}, a.Imag())
}

func TestParse_StructArrayFieldOrder(t *testing.T) {
	data := mattest.FileBytes(mattest.V("cycle", mattest.Struct(
		[]int{1, 2},
		[]string{"type", "ambient_temperature", "time"},
		[]mattest.Val{mattest.Char("charge"), mattest.Scalar(24), mattest.Row(2008, 4, 2, 13, 8, 17.5)},
		[]mattest.Val{mattest.Char("discharge"), mattest.Scalar(4), mattest.Row(2008, 4, 2, 15, 25, 41.25)},
	)))

	f, err := Parse(data)
	require.NoError(t, err)

	a, ok := f.Var("cycle")
	require.True(t, ok)
	require.Equal(t, ClassStruct, a.Class)
	assert.Equal(t, 2, a.NumElements())
	assert.Equal(t, []string{"type", "ambient_temperature", "time"}, a.FieldNames())

	// Position access.
	ft, err := a.Field(1, 0)
	require.NoError(t, err)
	assert.Equal(t, "discharge", ft.String())

	// Name access agrees with position access.
	temp, err := a.FieldByName(1, "ambient_temperature")
	require.NoError(t, err)
	v, err := temp.Float()
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)

	tv, err := a.Field(0, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{2008, 4, 2, 13, 8, 17.5}, tv.Floats())
}

func TestParse_NestedStruct(t *testing.T) {
	data := mattest.FileBytes(mattest.V("B0005", mattest.Struct(
		[]int{1, 1},
		[]string{"cycle"},
		[]mattest.Val{mattest.Struct(
			[]int{1, 1},
			[]string{"type", "data"},
			[]mattest.Val{
				mattest.Char("impedance"),
				mattest.Struct([]int{1, 1}, []string{"Re", "Rct"},
					[]mattest.Val{mattest.Scalar(0.06), mattest.Scalar(0.11)}),
			},
		)},
	)))

	f, err := Parse(data)
	require.NoError(t, err)

	top, ok := f.Var("B0005")
	require.True(t, ok)
	cycle, err := top.FieldByName(0, "cycle")
	require.NoError(t, err)
	inner, err := cycle.FieldByName(0, "data")
	require.NoError(t, err)
	require.Equal(t, 2, inner.NumField())
	assert.Equal(t, "Re", inner.FieldName(0))

	rct, err := inner.Field(0, 1)
	require.NoError(t, err)
	v, err := rct.Float()
	require.NoError(t, err)
	assert.InDelta(t, 0.11, v, 1e-12)
}

func TestParse_CellArray(t *testing.T) {
	data := mattest.FileBytes(mattest.V("c", mattest.Cell(
		[]int{1, 2}, mattest.Char("a"), mattest.Row(1, 2, 3),
	)))

	f, err := Parse(data)
	require.NoError(t, err)

	a, ok := f.Var("c")
	require.True(t, ok)
	first, err := a.Cell(0)
	require.NoError(t, err)
	assert.Equal(t, "a", first.String())
	second, err := a.Cell(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, second.Floats())

	_, err = a.Cell(2)
	assert.Error(t, err)
}

func TestParse_CompressedElements(t *testing.T) {
	data := mattest.CompressedFileBytes(
		mattest.V("x", mattest.Row(1.5, 2.5)),
		mattest.V("label", mattest.Char("charge")),
	)

	f, err := Parse(data)
	require.NoError(t, err)

	x, ok := f.Var("x")
	require.True(t, ok)
	assert.Equal(t, []float64{1.5, 2.5}, x.Floats())
	label, ok := f.Var("label")
	require.True(t, ok)
	assert.Equal(t, "charge", label.String())
}

func TestParse_EmptyArray(t *testing.T) {
	data := mattest.FileBytes(mattest.V("s", mattest.Struct(
		[]int{1, 1},
		[]string{"Capacity"},
		[]mattest.Val{mattest.Empty()},
	)))

	f, err := Parse(data)
	require.NoError(t, err)

	s, ok := f.Var("s")
	require.True(t, ok)
	capField, err := s.Field(0, 0)
	require.NoError(t, err)
	assert.True(t, capField.IsEmpty())
}

func TestParse_Malformed(t *testing.T) {
	valid := mattest.FileBytes(mattest.V("x", mattest.Row(1, 2, 3)))

	badEndian := append([]byte(nil), valid...)
	badEndian[126], badEndian[127] = 'X', 'Y'

	badVersion := append([]byte(nil), valid...)
	badVersion[124], badVersion[125] = 0xff, 0xff

	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "short header", data: valid[:64]},
		{name: "bad endian indicator", data: badEndian},
		{name: "bad version", data: badVersion},
		{name: "truncated element", data: valid[:len(valid)-8]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestRead_FromReader(t *testing.T) {
	data := mattest.FileBytes(mattest.V("x", mattest.Scalar(7)))

	f, err := Read(bytes.NewReader(data))
	require.NoError(t, err)
	_, ok := f.Var("x")
	assert.True(t, ok)
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.mat"))
	assert.Error(t, err)
}

func TestOpen_RoundTripThroughDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "B0005.mat")
	require.NoError(t, os.WriteFile(path, mattest.FileBytes(
		mattest.V("B0005", mattest.Struct([]int{1, 1}, []string{"cycle"},
			[]mattest.Val{mattest.Empty()})),
	), 0644))

	f, err := Open(path)
	require.NoError(t, err)
	_, ok := f.Var("B0005")
	assert.True(t, ok)
}
