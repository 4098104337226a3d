package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xuri/excelize/v2"

	"battcli/internal/config"
	"battcli/internal/dataset"
)

// testFrame builds a small two-cycle-shaped table: floats, a string
// column, a timestamp column, and one column with an empty cell.
func testFrame(t *testing.T) *dataset.Frame {
	t.Helper()

	capacity := &dataset.Column{
		Name:   "Capacity",
		Kind:   dataset.KindFloat,
		Floats: []float64{0, 1.85},
		Valid:  []bool{false, true},
	}
	start := time.Date(2008, 5, 22, 21, 48, 39, 15e6, time.Local)

	frame, err := dataset.New(
		dataset.FloatColumn("Voltage_measured", []float64{3.8, 3.2}),
		capacity,
		dataset.ConstStringColumn("type", "discharge", 2),
		dataset.ConstTimeColumn("start_time", start, 2),
	)
	require.NoError(t, err)
	return frame
}

func TestCSVWriter_WriteFrame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "B0005.csv")

	w := NewCSVWriter(WriteOptions{BOMPrefix: true})
	require.NoError(t, w.WriteFrame(path, testFrame(t)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}), "missing UTF-8 BOM")

	records, err := csv.NewReader(bytes.NewReader(raw[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"Voltage_measured", "Capacity", "type", "start_time"}, records[0])
	assert.Equal(t, []string{"3.8", "", "discharge", "2008-05-22 21:48:39.015"}, records[1])
	assert.Equal(t, []string{"3.2", "1.85", "discharge", "2008-05-22 21:48:39.015"}, records[2])
}

func TestCSVWriter_NoBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "B0005.csv")

	w := NewCSVWriter(WriteOptions{BOMPrefix: false})
	require.NoError(t, w.WriteFrame(path, testFrame(t)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}))
}

func TestXLSXWriter_WriteFrame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "B0005.xlsx")

	require.NoError(t, NewXLSXWriter().WriteFrame(path, testFrame(t)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	// The single worksheet carries the battery name.
	assert.Equal(t, []string{"B0005"}, f.GetSheetList())

	rows, err := f.GetRows("B0005")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Voltage_measured", "Capacity", "type", "start_time"}, rows[0])
	assert.Equal(t, "discharge", rows[1][2])

	// Numeric cells are stored as numbers, not text.
	typ, err := f.GetCellType("B0005", "A2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, typ)
}

func TestParquetWriter_WriteFrame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "B0005.parquet")

	require.NoError(t, NewParquetWriter().WriteFrame(path, testFrame(t)))

	fr, err := local.NewLocalFileReader(path)
	require.NoError(t, err)
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, nil, 1)
	require.NoError(t, err)
	defer pr.ReadStop()

	assert.Equal(t, int64(2), pr.GetNumRows())
	require.Len(t, pr.SchemaHandler.ValueColumns, 4)
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"csv", "xlsx", "parquet"} {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		assert.Equal(t, Format(s), f)
		assert.Equal(t, "."+s, f.Ext())
	}

	_, err := ParseFormat("json")
	assert.Error(t, err)
}

func TestForFormat(t *testing.T) {
	w, err := ForFormat(config.ExportConfig{Format: "csv", ExcelBOM: true})
	require.NoError(t, err)
	assert.IsType(t, &CSVWriter{}, w)

	w, err = ForFormat(config.ExportConfig{Format: "xlsx"})
	require.NoError(t, err)
	assert.IsType(t, &XLSXWriter{}, w)

	w, err = ForFormat(config.ExportConfig{Format: "parquet"})
	require.NoError(t, err)
	assert.IsType(t, &ParquetWriter{}, w)

	_, err = ForFormat(config.ExportConfig{Format: "yaml"})
	assert.Error(t, err)
}
