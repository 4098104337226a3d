package exporter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"battcli/internal/dataset"
	apperrors "battcli/internal/errors"
)

// ParquetWriter writes datasets as snappy-compressed Parquet files.
type ParquetWriter struct{}

// NewParquetWriter creates a new Parquet writer instance.
func NewParquetWriter() *ParquetWriter {
	return &ParquetWriter{}
}

// WriteFrame writes the whole dataset to path. Every column is OPTIONAL:
// cells a cycle type lacks (Capacity on charge rows) become nulls instead
// of sentinel values.
func (w *ParquetWriter) WriteFrame(path string, frame *dataset.Frame) error {
	slog.Info("Writing Parquet file",
		slog.String("path", path),
		slog.Int("rows", frame.NumRows()),
		slog.Int("columns", frame.NumCols()))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.Wrap(apperrors.CodeExportFailed, "creating output directory", err)
	}

	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeExportFailed, "creating Parquet output", err)
	}

	pw, err := writer.NewJSONWriter(buildSchema(frame), fw, 4)
	if err != nil {
		fw.Close()
		return apperrors.Wrap(apperrors.CodeExportFailed, "opening Parquet writer", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for i := 0; i < frame.NumRows(); i++ {
		if err := pw.Write(projectRow(frame, i)); err != nil {
			pw.WriteStop()
			fw.Close()
			return apperrors.Wrapf(apperrors.CodeExportFailed, err, "writing row %d", i)
		}
	}

	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return apperrors.Wrap(apperrors.CodeExportFailed, "finalizing Parquet output", err)
	}
	if err := fw.Close(); err != nil {
		return apperrors.Wrap(apperrors.CodeExportFailed, "closing Parquet output", err)
	}
	return nil
}

// buildSchema derives the parquet-go JSON schema from the frame's columns.
func buildSchema(frame *dataset.Frame) string {
	fields := make([]map[string]string, 0, frame.NumCols())
	for j := 0; j < frame.NumCols(); j++ {
		col := frame.ColumnAt(j)
		fields = append(fields, map[string]string{
			"Tag": fmt.Sprintf("name=%s, type=%s, repetitiontype=OPTIONAL",
				col.Name, physicalType(col.Kind)),
		})
	}
	out := map[string]interface{}{
		"Tag":    "name=parquet_go_root, repetitiontype=REQUIRED",
		"Fields": fields,
	}
	b, _ := json.Marshal(out)
	return string(b)
}

func physicalType(kind dataset.Kind) string {
	if kind == dataset.KindFloat {
		return "DOUBLE"
	}
	// String and timestamp columns both land as text.
	return "BYTE_ARRAY, convertedtype=UTF8"
}

// projectRow renders row i as the map the JSON writer expects; invalid
// cells stay nil and become nulls.
func projectRow(frame *dataset.Frame, i int) map[string]interface{} {
	row := make(map[string]interface{}, frame.NumCols())
	for j := 0; j < frame.NumCols(); j++ {
		col := frame.ColumnAt(j)
		row[col.Name] = col.CellValue(i)
	}
	return row
}
