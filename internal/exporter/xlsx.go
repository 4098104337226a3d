package exporter

import (
	"log/slog"
	"os"
	"path/filepath"

	"strings"

	"github.com/xuri/excelize/v2"

	"battcli/internal/dataset"
	apperrors "battcli/internal/errors"
)

// XLSXWriter writes datasets as Excel workbooks. Numeric cells stay
// numeric, so the workbook is usable without re-parsing text. The single
// worksheet is named after the output file's base name (the battery).
type XLSXWriter struct{}

// NewXLSXWriter creates a new XLSX writer instance.
func NewXLSXWriter() *XLSXWriter {
	return &XLSXWriter{}
}

// WriteFrame writes the whole dataset to path via excelize's stream
// writer, which keeps memory flat for large cycle tables.
func (w *XLSXWriter) WriteFrame(path string, frame *dataset.Frame) error {
	slog.Info("Writing XLSX file",
		slog.String("path", path),
		slog.Int("rows", frame.NumRows()),
		slog.Int("columns", frame.NumCols()))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.Wrap(apperrors.CodeExportFailed, "creating output directory", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return apperrors.Wrap(apperrors.CodeExportFailed, "naming worksheet", err)
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeExportFailed, "opening stream writer", err)
	}

	header := make([]interface{}, frame.NumCols())
	for j, name := range frame.Header() {
		header[j] = name
	}
	if err := sw.SetRow("A1", header); err != nil {
		return apperrors.Wrap(apperrors.CodeExportFailed, "writing header", err)
	}

	for i := 0; i < frame.NumRows(); i++ {
		row := make([]interface{}, frame.NumCols())
		for j := 0; j < frame.NumCols(); j++ {
			row[j] = frame.ColumnAt(j).CellValue(i)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return apperrors.Wrap(apperrors.CodeExportFailed, "computing cell coordinates", err)
		}
		if err := sw.SetRow(cell, row); err != nil {
			return apperrors.Wrapf(apperrors.CodeExportFailed, err, "writing row %d", i)
		}
	}

	if err := sw.Flush(); err != nil {
		return apperrors.Wrap(apperrors.CodeExportFailed, "flushing stream writer", err)
	}
	if err := f.SaveAs(path); err != nil {
		return apperrors.Wrap(apperrors.CodeExportFailed, "saving workbook", err)
	}
	return nil
}
