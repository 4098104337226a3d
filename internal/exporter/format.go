package exporter

import (
	"battcli/internal/config"
	"battcli/internal/dataset"
	apperrors "battcli/internal/errors"
)

// Format identifies an output dataset format.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatXLSX    Format = "xlsx"
	FormatParquet Format = "parquet"
)

// ParseFormat validates a format name from config or the command line.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatXLSX, FormatParquet:
		return Format(s), nil
	default:
		return "", apperrors.Newf(apperrors.CodeConfig,
			"unknown export format %q (want csv, xlsx or parquet)", s)
	}
}

// Ext returns the format's file extension, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// FrameWriter writes one flat dataset to a file.
type FrameWriter interface {
	WriteFrame(path string, frame *dataset.Frame) error
}

// ForFormat returns the writer for the configured format.
func ForFormat(cfg config.ExportConfig) (FrameWriter, error) {
	format, err := ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatXLSX:
		return NewXLSXWriter(), nil
	case FormatParquet:
		return NewParquetWriter(), nil
	default:
		return NewCSVWriter(WriteOptions{BOMPrefix: cfg.ExcelBOM}), nil
	}
}
