package exporter

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"

	"battcli/internal/dataset"
	apperrors "battcli/internal/errors"
)

// CSVWriter writes datasets as CSV text.
type CSVWriter struct {
	opts WriteOptions
}

// WriteOptions configures CSV writing behavior.
type WriteOptions struct {
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// NewCSVWriter creates a new CSV writer instance.
func NewCSVWriter(opts WriteOptions) *CSVWriter {
	return &CSVWriter{opts: opts}
}

// WriteFrame writes the whole dataset to path, header first, streaming one
// row at a time.
func (w *CSVWriter) WriteFrame(path string, frame *dataset.Frame) error {
	slog.Info("Writing CSV file",
		slog.String("path", path),
		slog.Int("rows", frame.NumRows()),
		slog.Int("columns", frame.NumCols()))

	stream, err := w.CreateStreamWriter(path, frame.Header())
	if err != nil {
		return err
	}

	for i := 0; i < frame.NumRows(); i++ {
		if err := stream.WriteRecord(frame.RowStrings(i)); err != nil {
			stream.Close()
			return apperrors.Wrapf(apperrors.CodeExportFailed, err, "writing row %d", i)
		}
	}

	if err := stream.Close(); err != nil {
		return apperrors.Wrap(apperrors.CodeExportFailed, "closing CSV output", err)
	}
	return nil
}

// StreamWriter writes CSV rows incrementally, for callers that produce
// records as they go.
type StreamWriter struct {
	file   *os.File
	writer *csv.Writer
}

// CreateStreamWriter opens path for writing and emits the BOM (when
// configured) and the header row.
func (w *CSVWriter) CreateStreamWriter(path string, headers []string) (*StreamWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeExportFailed, "creating output directory", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeExportFailed, "creating CSV output", err)
	}

	if w.opts.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			file.Close()
			return nil, apperrors.Wrap(apperrors.CodeExportFailed, "writing BOM", err)
		}
	}

	writer := csv.NewWriter(file)
	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			file.Close()
			return nil, apperrors.Wrap(apperrors.CodeExportFailed, "writing header", err)
		}
	}

	return &StreamWriter{file: file, writer: writer}, nil
}

// WriteRecord writes a single record to the stream.
func (s *StreamWriter) WriteRecord(record []string) error {
	return s.writer.Write(record)
}

// Close flushes and closes the stream writer.
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}
