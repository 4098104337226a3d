// Package exporter writes converted battery datasets to disk.
//
// Three writers share one tabular input (dataset.Frame):
//
// CSVWriter: text output with optional UTF-8 BOM for Excel compatibility,
// streaming rows through encoding/csv.
//
// XLSXWriter: native Excel workbooks via excelize's stream writer, keeping
// numeric cells numeric.
//
// ParquetWriter: columnar output via parquet-go's JSON writer with snappy
// compression, for downstream analytics tooling.
//
// ForFormat selects the writer matching a format name:
//
//	w, err := exporter.ForFormat(cfg.Export)
//	if err != nil { ... }
//	err = w.WriteFrame(outPath, frame)
package exporter
