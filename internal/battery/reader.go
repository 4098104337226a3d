package battery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"battcli/internal/dataset"
	apperrors "battcli/internal/errors"
	"battcli/internal/matfile"
	"battcli/pkg/contracts/domain"
)

// ReadArchive loads one battery archive and flattens it into a single
// table. The archive's top-level variable must carry the battery's name
// (the file base name, e.g. B0005) and hold the cycle list.
//
// Any failure aborts the whole transform; a partial table is never
// returned.
func ReadArchive(path string) (*dataset.Frame, *domain.ConversionSummary, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	f, err := matfile.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, apperrors.Wrapf(apperrors.CodeArchiveNotFound, err, "archive %s", path)
		}
		return nil, nil, apperrors.Wrapf(apperrors.CodeMalformedArchive, err, "archive %s", path)
	}

	top, ok := f.Var(name)
	if !ok {
		return nil, nil, apperrors.Newf(apperrors.CodeMissingTopLevel,
			"archive %s has no top-level variable %q (found %v)", path, name, f.VarNames())
	}
	if top.Class != matfile.ClassStruct || !top.IsScalar() {
		return nil, nil, apperrors.Newf(apperrors.CodeMissingTopLevel,
			"top-level variable %q is %s %v, want 1x1 struct", name, top.Class, top.Dims)
	}

	cycles, err := top.FieldByName(0, "cycle")
	if err != nil {
		return nil, nil, apperrors.Wrapf(apperrors.CodeMissingTopLevel, err, "archive %s", path)
	}

	meta, err := ExtractMetadata(cycles)
	if err != nil {
		return nil, nil, err
	}

	frames := make([]*dataset.Frame, 0, len(meta))
	for i := range meta {
		data, err := cycles.FieldByName(i, fieldData)
		if err != nil {
			return nil, nil, apperrors.Wrapf(apperrors.CodeMalformedArchive, err, "cycle %d", i)
		}
		frame, err := FlattenCycle(data, meta, i)
		if err != nil {
			return nil, nil, err
		}
		frames = append(frames, frame)
	}

	out, err := dataset.Concat(frames...)
	if err != nil {
		return nil, nil, fmt.Errorf("assembling %s: %w", name, err)
	}

	summary := &domain.ConversionSummary{
		Battery: name,
		Cycles:  len(meta),
		Rows:    out.NumRows(),
		Columns: out.Header(),
	}
	return out, summary, nil
}
