package battery

import (
	"math"

	"battcli/internal/dataset"
	apperrors "battcli/internal/errors"
	"battcli/internal/matfile"
	"battcli/pkg/contracts/domain"
)

// Names of the metadata columns appended to every cycle table.
const (
	ColType        = "type"
	ColStartTime   = "start_time"
	ColAmbientTemp = "ambient_temp"
)

// FlattenCycle reshapes the nested data block of cycle i into a flat
// row-oriented table.
//
// The block's fields are extracted by position against the schema for the
// cycle's type. Length-1 sequences broadcast as constants across all rows;
// every other sequence must share one length, which becomes the table's
// row count. The cycle's metadata triple is appended as three constant
// columns.
func FlattenCycle(data *matfile.Array, meta []domain.CycleMetadata, i int) (*dataset.Frame, error) {
	m := meta[i]
	fields, err := FieldsFor(m.Type)
	if err != nil {
		return nil, err
	}

	if data.Class != matfile.ClassStruct || !data.IsScalar() {
		return nil, apperrors.Newf(apperrors.CodeMalformedArchive,
			"cycle %d data block is %s %v, want 1x1 struct", i, data.Class, data.Dims)
	}
	if data.NumField() != len(fields) {
		return nil, apperrors.Newf(apperrors.CodeCycleSchemaMismatch,
			"cycle %d (%s): data block has %d fields, schema expects %d",
			i, m.Type, data.NumField(), len(fields))
	}

	seqs := make([][]float64, len(fields))
	for j := range fields {
		arr, err := data.Field(0, j)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeMalformedArchive, "reading data field", err)
		}
		seqs[j], err = fieldValues(arr, i, fields[j])
		if err != nil {
			return nil, err
		}
	}

	rows, err := rowCount(seqs, fields, i)
	if err != nil {
		return nil, err
	}

	cols := make([]*dataset.Column, 0, len(fields)+3)
	for j, name := range fields {
		if len(seqs[j]) == 1 {
			// Scalar broadcast: one value becomes a constant column.
			cols = append(cols, dataset.ConstFloatColumn(name, seqs[j][0], rows))
		} else {
			cols = append(cols, dataset.FloatColumn(name, seqs[j]))
		}
	}
	cols = append(cols,
		dataset.ConstStringColumn(ColType, string(m.Type), rows),
		dataset.ConstTimeColumn(ColStartTime, m.StartTime, rows),
		dataset.ConstFloatColumn(ColAmbientTemp, m.AmbientTemp, rows),
	)

	frame, err := dataset.New(cols...)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.CodeRaggedCycleData, err, "cycle %d (%s)", i, m.Type)
	}
	return frame, nil
}

// fieldValues extracts one field's numeric sequence. Complex channels
// (the impedance spectra) flatten to their magnitude.
func fieldValues(arr *matfile.Array, cycle int, name string) ([]float64, error) {
	if !arr.Class.IsNumeric() {
		return nil, apperrors.Newf(apperrors.CodeMalformedArchive,
			"cycle %d field %s is %s, want numeric", cycle, name, arr.Class)
	}

	re := arr.Floats()
	if !arr.Complex {
		return re, nil
	}

	im := arr.Imag()
	out := make([]float64, len(re))
	for i := range re {
		out[i] = math.Hypot(re[i], im[i])
	}
	return out, nil
}

// rowCount determines the table's row count: the shared length of all
// non-scalar sequences (scalars broadcast). Differing non-scalar lengths
// mean the cycle data is ragged, which aborts the transform.
func rowCount(seqs [][]float64, fields []string, cycle int) (int, error) {
	rows := -1
	for j, s := range seqs {
		if len(s) == 1 {
			continue
		}
		if rows >= 0 && len(s) != rows {
			return 0, apperrors.Newf(apperrors.CodeRaggedCycleData,
				"cycle %d: field %s has %d samples, others have %d",
				cycle, fields[j], len(s), rows)
		}
		rows = len(s)
	}
	if rows < 0 {
		// Every field was a single sample; the table is one row.
		rows = 1
	}
	return rows, nil
}
