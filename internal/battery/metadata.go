package battery

import (
	"fmt"

	apperrors "battcli/internal/errors"
	"battcli/internal/matfile"
	"battcli/pkg/contracts/domain"
)

// Cycle record field names in the archive.
const (
	fieldType        = "type"
	fieldTime        = "time"
	fieldAmbientTemp = "ambient_temperature"
	fieldData        = "data"
)

// ExtractMetadata reads the type tag, start time and ambient temperature
// of every cycle in the archive's cycle list. Index i of the result
// corresponds to cycle i; nothing is reordered, filtered or deduplicated.
func ExtractMetadata(cycles *matfile.Array) ([]domain.CycleMetadata, error) {
	if cycles.Class != matfile.ClassStruct {
		return nil, apperrors.Newf(apperrors.CodeMissingTopLevel,
			"cycle list is a %s array, want struct", cycles.Class)
	}

	n := cycles.NumElements()
	meta := make([]domain.CycleMetadata, 0, n)
	for i := 0; i < n; i++ {
		m, err := metadataAt(cycles, i)
		if err != nil {
			return nil, fmt.Errorf("cycle %d: %w", i, err)
		}
		meta = append(meta, m)
	}
	return meta, nil
}

// metadataAt reads the metadata triple of cycle i.
func metadataAt(cycles *matfile.Array, i int) (domain.CycleMetadata, error) {
	var m domain.CycleMetadata

	typeArr, err := cycles.FieldByName(i, fieldType)
	if err != nil {
		return m, apperrors.Wrap(apperrors.CodeMalformedArchive, "cycle record missing type", err)
	}
	if typeArr.Class != matfile.ClassChar {
		return m, apperrors.Newf(apperrors.CodeMalformedArchive,
			"cycle type is a %s array, want char", typeArr.Class)
	}
	m.Type = domain.CycleType(typeArr.String())

	timeArr, err := cycles.FieldByName(i, fieldTime)
	if err != nil {
		return m, apperrors.Wrap(apperrors.CodeMalformedArchive, "cycle record missing start time", err)
	}
	m.StartTime, err = DatevecToTime(timeArr.Floats())
	if err != nil {
		return m, err
	}

	tempArr, err := cycles.FieldByName(i, fieldAmbientTemp)
	if err != nil {
		return m, apperrors.Wrap(apperrors.CodeMalformedArchive, "cycle record missing ambient temperature", err)
	}
	m.AmbientTemp, err = tempArr.Float()
	if err != nil {
		return m, apperrors.Wrap(apperrors.CodeMalformedArchive, "ambient temperature not scalar", err)
	}

	return m, nil
}
