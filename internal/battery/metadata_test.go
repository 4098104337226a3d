package battery

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "battcli/internal/errors"
	"battcli/internal/matfile/mattest"
	"battcli/pkg/contracts/domain"
)

// cycleFields is the field order of cycle records in the archives.
var cycleFields = []string{"type", "ambient_temperature", "time", "data"}

// cycleVal assembles one cycle record in archive field order.
func cycleVal(tag string, temp float64, datevec []float64, data mattest.Val) []mattest.Val {
	return []mattest.Val{
		mattest.Char(tag),
		mattest.Scalar(temp),
		mattest.Row(datevec...),
		data,
	}
}

func TestExtractMetadata(t *testing.T) {
	cycles := parseVal(t, mattest.Struct([]int{1, 3}, cycleFields,
		cycleVal("charge", 24, []float64{2008, 4, 2, 13, 8, 17.5}, mattest.Empty()),
		cycleVal("discharge", 24, []float64{2008, 4, 2, 15, 25, 41.25}, mattest.Empty()),
		cycleVal("impedance", 4, []float64{2008, 4, 3, 7, 0, 2}, mattest.Empty()),
	))

	meta, err := ExtractMetadata(cycles)
	require.NoError(t, err)
	require.Len(t, meta, 3)

	assert.Equal(t, domain.CycleCharge, meta[0].Type)
	assert.Equal(t, domain.CycleDischarge, meta[1].Type)
	assert.Equal(t, domain.CycleImpedance, meta[2].Type)

	assert.True(t, meta[0].StartTime.Equal(
		time.Date(2008, 4, 2, 13, 8, 17, 500e6, time.Local)))
	assert.True(t, meta[1].StartTime.Equal(
		time.Date(2008, 4, 2, 15, 25, 41, 250e6, time.Local)))

	assert.Equal(t, 24.0, meta[0].AmbientTemp)
	assert.Equal(t, 4.0, meta[2].AmbientTemp)
}

func TestExtractMetadata_NotAStructArray(t *testing.T) {
	cycles := parseVal(t, mattest.Row(1, 2, 3))

	_, err := ExtractMetadata(cycles)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.New(apperrors.CodeMissingTopLevel, "")))
}

func TestExtractMetadata_MissingFields(t *testing.T) {
	cycles := parseVal(t, mattest.Struct([]int{1, 1},
		[]string{"type", "data"},
		[]mattest.Val{mattest.Char("charge"), mattest.Empty()},
	))

	_, err := ExtractMetadata(cycles)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.New(apperrors.CodeMalformedArchive, "")))
}

func TestExtractMetadata_BadDateVector(t *testing.T) {
	cycles := parseVal(t, mattest.Struct([]int{1, 1}, cycleFields,
		cycleVal("charge", 24, []float64{2008, 4, 2, 13}, mattest.Empty()),
	))

	_, err := ExtractMetadata(cycles)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.New(apperrors.CodeBadDateVector, "")))
}
