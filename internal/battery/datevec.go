package battery

import (
	"math"
	"time"

	apperrors "battcli/internal/errors"
)

// datevecLen is the component count of a MATLAB date vector:
// year, month, day, hour, minute, seconds with fraction.
const datevecLen = 6

// DatevecToTime converts a MATLAB date vector to a timestamp with
// millisecond precision, e.g.
//
//	[2008 5 22 21 48 39.015] -> 2008-05-22 21:48:39.015
//
// The fraction of the seconds component is truncated to whole
// milliseconds. The source vectors carry no zone, so the result is in the
// local zone.
func DatevecToTime(vec []float64) (time.Time, error) {
	if len(vec) != datevecLen {
		return time.Time{}, apperrors.Newf(apperrors.CodeBadDateVector,
			"date vector has %d components, want %d", len(vec), datevecLen)
	}

	sec := vec[5]
	whole := math.Floor(sec)
	// The decimal fraction often sits just below its nominal value in
	// binary (0.015 stores as 0.014999...), which plain truncation would
	// turn into the previous millisecond. Nudge before flooring.
	ms := int(math.Floor((sec-whole)*1000 + 1e-6))

	return time.Date(
		int(vec[0]),
		time.Month(int(vec[1])),
		int(vec[2]),
		int(vec[3]),
		int(vec[4]),
		int(whole),
		ms*int(time.Millisecond),
		time.Local,
	), nil
}
