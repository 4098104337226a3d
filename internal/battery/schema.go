package battery

import (
	apperrors "battcli/internal/errors"
	"battcli/pkg/contracts/domain"
)

// DataFields maps each cycle type to the ordered field list of its nested
// data block. Order is load-bearing: the blocks are matched by position,
// not by name.
var DataFields = map[domain.CycleType][]string{
	domain.CycleCharge: {
		"Voltage_measured", "Current_measured", "Temperature_measured",
		"Current_charge", "Voltage_charge", "Time",
	},
	domain.CycleDischarge: {
		"Voltage_measured", "Current_measured", "Temperature_measured",
		"Current_charge", "Voltage_charge", "Time", "Capacity",
	},
	domain.CycleImpedance: {
		"Sense_current", "Battery_current", "Current_ratio",
		"Battery_impedance", "Rectified_impedance", "Re", "Rct",
	},
}

// FieldsFor returns the ordered field list for a cycle type tag.
func FieldsFor(tag domain.CycleType) ([]string, error) {
	fields, ok := DataFields[tag]
	if !ok {
		return nil, apperrors.Newf(apperrors.CodeUnsupportedCycleType,
			"cycle type %q not in schema table", string(tag))
	}
	return fields, nil
}
