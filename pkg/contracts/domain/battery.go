// Package domain holds the exported record types shared between the
// converter internals and its CLIs.
package domain

import (
	"time"
)

// CycleType tags one test cycle in a battery archive. The tag set is
// closed: the rigs record nothing else.
type CycleType string

const (
	CycleCharge    CycleType = "charge"
	CycleDischarge CycleType = "discharge"
	CycleImpedance CycleType = "impedance"
)

// CycleMetadata is the per-cycle metadata triple repeated on every output
// row of that cycle.
type CycleMetadata struct {
	Type        CycleType `json:"type"`
	StartTime   time.Time `json:"start_time"`
	AmbientTemp float64   `json:"ambient_temp"`
}

// ConversionSummary describes one completed battery conversion.
type ConversionSummary struct {
	Battery    string   `json:"battery"`
	Cycles     int      `json:"cycles"`
	Rows       int      `json:"rows"`
	Columns    []string `json:"columns"`
	OutputPath string   `json:"output_path"`
	Format     string   `json:"format"`
}
