// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for measure-engine.
package types

import "strings"

// Category names a measurement dimension that owns a set of canonical units.
type Category string

const (
	CategoryWidth                       Category = "width"
	CategoryDepth                       Category = "depth"
	CategoryHeight                      Category = "height"
	CategoryItemWeight                  Category = "item_weight"
	CategoryMaximumWeightRecommendation Category = "maximum_weight_recommendation"
	CategoryVoltage                     Category = "voltage"
	CategoryWattage                     Category = "wattage"
	CategoryItemVolume                  Category = "item_volume"
)

// Measurement is a numeric literal paired with a canonical unit, as found
// in free text. Value keeps the literal exactly as written (sign and
// decimal point included) so no precision is lost or invented.
type Measurement struct {
	// Value is the numeric literal, e.g. "3.5" or "-12".
	Value string `json:"value" yaml:"value"`

	// Unit is the canonical unit name, e.g. "kilogram" or "cubic foot".
	Unit string `json:"unit" yaml:"unit"`
}

// String formats the measurement as "<value> <unit>". A measurement with
// neither part set formats as the empty string.
func (m Measurement) String() string {
	return strings.TrimSpace(m.Value + " " + m.Unit)
}

// IsZero reports whether the measurement carries no value and no unit.
func (m Measurement) IsZero() bool {
	return m.Value == "" && m.Unit == ""
}

// Outcome records why the classifier produced its output for a cell.
type Outcome string

const (
	// OutcomeAccepted means a measurement was extracted and formatted.
	OutcomeAccepted Outcome = "accepted"

	// OutcomeRejectedInteger means the cell was a bare integer and was blanked.
	OutcomeRejectedInteger Outcome = "rejected_integer"

	// OutcomeRejectedNoMeasurement means no alias matched and the cell was blanked.
	OutcomeRejectedNoMeasurement Outcome = "rejected_no_measurement"

	// OutcomePassthrough means the formatted measurement was empty and the
	// raw cell was kept unchanged.
	OutcomePassthrough Outcome = "passthrough"

	// OutcomeShortRow means the row had no text column and was not classified.
	OutcomeShortRow Outcome = "short_row"
)

// Record is one data row of the input table. Fields holds every column in
// source order; the text column is addressed by index and nothing else in
// the row is interpreted.
type Record struct {
	// Line is the 1-based data row number (the header is not counted).
	Line int `json:"line" yaml:"line"`

	// Fields are the row's cells in source order.
	Fields []string `json:"fields" yaml:"fields"`
}
