// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify decides what a raw description cell becomes in the
// output table: a normalized "<value> <unit>" string, or empty when no
// reliable measurement can be read from it.
package classify

import (
	"regexp"
	"strings"

	"github.com/pdiddy/measure-engine/pkg/types"
)

// integerPattern matches a whole-cell base-10 integer literal.
var integerPattern = regexp.MustCompile(`^[+-]?\d+$`)

// Extractor finds a measurement in free text.
type Extractor interface {
	Extract(text string) (types.Measurement, bool)
}

// Result is the classifier's decision for one cell.
type Result struct {
	// Output is the value written to the output table.
	Output string `json:"output" yaml:"output"`

	// Outcome names the rule that produced Output.
	Outcome types.Outcome `json:"outcome" yaml:"outcome"`

	// Measurement is set when an extraction succeeded.
	Measurement *types.Measurement `json:"measurement,omitempty" yaml:"measurement,omitempty"`
}

// Classifier applies the accept/reject policy using an Extractor.
type Classifier struct {
	extractor Extractor
}

// New returns a Classifier backed by ex.
func New(ex Extractor) *Classifier {
	return &Classifier{extractor: ex}
}

// Classify returns the output cell for raw.
func (c *Classifier) Classify(raw string) string {
	return c.Evaluate(raw).Output
}

// Evaluate applies the policy in order:
//
//  1. A bare integer (surrounding whitespace ignored) carries no unit and
//     is blanked.
//  2. Text without a recognizable measurement is blanked.
//  3. Otherwise the measurement is formatted as "<value> <unit>"; an empty
//     format falls back to the raw cell.
func (c *Classifier) Evaluate(raw string) Result {
	if IsInteger(raw) {
		return Result{Outcome: types.OutcomeRejectedInteger}
	}

	m, ok := c.extractor.Extract(raw)
	if !ok {
		return Result{Outcome: types.OutcomeRejectedNoMeasurement}
	}

	out := m.String()
	if out == "" {
		return Result{Output: raw, Outcome: types.OutcomePassthrough, Measurement: &m}
	}
	return Result{Output: out, Outcome: types.OutcomeAccepted, Measurement: &m}
}

// IsInteger reports whether s, trimmed of surrounding whitespace, is an
// optionally signed run of decimal digits. There is no size limit.
func IsInteger(s string) bool {
	return integerPattern.MatchString(strings.TrimSpace(s))
}
