// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/measure-engine/internal/extract"
	"github.com/pdiddy/measure-engine/internal/taxonomy"
	"github.com/pdiddy/measure-engine/pkg/types"
)

func newClassifier(opts ...extract.Option) *Classifier {
	return New(extract.New(taxonomy.Default(), opts...))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		outcome types.Outcome
	}{
		{"bare integer", "12", "", types.OutcomeRejectedInteger},
		{"signed integer", "-7", "", types.OutcomeRejectedInteger},
		{"padded integer", " 42\n", "", types.OutcomeRejectedInteger},
		{"huge integer", "123456789012345678901234567890", "", types.OutcomeRejectedInteger},
		{"no measurement", "no measurement here", "", types.OutcomeRejectedNoMeasurement},
		{"empty cell", "", "", types.OutcomeRejectedNoMeasurement},
		{"decimal without unit", "12.5", "", types.OutcomeRejectedNoMeasurement},
		{"gram", "weighs about 250 g", "250 gram", types.OutcomeAccepted},
		{"centimetre", "25 cm", "25 centimetre", types.OutcomeAccepted},
		{"kilogram", "3.5kg", "3.5 kilogram", types.OutcomeAccepted},
		{"model answer", "The item weight is 1.2 Pounds", "1.2 pound", types.OutcomeAccepted},
		{"canonical spelling is a gap", "10 litre", "", types.OutcomeRejectedNoMeasurement},
	}

	c := newClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := c.Evaluate(tt.raw)
			assert.Equal(t, tt.want, res.Output)
			assert.Equal(t, tt.outcome, res.Outcome)
			assert.Equal(t, tt.want, c.Classify(tt.raw))
			if tt.outcome == types.OutcomeAccepted {
				require.NotNil(t, res.Measurement)
			} else {
				assert.Nil(t, res.Measurement)
			}
		})
	}
}

func TestClassifyAcceptCanonical(t *testing.T) {
	c := newClassifier(extract.WithCanonicalForms())
	assert.Equal(t, "10 litre", c.Classify("10 litre"))
	assert.Equal(t, "", c.Classify("12"))
}

type stubExtractor struct {
	m  types.Measurement
	ok bool
}

func (s stubExtractor) Extract(string) (types.Measurement, bool) { return s.m, s.ok }

func TestClassifyEmptyMeasurementFallsBackToRaw(t *testing.T) {
	c := New(stubExtractor{ok: true})
	res := c.Evaluate("some text")
	assert.Equal(t, "some text", res.Output)
	assert.Equal(t, types.OutcomePassthrough, res.Outcome)
}

func TestIsInteger(t *testing.T) {
	for _, s := range []string{"0", "12", "+3", "-0", " 9 "} {
		assert.True(t, IsInteger(s), s)
	}
	for _, s := range []string{"", "1.0", "1e3", "1_000", "1,000", "12 cm", "+", "٣"} {
		assert.False(t, IsInteger(s), s)
	}
}
