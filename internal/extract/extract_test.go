// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/measure-engine/internal/taxonomy"
	"github.com/pdiddy/measure-engine/pkg/types"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   types.Measurement
		wantOK bool
	}{
		{"centimetre", "25 cm", types.Measurement{Value: "25", Unit: "centimetre"}, true},
		{"no space longest first", "3.5kg", types.Measurement{Value: "3.5", Unit: "kilogram"}, true},
		{"mm not metre", "12mm", types.Measurement{Value: "12", Unit: "millimetre"}, true},
		{"uppercase", "Weight: 500 G", types.Measurement{Value: "500", Unit: "gram"}, true},
		{"micro sign", "10 µG", types.Measurement{Value: "10", Unit: "microgram"}, true},
		{"greek capital mu", "10 ΜG", types.Measurement{Value: "10", Unit: "microgram"}, true},
		{"micro litre", "250µl", types.Measurement{Value: "250", Unit: "microlitre"}, true},
		{"multi word alias", "12 fl oz", types.Measurement{Value: "12", Unit: "fluid ounce"}, true},
		{"cubic feet", "about 2 cubic feet", types.Measurement{Value: "2", Unit: "cubic foot"}, true},
		{"ft3 before ft", "7ft3", types.Measurement{Value: "7", Unit: "cubic foot"}, true},
		{"plural", "12 inches wide", types.Measurement{Value: "12", Unit: "inch"}, true},
		{"quote is inch", `6" tall`, types.Measurement{Value: "6", Unit: "inch"}, true},
		{"negative", "-3.5 v", types.Measurement{Value: "-3.5", Unit: "volt"}, true},
		{"explicit plus", "+4 w", types.Measurement{Value: "+4", Unit: "watt"}, true},
		{"tab gap", "100\tml", types.Measurement{Value: "100", Unit: "millilitre"}, true},
		{"no-break space gap", "100\u00a0ml", types.Measurement{Value: "100", Unit: "millilitre"}, true},
		{"trailing punctuation", "25 cm.", types.Measurement{Value: "25", Unit: "centimetre"}, true},
		{"nothing before number checked", "x12cm", types.Measurement{Value: "12", Unit: "centimetre"}, true},
		{"leading dot needs a digit", ".5 kg", types.Measurement{Value: "5", Unit: "kilogram"}, true},
		{"exponent not part of literal", "1.5e3 kg", types.Measurement{Value: "3", Unit: "kilogram"}, true},
		{"thousands separator not part of literal", "1,000 g", types.Measurement{Value: "000", Unit: "gram"}, true},
		{"canonical spelling not an alias", "10 litre", types.Measurement{}, false},
		{"unit glued to a word", "10 mmx", types.Measurement{}, false},
		{"no number", "cm", types.Measurement{}, false},
		{"no unit", "no measurement here", types.Measurement{}, false},
		{"empty", "", types.Measurement{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractFirstAliasWins(t *testing.T) {
	// "kg" is tried before "g", so the later kilogram value wins even though
	// the gram value comes first in the text.
	got, ok := Extract("100 g and 2 kg")
	require.True(t, ok)
	assert.Equal(t, types.Measurement{Value: "2", Unit: "kilogram"}, got)

	// Equal-length aliases are tried lexically: "cm" before "mm".
	got, ok = Extract("2000 mm or 10 cm")
	require.True(t, ok)
	assert.Equal(t, types.Measurement{Value: "10", Unit: "centimetre"}, got)

	// Within one alias the leftmost match is taken.
	got, ok = Extract("5 cm by 7 cm")
	require.True(t, ok)
	assert.Equal(t, "5", got.Value)
}

func TestExtractWithCanonicalForms(t *testing.T) {
	ex := New(taxonomy.Default(), WithCanonicalForms())

	tests := []struct {
		text string
		want types.Measurement
	}{
		{"10 litre", types.Measurement{Value: "10", Unit: "litre"}},
		{"10 litres", types.Measurement{Value: "10", Unit: "litre"}},
		{"5 cubic inch", types.Measurement{Value: "5", Unit: "cubic inch"}},
		{"2 imperial gallon", types.Measurement{Value: "2", Unit: "imperial gallon"}},
		{"25 cm", types.Measurement{Value: "25", Unit: "centimetre"}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ex.Extract(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormsOrder(t *testing.T) {
	plain := New(taxonomy.Default()).Forms()
	assert.Len(t, plain, len(taxonomy.Default().Aliases()))
	assert.NotContains(t, plain, "litre")

	withCanonical := New(taxonomy.Default(), WithCanonicalForms()).Forms()
	assert.Contains(t, withCanonical, "litre")
	assert.Contains(t, withCanonical, "imperial gallon")
	// "foot" is already an alias key and is not added twice.
	count := 0
	for _, f := range withCanonical {
		if f == "foot" {
			count++
		}
	}
	assert.Equal(t, 1, count)

	for i := 1; i < len(withCanonical); i++ {
		assert.LessOrEqual(t, taxonomy.CompareForms(withCanonical[i-1], withCanonical[i]), 0)
	}
}

func TestExtractCustomTaxonomy(t *testing.T) {
	tax, err := taxonomy.New(taxonomy.File{
		Categories: []taxonomy.CategoryUnits{{Name: types.CategoryItemWeight, Units: []string{"gram"}}},
		Aliases:    []taxonomy.AliasGroup{{Unit: "gram", Forms: []string{"gr"}}},
	})
	require.NoError(t, err)

	got, ok := New(tax).Extract("40 gr")
	require.True(t, ok)
	assert.Equal(t, types.Measurement{Value: "40", Unit: "gram"}, got)

	_, ok = New(tax).Extract("40 g")
	assert.False(t, ok)
}
