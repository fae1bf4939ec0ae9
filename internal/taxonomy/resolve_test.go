// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEveryAlias(t *testing.T) {
	tax := Default()
	for _, a := range tax.Aliases() {
		assert.Equal(t, a.Unit, tax.Normalize(Fold(a.Form)), "alias %q", a.Form)
	}
}

func TestNormalizeCanonicalIsIdentity(t *testing.T) {
	tax := Default()
	for _, u := range tax.CanonicalUnits() {
		assert.Equal(t, u, tax.Normalize(u))
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"kg", "kilogram"},
		{"fl oz", "fluid ounce"},
		{"µg", "microgram"},
		{`"`, "inch"},
		{"feet", "foot"},
		{"furlongs", "furlongs"},
		{"", ""},
		// Callers fold first; an unfolded token is passed through.
		{"KG", "KG"},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.token))
		})
	}
}

func TestLookup(t *testing.T) {
	unit, ok := Default().Lookup("lbs")
	assert.True(t, ok)
	assert.Equal(t, "pound", unit)

	_, ok = Default().Lookup("litre")
	assert.False(t, ok, "canonical spellings are not alias keys unless listed")
}

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"25 CM", "25 cm"},
		{"5 µG", "5 µg"},
		{"5 ΜG", "5 µg"},
		{"5 μl", "5 µl"},
		{"Fl Oz", "fl oz"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Fold(tt.in), "Fold(%q)", tt.in)
	}
}
