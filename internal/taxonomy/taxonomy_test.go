// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package taxonomy

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/measure-engine/pkg/types"
)

func TestDefaultLoads(t *testing.T) {
	tax := Default()
	require.NotNil(t, tax)
	assert.Same(t, tax, Default(), "built-in taxonomy is parsed once")

	cats := tax.Categories()
	require.Len(t, cats, 8)
	names := make([]types.Category, len(cats))
	for i, c := range cats {
		names[i] = c.Name
	}
	assert.Equal(t, []types.Category{
		types.CategoryWidth, types.CategoryDepth, types.CategoryHeight,
		types.CategoryItemWeight, types.CategoryMaximumWeightRecommendation,
		types.CategoryVoltage, types.CategoryWattage, types.CategoryItemVolume,
	}, names)
}

func TestCanonicalUnits(t *testing.T) {
	units := Default().CanonicalUnits()
	assert.Len(t, units, 31)
	for _, u := range []string{"centimetre", "cubic foot", "microgram", "imperial gallon", "kilowatt", "millivolt"} {
		assert.Contains(t, units, u)
	}
	assert.True(t, Default().IsCanonical("litre"))
	assert.False(t, Default().IsCanonical("litres"))
}

func TestCategory(t *testing.T) {
	units, ok := Default().Category(types.CategoryWattage)
	require.True(t, ok)
	assert.Equal(t, []string{"kilowatt", "watt"}, units)

	_, ok = Default().Category("colour")
	assert.False(t, ok)
}

func TestCategoriesForSharedUnit(t *testing.T) {
	assert.Equal(t,
		[]types.Category{types.CategoryItemWeight, types.CategoryMaximumWeightRecommendation},
		Default().CategoriesFor("gram"))
	assert.Equal(t,
		[]types.Category{types.CategoryWidth, types.CategoryDepth, types.CategoryHeight},
		Default().CategoriesFor("inch"))
	assert.Empty(t, Default().CategoriesFor("furlong"))
}

func TestAliasesFor(t *testing.T) {
	tests := []struct {
		unit string
		want []string
	}{
		{"gram", []string{"g", "grams", "gs"}},
		{"inch", []string{"\"", "in", "inches", "ins"}},
		{"foot", []string{"feet", "foot", "ft"}},
		{"microgram", []string{"micrograms", "ug", "µg"}},
		{"litre", []string{"l", "liters", "litres", "ls"}},
		{"cubic foot", []string{"cu ft", "cubic feet", "cubic ft", "ft3"}},
		{"furlong", nil},
	}
	for _, tt := range tests {
		t.Run(tt.unit, func(t *testing.T) {
			assert.Equal(t, tt.want, Default().AliasesFor(tt.unit))
		})
	}
}

func TestAliasOrderLongestFirst(t *testing.T) {
	aliases := Default().Aliases()
	require.NotEmpty(t, aliases)

	for i := 1; i < len(aliases); i++ {
		prev, cur := aliases[i-1].Form, aliases[i].Form
		pl, cl := utf8.RuneCountInString(prev), utf8.RuneCountInString(cur)
		if pl < cl || (pl == cl && prev > cur) {
			t.Fatalf("alias %q sorted before %q", prev, cur)
		}
	}

	index := func(form string) int {
		for i, a := range aliases {
			if a.Form == form {
				return i
			}
		}
		t.Fatalf("alias %q missing", form)
		return -1
	}
	assert.Less(t, index("mm"), index("m"))
	assert.Less(t, index("kg"), index("g"))
	assert.Less(t, index("fl oz"), index("oz"))
	assert.Less(t, index("in3"), index("in"))
}

func TestAliasKeysAreFolded(t *testing.T) {
	for _, a := range Default().Aliases() {
		assert.Equal(t, Fold(a.Form), a.Form)
		assert.True(t, Default().IsCanonical(a.Unit), "alias %q targets %q", a.Form, a.Unit)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "units.yaml")
	data := `
categories:
  - name: item_weight
    units: [gram, kilogram]
aliases:
  - unit: gram
    forms: [g, grams]
  - unit: kilogram
    forms: [kg]
defaults:
  - keyword: weight
    unit: gram
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	tax, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"gram", "kilogram"}, tax.CanonicalUnits())
	assert.Equal(t, "kilogram", tax.Normalize("kg"))
	assert.Len(t, tax.Aliases(), 3)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load(strings.NewReader("categories: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing taxonomy")
}

func TestNewValidation(t *testing.T) {
	base := func() File {
		return File{
			Categories: []CategoryUnits{{Name: "item_weight", Units: []string{"gram", "kilogram"}}},
			Aliases:    []AliasGroup{{Unit: "gram", Forms: []string{"g"}}},
			Defaults:   []DefaultRule{{Keyword: "weight", Unit: "gram"}},
		}
	}

	tests := []struct {
		name   string
		mutate func(f *File)
		errMsg string
	}{
		{
			name:   "no categories",
			mutate: func(f *File) { f.Categories = nil },
			errMsg: "no categories",
		},
		{
			name: "alias maps to two units",
			mutate: func(f *File) {
				f.Aliases = append(f.Aliases, AliasGroup{Unit: "kilogram", Forms: []string{"g"}})
			},
			errMsg: `alias "g" maps to both "gram" and "kilogram"`,
		},
		{
			name:   "alias targets unknown unit",
			mutate: func(f *File) { f.Aliases[0].Unit = "grain" },
			errMsg: `unknown unit "grain"`,
		},
		{
			name:   "uppercase alias",
			mutate: func(f *File) { f.Aliases[0].Forms = []string{"G"} },
			errMsg: `alias "G" must be`,
		},
		{
			name:   "canonical name aliased elsewhere",
			mutate: func(f *File) { f.Aliases = append(f.Aliases, AliasGroup{Unit: "gram", Forms: []string{"kilogram"}}) },
			errMsg: `alias "kilogram" is a canonical unit but maps to "gram"`,
		},
		{
			name:   "default rule unknown unit",
			mutate: func(f *File) { f.Defaults[0].Unit = "stone" },
			errMsg: `default rule "weight" targets unknown unit "stone"`,
		},
		{
			name: "duplicate category",
			mutate: func(f *File) {
				f.Categories = append(f.Categories, CategoryUnits{Name: "item_weight", Units: []string{"gram"}})
			},
			errMsg: `category "item_weight" listed twice`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := base()
			tt.mutate(&f)
			_, err := New(f)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidTaxonomy)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	_, err := New(base())
	assert.NoError(t, err)
}

func TestFileIsACopy(t *testing.T) {
	f := Default().File()
	f.Categories[0].Units[0] = "furlong"
	f.Aliases[0].Forms = nil

	again := Default().File()
	assert.Equal(t, "centimetre", again.Categories[0].Units[0])
	assert.NotEmpty(t, again.Aliases[0].Forms)
}
