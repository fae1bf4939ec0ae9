// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package taxonomy holds the unit catalogue: measurement categories and
// their canonical units, the alias table that maps surface spellings to
// canonical units, and the keyword rules of the category defaulter.
//
// A Taxonomy is immutable once built and safe for concurrent use.
package taxonomy

import (
	"bytes"
	"cmp"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/measure-engine/pkg/types"
)

//go:embed taxonomy.yaml
var builtinYAML []byte

// ErrInvalidTaxonomy is returned when a taxonomy file breaks one of the
// catalogue invariants (duplicate alias, unknown unit, uppercase key).
var ErrInvalidTaxonomy = errors.New("invalid taxonomy")

// CategoryUnits lists the canonical units one category accepts.
type CategoryUnits struct {
	Name  types.Category `json:"name" yaml:"name"`
	Units []string       `json:"units" yaml:"units"`
}

// AliasGroup lists the surface forms that resolve to one canonical unit.
type AliasGroup struct {
	Unit  string   `json:"unit" yaml:"unit"`
	Forms []string `json:"forms" yaml:"forms"`
}

// DefaultRule maps a keyword found in text to a fallback canonical unit.
type DefaultRule struct {
	Keyword string `json:"keyword" yaml:"keyword"`
	Unit    string `json:"unit" yaml:"unit"`
}

// File is the on-disk representation of a taxonomy.
type File struct {
	Categories []CategoryUnits `json:"categories" yaml:"categories"`
	Aliases    []AliasGroup    `json:"aliases" yaml:"aliases"`
	Defaults   []DefaultRule   `json:"defaults" yaml:"defaults"`
}

// Alias is one entry of the alias table.
type Alias struct {
	Form string `json:"form" yaml:"form"`
	Unit string `json:"unit" yaml:"unit"`
}

// Taxonomy is a validated, read-only unit catalogue.
type Taxonomy struct {
	file      File
	canonical map[string]bool
	aliases   []Alias
	byForm    map[string]string
}

var builtin = sync.OnceValues(func() (*Taxonomy, error) {
	return Load(bytes.NewReader(builtinYAML))
})

// Default returns the built-in taxonomy. It is parsed on first use and
// shared afterwards.
func Default() *Taxonomy {
	t, err := builtin()
	if err != nil {
		panic(fmt.Sprintf("built-in taxonomy: %v", err))
	}
	return t
}

// Load parses and validates a YAML taxonomy.
func Load(r io.Reader) (*Taxonomy, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading taxonomy: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing taxonomy: %w", err)
	}
	return New(f)
}

// LoadFile reads a YAML taxonomy from path.
func LoadFile(path string) (*Taxonomy, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening taxonomy %s: %w", path, err)
	}
	defer fh.Close()
	return Load(fh)
}

// New validates f and builds the lookup structures. The alias table is
// ordered longest form first (by rune count), ties broken lexically; that
// order is the order in which the extractor tries aliases.
func New(f File) (*Taxonomy, error) {
	if err := validate(f); err != nil {
		return nil, err
	}

	t := &Taxonomy{
		file:      cloneFile(f),
		canonical: make(map[string]bool),
		byForm:    make(map[string]string),
	}
	for _, c := range f.Categories {
		for _, u := range c.Units {
			t.canonical[u] = true
		}
	}
	for _, g := range f.Aliases {
		for _, form := range g.Forms {
			t.byForm[form] = g.Unit
			t.aliases = append(t.aliases, Alias{Form: form, Unit: g.Unit})
		}
	}
	slices.SortFunc(t.aliases, func(a, b Alias) int {
		return CompareForms(a.Form, b.Form)
	})

	return t, nil
}

// CompareForms orders surface forms for matching: more runes first, then
// lexically. It returns a negative number when a is tried before b.
func CompareForms(a, b string) int {
	if c := cmp.Compare(utf8.RuneCountInString(b), utf8.RuneCountInString(a)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func validate(f File) error {
	var problems []string
	addf := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if len(f.Categories) == 0 {
		addf("no categories")
	}

	canonical := make(map[string]bool)
	seenCategory := make(map[types.Category]bool)
	for _, c := range f.Categories {
		if c.Name == "" {
			addf("category with empty name")
		}
		if seenCategory[c.Name] {
			addf("category %q listed twice", c.Name)
		}
		seenCategory[c.Name] = true
		if len(c.Units) == 0 {
			addf("category %q has no units", c.Name)
		}
		for _, u := range c.Units {
			if u == "" || u != Fold(u) || u != strings.TrimSpace(u) {
				addf("category %q: unit %q must be non-empty, trimmed and lowercase", c.Name, u)
			}
			canonical[u] = true
		}
	}

	owner := make(map[string]string)
	for _, g := range f.Aliases {
		if !canonical[g.Unit] {
			addf("alias group targets unknown unit %q", g.Unit)
		}
		for _, form := range g.Forms {
			if form == "" || form != Fold(form) || form != strings.TrimSpace(form) {
				addf("alias %q must be non-empty, trimmed and lowercase", form)
			}
			if prev, ok := owner[form]; ok {
				if prev == g.Unit {
					addf("alias %q listed twice for %q", form, g.Unit)
				} else {
					addf("alias %q maps to both %q and %q", form, prev, g.Unit)
				}
				continue
			}
			owner[form] = g.Unit
			if canonical[form] && form != g.Unit {
				addf("alias %q is a canonical unit but maps to %q", form, g.Unit)
			}
		}
	}

	for _, r := range f.Defaults {
		if r.Keyword == "" {
			addf("default rule with empty keyword")
		}
		if !canonical[r.Unit] {
			addf("default rule %q targets unknown unit %q", r.Keyword, r.Unit)
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTaxonomy, strings.Join(problems, "; "))
	}
	return nil
}

func cloneFile(f File) File {
	out := File{
		Categories: make([]CategoryUnits, len(f.Categories)),
		Aliases:    make([]AliasGroup, len(f.Aliases)),
		Defaults:   slices.Clone(f.Defaults),
	}
	for i, c := range f.Categories {
		out.Categories[i] = CategoryUnits{Name: c.Name, Units: slices.Clone(c.Units)}
	}
	for i, g := range f.Aliases {
		out.Aliases[i] = AliasGroup{Unit: g.Unit, Forms: slices.Clone(g.Forms)}
	}
	return out
}

// File returns a copy of the taxonomy in its on-disk shape, for export.
func (t *Taxonomy) File() File {
	return cloneFile(t.file)
}

// Categories returns every category with its canonical units, in file order.
func (t *Taxonomy) Categories() []CategoryUnits {
	return cloneFile(t.file).Categories
}

// Category returns the canonical units of the named category.
func (t *Taxonomy) Category(name types.Category) ([]string, bool) {
	for _, c := range t.file.Categories {
		if c.Name == name {
			return slices.Clone(c.Units), true
		}
	}
	return nil, false
}

// CategoriesFor returns the categories that accept unit, in file order.
func (t *Taxonomy) CategoriesFor(unit string) []types.Category {
	var out []types.Category
	for _, c := range t.file.Categories {
		if slices.Contains(c.Units, unit) {
			out = append(out, c.Name)
		}
	}
	return out
}

// CanonicalUnits returns the canonical unit set, sorted.
func (t *Taxonomy) CanonicalUnits() []string {
	out := make([]string, 0, len(t.canonical))
	for u := range t.canonical {
		out = append(out, u)
	}
	slices.Sort(out)
	return out
}

// IsCanonical reports whether unit belongs to the canonical unit set.
func (t *Taxonomy) IsCanonical(unit string) bool {
	return t.canonical[unit]
}

// AliasesFor returns the known surface forms of unit, sorted. Canonical
// names are only included when the alias table lists them.
func (t *Taxonomy) AliasesFor(unit string) []string {
	var out []string
	for form, u := range t.byForm {
		if u == unit {
			out = append(out, form)
		}
	}
	slices.Sort(out)
	return out
}

// Aliases returns the alias table in match order: longest form first.
func (t *Taxonomy) Aliases() []Alias {
	return slices.Clone(t.aliases)
}

// DefaultRules returns the defaulter rules in evaluation order.
func (t *Taxonomy) DefaultRules() []DefaultRule {
	return slices.Clone(t.file.Defaults)
}
