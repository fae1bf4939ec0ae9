// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract finds the first "<number> <unit>" measurement in free
// text and resolves the unit to its canonical name.
package extract

import (
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/pdiddy/measure-engine/internal/taxonomy"
	"github.com/pdiddy/measure-engine/pkg/types"
)

// numberExpr captures an optionally signed decimal literal. Exponents,
// fractions and thousands separators are not part of a literal.
const numberExpr = `([+-]?\d+(?:\.\d+)?)`

// gapExpr allows any run of whitespace, Unicode spaces included, between
// the number and the unit.
const gapExpr = `[\s\p{Z}]*`

// boundaryExpr requires the unit to end the token: the next character must
// not be a letter. It stops "m" from matching the start of "mm".
const boundaryExpr = `(?:[^\p{L}]|$)`

type pattern struct {
	form string
	unit string
	re   *regexp.Regexp
}

type options struct {
	acceptCanonical bool
}

// Option configures an Extractor.
type Option func(*options)

// WithCanonicalForms also recognizes canonical unit names that the alias
// table does not list (so "10 litre" yields litre). Without it such text
// yields no measurement.
func WithCanonicalForms() Option {
	return func(o *options) { o.acceptCanonical = true }
}

// Extractor matches measurements against a taxonomy's alias table. It is
// immutable and safe for concurrent use.
type Extractor struct {
	patterns []pattern
}

// New compiles one pattern per alias of tax, in the taxonomy's match order
// (longest alias first).
func New(tax *taxonomy.Taxonomy, opts ...Option) *Extractor {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	aliases := tax.Aliases()
	if o.acceptCanonical {
		for _, u := range tax.CanonicalUnits() {
			if _, listed := tax.Lookup(u); !listed {
				aliases = append(aliases, taxonomy.Alias{Form: u, Unit: u})
			}
		}
		slices.SortStableFunc(aliases, func(a, b taxonomy.Alias) int {
			return taxonomy.CompareForms(a.Form, b.Form)
		})
	}

	e := &Extractor{patterns: make([]pattern, 0, len(aliases))}
	for _, a := range aliases {
		e.patterns = append(e.patterns, pattern{
			form: a.Form,
			unit: tax.Normalize(a.Form),
			re:   regexp.MustCompile(numberExpr + gapExpr + regexp.QuoteMeta(a.Form) + boundaryExpr),
		})
	}
	return e
}

// Extract returns the first measurement found in text.
//
// Aliases are tried one at a time in match order and the first alias with
// any match anywhere in the text wins; later aliases are not tried even if
// they match earlier in the text. Nothing is checked before the number, so
// "x12cm" yields 12 centimetre. Because longer aliases go first and a unit
// must end at a non-letter, "12mm" is millimetre and "3.5kg" is kilogram.
// Aliases that are also English words still match as whole tokens
// ("5 in the box" is inch).
func (e *Extractor) Extract(text string) (types.Measurement, bool) {
	lowered := taxonomy.Fold(text)
	for _, p := range e.patterns {
		if !strings.Contains(lowered, p.form) {
			continue
		}
		m := p.re.FindStringSubmatch(lowered)
		if m == nil {
			continue
		}
		return types.Measurement{Value: m[1], Unit: p.unit}, true
	}
	return types.Measurement{}, false
}

// Forms returns the surface forms in the order Extract tries them.
func (e *Extractor) Forms() []string {
	out := make([]string, len(e.patterns))
	for i, p := range e.patterns {
		out[i] = p.form
	}
	return out
}

var defaultExtractor = sync.OnceValue(func() *Extractor {
	return New(taxonomy.Default())
})

// Extract runs the built-in taxonomy's extractor.
func Extract(text string) (types.Measurement, bool) {
	return defaultExtractor().Extract(text)
}
