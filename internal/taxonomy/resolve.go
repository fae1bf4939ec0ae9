// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package taxonomy

import "strings"

// micro folds the Greek small letter mu onto the micro sign. Uppercasing
// "µ" yields the Greek capital mu, which lowercases back to the Greek
// letter, so "ΜG" would otherwise never reach the "µg" alias.
var micro = strings.NewReplacer("μ", "µ")

// Fold lowercases s the way alias keys are stored.
func Fold(s string) string {
	return micro.Replace(strings.ToLower(s))
}

// Normalize returns the canonical unit for token, or token itself when the
// alias table does not list it. token must already be folded. The result
// does not say whether token was recognized; use IsCanonical for that.
func (t *Taxonomy) Normalize(token string) string {
	if unit, ok := t.byForm[token]; ok {
		return unit
	}
	return token
}

// Lookup returns the canonical unit for an alias and whether it is listed.
func (t *Taxonomy) Lookup(token string) (string, bool) {
	unit, ok := t.byForm[token]
	return unit, ok
}

// Normalize resolves token against the built-in taxonomy.
func Normalize(token string) string {
	return Default().Normalize(token)
}
