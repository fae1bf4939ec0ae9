// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package taxonomy

import "strings"

// DefaultUnitFor infers a fallback canonical unit from category keywords in
// text ("weight", "volume", "height", ...). Rules are tried in order and the
// first keyword found wins. Matching is a case-sensitive substring test, so
// entity names such as "item_weight" match "weight".
//
// Nothing in the extraction path calls this. Using it as a fallback for
// cells without a unit would change which cells are accepted.
func (t *Taxonomy) DefaultUnitFor(text string) (string, bool) {
	for _, r := range t.file.Defaults {
		if strings.Contains(text, r.Keyword) {
			return r.Unit, true
		}
	}
	return "", false
}
