// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package taxonomy

import "testing"

func TestDefaultUnitFor(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{"weight", "item_weight", "gram", true},
		{"max weight", "maximum_weight_recommendation", "gram", true},
		{"volume", "item_volume", "litre", true},
		{"height", "height", "centimetre", true},
		{"width", "what is the width", "centimetre", true},
		{"depth", "depth", "centimetre", true},
		{"voltage", "voltage", "volt", true},
		{"wattage", "wattage", "watt", true},
		{"weight wins over volume", "volume and weight", "gram", true},
		{"volume wins over voltage", "voltage volume", "litre", true},
		{"case sensitive", "WEIGHT", "", false},
		{"no keyword", "colour", "", false},
		{"empty", "", "", false},
	}

	tax := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tax.DefaultUnitFor(tt.text)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("DefaultUnitFor(%q) = %q, %v; want %q, %v", tt.text, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDefaultRulesOrder(t *testing.T) {
	rules := Default().DefaultRules()
	want := []string{"weight", "volume", "height", "width", "depth", "voltage", "wattage"}
	if len(rules) != len(want) {
		t.Fatalf("got %d rules, want %d", len(rules), len(want))
	}
	for i, r := range rules {
		if r.Keyword != want[i] {
			t.Errorf("rule %d keyword = %q, want %q", i, r.Keyword, want[i])
		}
	}
}
