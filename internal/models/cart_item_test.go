package models

import "testing"

func TestBuildVariationKeyOrderInsensitive(t *testing.T) {
	a := BuildVariationKey(VariationMap{"Color": "Black", "Size": "M"})
	b := BuildVariationKey(VariationMap{"Size": "M", "Color": "Black"})
	if a != b {
		t.Fatalf("expected same key for same selection, got %q vs %q", a, b)
	}
	if a != "color=black;size=m" {
		t.Fatalf("unexpected key format: %q", a)
	}
}

func TestBuildVariationKeyNormalizesCaseAndSpace(t *testing.T) {
	a := BuildVariationKey(VariationMap{" Color ": " BLACK "})
	b := BuildVariationKey(VariationMap{"color": "black"})
	if a != b {
		t.Fatalf("expected normalized keys to match, got %q vs %q", a, b)
	}
}

func TestBuildVariationKeyDistinguishesSelections(t *testing.T) {
	a := BuildVariationKey(VariationMap{"Color": "Black"})
	b := BuildVariationKey(VariationMap{"Color": "Brown"})
	if a == b {
		t.Fatalf("different selections must produce different keys")
	}
}

func TestBuildVariationKeyEmpty(t *testing.T) {
	if key := BuildVariationKey(nil); key != "" {
		t.Fatalf("expected empty key for no selection, got %q", key)
	}
}
