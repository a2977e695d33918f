package ingest

import "testing"

func testTable() []Category {
	return []Category{
		{Name: "actors", Keywords: []string{"google", "user"}},
		{Name: "contexts", Keywords: []string{"account", "google account"}},
		{Name: "data_types", Keywords: []string{"information", "ip address"}},
	}
}

func TestCategorizeFirstMatchWins(t *testing.T) {
	tax := NewTaxonomy(testTable())

	terms := map[string]struct{}{"google": {}}
	got := tax.Categorize(terms)

	// "google" matches actors before anything later in the table
	if _, ok := got["actors"]["google"]; !ok {
		t.Error("google should be claimed by actors (first category in table order)")
	}
}

func TestCategorizeMultiwordKeywordSubstring(t *testing.T) {
	tax := NewTaxonomy(testTable())

	got := tax.Categorize(map[string]struct{}{"my ip address": {}})

	// Multi-word keyword "ip address" matches as a substring of the term
	if _, ok := got["data_types"]["my ip address"]; !ok {
		t.Error("multi-word keyword should match by substring")
	}
}

func TestCategorizeTotality(t *testing.T) {
	tax := NewTaxonomy(testTable())

	terms := map[string]struct{}{
		"google":      {},
		"account":     {},
		"information": {},
		"zebra":       {},
	}
	got := tax.Categorize(terms)

	// Every term lands in exactly one category; union equals input
	seen := make(map[string]int)
	for _, set := range got {
		for term := range set {
			seen[term]++
		}
	}
	for term := range terms {
		if seen[term] != 1 {
			t.Errorf("term %q claimed %d times, want exactly 1", term, seen[term])
		}
	}
	if _, ok := got[OtherCategory]["zebra"]; !ok {
		t.Error("unmatched term should fall into the catch-all category")
	}
}

func TestCategorizeSingleWordKeywordNoSubstring(t *testing.T) {
	tax := NewTaxonomy(testTable())

	got := tax.Categorize(map[string]struct{}{"username": {}})

	// Single-word keywords match only by equality: "user" must not claim "username"
	if _, ok := got["actors"]["username"]; ok {
		t.Error("single-word keyword must not match by substring")
	}
	if _, ok := got[OtherCategory]["username"]; !ok {
		t.Error("username should be uncategorized")
	}
}
