package locations

import (
	"strings"
	"testing"
)

func TestLoadPlaces_DedupesSortsAndIgnoresComments(t *testing.T) {
	input := strings.NewReader(`
# Comment
Central Station
Airport Arrivals
Central Station

Harbor Ferry Dock
`)

	places, err := LoadPlaces(input)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(places) != 3 {
		t.Fatalf("expected 3 places, got %d", len(places))
	}
	if places[0] != "Airport Arrivals" || places[1] != "Central Station" || places[2] != "Harbor Ferry Dock" {
		t.Fatalf("unexpected places: %#v", places)
	}
}

func TestDefaultPlaces_ContainsKnownStops(t *testing.T) {
	places, err := DefaultPlaces()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(places) < 50 {
		t.Fatalf("expected a reasonably sized list, got %d", len(places))
	}

	for _, expected := range []string{"Central Station", "Airport Arrivals", "12 North Ave"} {
		if !containsString(places, expected) {
			t.Fatalf("expected place %q to be present", expected)
		}
	}
}

func TestSearch_CaseInsensitiveContains(t *testing.T) {
	places := []string{"Central Station", "Airport Arrivals", "Harbor Ferry Dock"}
	opts := NewOptions(WithEmptySearchMode(EmptySearchNone))

	results := Search(places, "aIrPoRt", 10, opts)
	if len(results) != 1 || results[0] != "Airport Arrivals" {
		t.Fatalf("unexpected results: %#v", results)
	}
}

func TestSearch_PrefixBeforeContains(t *testing.T) {
	places := []string{"Central Station", "Station Rd", "North Station", "Harbor Ferry Dock"}
	opts := NewOptions(WithEmptySearchMode(EmptySearchNone))

	results := Search(places, "station", 10, opts)
	want := []string{"Station Rd", "Central Station", "North Station"}
	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d: %#v", len(want), len(results), results)
	}
	for i := range want {
		if results[i] != want[i] {
			t.Fatalf("unexpected ordering at %d: got %q want %q (results: %#v)", i, results[i], want[i], results)
		}
	}
}

func TestSearch_LimitApplied(t *testing.T) {
	places := []string{"a", "b", "c", "d"}
	opts := NewOptions(WithDefaultLimit(2), WithMaxLimit(3), WithEmptySearchMode(EmptySearchTop))

	results := Search(places, "", 0, opts)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d: %#v", len(results), results)
	}
}

func TestSearchOptions_MapsValueAndLabel(t *testing.T) {
	places := []string{"City Hall"}
	opts := NewOptions(WithEmptySearchMode(EmptySearchNone))

	results := SearchOptions(places, "city", 10, opts)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Value != "City Hall" || results[0].Label != "City Hall" {
		t.Fatalf("unexpected option: %#v", results[0])
	}
}

func containsString(haystack []string, needle string) bool {
	for _, item := range haystack {
		if item == needle {
			return true
		}
	}
	return false
}
