package fare_test

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/fare"
)

func TestEstimateEconomy(t *testing.T) {
	est := fare.MustNew()

	quote, ok := est.Estimate("economy")
	if !ok {
		t.Fatal("expected an estimate for economy")
	}

	want := fare.Quote{
		Service:   fare.ServiceEconomy,
		Label:     "Economy",
		Base:      10,
		Surcharge: 10,
		Total:     20,
		Currency:  "$",
	}
	if diff := cmp.Diff(want, quote); diff != "" {
		t.Fatalf("quote mismatch (-want +got):\n%s", diff)
	}
}

func TestEstimateUnknownService(t *testing.T) {
	est := fare.MustNew()

	if _, ok := est.Estimate("rocket"); ok {
		t.Fatal("unknown service must not produce an estimate")
	}
	if _, ok := est.Estimate(""); ok {
		t.Fatal("blank service must not produce an estimate")
	}
}

func TestQuoteForSentinel(t *testing.T) {
	est := fare.MustNew()

	quote, err := est.QuoteFor("comfort")
	if err != nil {
		t.Fatalf("quote for comfort: %v", err)
	}
	if quote.Total != 24 {
		t.Fatalf("expected total 24, got %d", quote.Total)
	}

	_, err = est.QuoteFor("rocket")
	if !errors.Is(err, fare.ErrNoEstimate) {
		t.Fatalf("expected ErrNoEstimate, got %v", err)
	}
}

func TestEstimateZeroBaseStaysQuoteless(t *testing.T) {
	table := fare.Table{
		Currency:  "$",
		Surcharge: 10,
		Entries: []fare.Entry{
			{Key: "promo", Label: "Promo", Base: 0},
			{Key: "economy", Label: "Economy", Base: 10},
		},
	}
	est := fare.MustNew(fare.WithTable(table))

	if _, ok := est.Estimate("promo"); ok {
		t.Fatal("zero base price must suppress the estimate")
	}
	if _, ok := est.Estimate("economy"); !ok {
		t.Fatal("positive base price should produce an estimate")
	}
}

func TestEstimateNormalizesKey(t *testing.T) {
	est := fare.MustNew()

	quote, ok := est.Estimate("  Economy ")
	if !ok {
		t.Fatal("expected case-insensitive lookup to succeed")
	}
	if quote.Service != fare.ServiceEconomy {
		t.Fatalf("expected normalized service key, got %q", quote.Service)
	}
}

func TestQuoteFormatting(t *testing.T) {
	quote := fare.Quote{Base: 10, Surcharge: 10, Total: 20, Currency: "$"}

	if got := quote.FormattedBase(); got != "$10" {
		t.Errorf("FormattedBase = %q, want %q", got, "$10")
	}
	if got := quote.FormattedTotal(); got != "$20" {
		t.Errorf("FormattedTotal = %q, want %q", got, "$20")
	}
}

func TestLoadFSYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"pricing.yaml": &fstest.MapFile{Data: []byte(`
currency: "€"
surcharge: 5
services:
  - key: economy
    label: Economy
    base: 12
  - key: van
    base: 30
`)},
	}

	table, err := fare.LoadFS(fsys, "pricing.yaml")
	if err != nil {
		t.Fatalf("load table: %v", err)
	}

	want := fare.Table{
		Currency:  "€",
		Surcharge: 5,
		Entries: []fare.Entry{
			{Key: "economy", Label: "Economy", Base: 12},
			{Key: "van", Label: "van", Base: 30},
		},
	}
	if diff := cmp.Diff(want, table); diff != "" {
		t.Fatalf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFSJSON(t *testing.T) {
	fsys := fstest.MapFS{
		"pricing.json": &fstest.MapFile{Data: []byte(`{
  "services": [
    {"key": "economy", "label": "Economy", "base": 10}
  ]
}`)},
	}

	table, err := fare.LoadFS(fsys, "pricing.json")
	if err != nil {
		t.Fatalf("load table: %v", err)
	}

	if table.Surcharge != fare.DefaultSurcharge {
		t.Fatalf("expected default surcharge %d, got %d", fare.DefaultSurcharge, table.Surcharge)
	}
	if table.Currency != fare.DefaultCurrency {
		t.Fatalf("expected default currency %q, got %q", fare.DefaultCurrency, table.Currency)
	}
}

func TestParseTableRejectsBadDocuments(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"empty document", ""},
		{"not a table", "{{{{"},
		{"missing base", `{"services":[{"key":"economy"}]}`},
		{"missing key", `{"services":[{"label":"Economy","base":10}]}`},
		{"negative base", `{"services":[{"key":"economy","base":-1}]}`},
		{"duplicate key", `{"services":[{"key":"economy","base":10},{"key":"Economy","base":12}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := fare.ParseTable([]byte(tc.data), "test"); err == nil {
				t.Fatal("expected parse error")
			}
		})
	}
}
