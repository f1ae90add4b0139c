package fare

import (
	"errors"
	"fmt"
	"strings"
)

// Service is a fare table key. Keys are matched case-insensitively after
// trimming so query-string and form values can be used directly.
type Service string

// Built-in service types.
const (
	ServiceEconomy  Service = "economy"
	ServiceComfort  Service = "comfort"
	ServiceXL       Service = "xl"
	ServicePremium  Service = "premium"
	ServiceDelivery Service = "delivery"
)

// DefaultSurcharge is the fixed amount added on top of every base price. It
// models an assumed average trip distance at a flat per-km rate rather than a
// real distance computation.
const DefaultSurcharge = 10

// DefaultCurrency is the symbol used when a table does not declare one.
const DefaultCurrency = "$"

// Entry is one priced service. A zero base price keeps the service listed
// while suppressing estimates for it.
type Entry struct {
	Key   Service `json:"key" yaml:"key"`
	Label string  `json:"label" yaml:"label"`
	Base  int     `json:"base" yaml:"base"`
}

// Table is the static pricing source. Entry order is meaningful: it drives
// the order of service options offered to users.
type Table struct {
	Currency  string  `json:"currency" yaml:"currency"`
	Surcharge int     `json:"surcharge" yaml:"surcharge"`
	Entries   []Entry `json:"services" yaml:"services"`
}

// DefaultTable returns the built-in pricing. Only the economy base and the
// surcharge are contractual; the remaining prices are product defaults.
func DefaultTable() Table {
	return Table{
		Currency:  DefaultCurrency,
		Surcharge: DefaultSurcharge,
		Entries: []Entry{
			{Key: ServiceEconomy, Label: "Economy", Base: 10},
			{Key: ServiceComfort, Label: "Comfort", Base: 14},
			{Key: ServiceXL, Label: "XL", Base: 18},
			{Key: ServicePremium, Label: "Premium", Base: 24},
			{Key: ServiceDelivery, Label: "Delivery", Base: 12},
		},
	}
}

// Validate reports the first structural problem in the table.
func (t Table) Validate() error {
	if t.Surcharge < 0 {
		return errors.New("fare: surcharge must not be negative")
	}
	if len(t.Entries) == 0 {
		return errors.New("fare: table declares no services")
	}
	seen := make(map[Service]struct{}, len(t.Entries))
	for i, entry := range t.Entries {
		key := normalizeKey(string(entry.Key))
		if key == "" {
			return fmt.Errorf("fare: service %d: key is required", i)
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("fare: service %d: duplicate key %q", i, key)
		}
		seen[key] = struct{}{}
		if entry.Base < 0 {
			return fmt.Errorf("fare: service %q: base price must not be negative", key)
		}
	}
	return nil
}

// Lookup finds the entry for a key. Matching normalises case and whitespace.
func (t Table) Lookup(key string) (Entry, bool) {
	normalized := normalizeKey(key)
	if normalized == "" {
		return Entry{}, false
	}
	for _, entry := range t.Entries {
		if normalizeKey(string(entry.Key)) == normalized {
			return entry, true
		}
	}
	return Entry{}, false
}

// Keys returns the service keys in table order.
func (t Table) Keys() []Service {
	keys := make([]Service, 0, len(t.Entries))
	for _, entry := range t.Entries {
		keys = append(keys, entry.Key)
	}
	return keys
}

// Label returns the display label for a key, falling back to the key itself.
func (t Table) Label(key string) string {
	if entry, ok := t.Lookup(key); ok && entry.Label != "" {
		return entry.Label
	}
	return key
}

func normalizeKey(key string) Service {
	return Service(strings.ToLower(strings.TrimSpace(key)))
}

// Quote is a computed estimate: Total is always Base plus Surcharge.
type Quote struct {
	Service   Service `json:"service"`
	Label     string  `json:"label"`
	Base      int     `json:"base"`
	Surcharge int     `json:"surcharge"`
	Total     int     `json:"total"`
	Currency  string  `json:"currency"`
}

// FormattedBase renders the base price with the table currency.
func (q Quote) FormattedBase() string {
	return FormatAmount(q.Currency, q.Base)
}

// FormattedSurcharge renders the surcharge with the table currency.
func (q Quote) FormattedSurcharge() string {
	return FormatAmount(q.Currency, q.Surcharge)
}

// FormattedTotal renders the total with the table currency.
func (q Quote) FormattedTotal() string {
	return FormatAmount(q.Currency, q.Total)
}

// FormatAmount renders a whole-unit amount in the single supported locale,
// e.g. "$10".
func FormatAmount(currency string, amount int) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	return fmt.Sprintf("%s%d", currency, amount)
}
