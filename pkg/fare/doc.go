// Package fare computes the price feedback shown after a successful booking
// validation. Prices come from a static table keyed by service type; an
// estimate is the base price plus a fixed booking surcharge that stands in
// for real distance pricing. Unknown services and zero-priced entries yield
// no estimate at all, which callers translate into a hidden price panel.
// Tables can be replaced wholesale from YAML or JSON documents.
package fare
