// Package validate implements the field-level checks flows run against
// submitted values. It has two layers: standalone predicates (Email, Phone,
// FullName, Date) that mirror the format rules users see in the browser, and
// a Rules engine compiled from a model.Field that combines presence, type
// coercion, format, enum membership, and schema constraints into per-field
// messages. Predicates are pure string functions so they stay testable
// without any form plumbing around them.
package validate
