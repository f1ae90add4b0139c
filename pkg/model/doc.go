// Package model defines the typed form model shared by validation and
// rendering. Builders reside in internal/model but return the types defined
// here. A FormModel is deliberately flat: every field is a primitive input
// (string, integer, number, boolean) identified by name, because flows
// validate one level of submitted values. Validation rules expose canonical
// identifiers (min/max, minLength/maxLength, pattern) with string parameters
// so renderers can map numeric bounds and textual constraints onto HTML
// attributes while the rule engine enforces them at submit time. Field.Format
// doubles as the input hint (email, tel, date, time, textarea) and selects
// the matching format validator.
package model
