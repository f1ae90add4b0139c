package validate

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// DateLayout is the calendar-date format flows accept, matching the wire
// format of an HTML date input.
const DateLayout = "2006-01-02"

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9()\-\s]*$`)
	namePattern  = regexp.MustCompile(`^[A-Za-z\s'-]+$`)
)

// Email reports whether s looks like an address: a single "@" with at least
// one "." somewhere after it and no whitespace. Deliberately permissive —
// no TLD or length checks.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// Phone reports whether s is made of digits, spaces, hyphens, parentheses,
// and an optional leading plus, with a total length of at least 10. The
// length counts every allowed character, not just digits, so formatted
// numbers like "555-123-4567" pass at face value.
func Phone(s string) bool {
	if !phonePattern.MatchString(s) {
		return false
	}
	return utf8.RuneCountInString(s) >= 10
}

// FullName reports whether s is a plausible person name: at least 3
// characters after trimming, and nothing but letters, spaces, apostrophes,
// and hyphens anywhere in the raw string.
func FullName(s string) bool {
	if !namePattern.MatchString(s) {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= 3
}

// Date reports whether s names today or a later calendar day. Time-of-day is
// zeroed on both sides of the comparison, so any moment of the current day
// still validates.
func Date(s string) bool {
	return DateAt(s, time.Now())
}

// DateAt is Date with an explicit reference instant, which keeps calendar
// boundaries deterministic in tests.
func DateAt(s string, now time.Time) bool {
	parsed, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return false
	}
	candidate := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !candidate.Before(today)
}
