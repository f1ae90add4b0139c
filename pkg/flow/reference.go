package flow

import (
	"math/rand"
	"strings"
)

// referenceAlphabet avoids lowercase so codes read unambiguously over the
// phone and in confirmation emails.
const referenceAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ReferenceGenerator returns a generator producing pseudo-random confirmation
// codes like "BK-3F8K2Q": the prefix followed by length characters drawn from
// digits and uppercase letters. Codes are identifiers for the confirmation
// screen, not secrets.
func ReferenceGenerator(prefix string, length int) func() string {
	if length <= 0 {
		length = 6
	}
	return func() string {
		var b strings.Builder
		b.Grow(len(prefix) + length)
		b.WriteString(prefix)
		for i := 0; i < length; i++ {
			b.WriteByte(referenceAlphabet[rand.Intn(len(referenceAlphabet))])
		}
		return b.String()
	}
}
