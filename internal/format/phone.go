// Package format holds the pure display/storage formatting helpers shared by
// the RSVP workflow, the admin views, and the notification emails.
package format

import (
	"fmt"
	"strings"
	"unicode"
)

// digits strips every non-digit rune from s.
func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CanonicalPhone returns the digits-only storage form of a phone number.
// Formatting is applied at render time only, never persisted.
func CanonicalPhone(raw string) string {
	return digits(raw)
}

// PhoneNumber formats a phone number for display. Ten digits become
// (AAA) BBB-CCCC; eleven digits with a leading 1 drop the country code first.
// Anything else is returned unchanged so malformed or international numbers
// pass through for manual review.
func PhoneNumber(raw string) string {
	if raw == "" {
		return ""
	}

	cleaned := digits(raw)

	switch {
	case len(cleaned) == 10:
		return fmt.Sprintf("(%s) %s-%s", cleaned[0:3], cleaned[3:6], cleaned[6:])
	case len(cleaned) == 11 && cleaned[0] == '1':
		return fmt.Sprintf("(%s) %s-%s", cleaned[1:4], cleaned[4:7], cleaned[7:])
	}

	return raw
}
