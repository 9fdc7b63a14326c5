// Package phone normalizes business phone numbers.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Parse returns the E.164 form of input. National numbers are read against
// region (ISO 3166-1 alpha-2, any case). ok is false for blank, unparseable
// or invalid numbers.
func Parse(input, region string) (e164 string, ok bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", false
	}

	number, err := phonenumbers.Parse(trimmed, strings.ToUpper(strings.TrimSpace(region)))
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return "", false
	}
	return phonenumbers.Format(number, phonenumbers.E164), true
}

// NormalizeE164 is Parse that falls back to the trimmed input, so a number
// the provider formatted oddly is kept rather than dropped.
func NormalizeE164(input, region string) string {
	if e164, ok := Parse(input, region); ok {
		return e164
	}
	return strings.TrimSpace(input)
}
