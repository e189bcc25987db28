// Package code implements the verification code scheme: a one-letter
// prefix, a five-digit index and a three-hex-char checksum derived
// from the index plus a shared salt, e.g. T00010-5E7.
package code

import (
	"regexp"
	"strconv"
	"strings"
)

// MaxIndex is the largest numeric index a code can carry.
const MaxIndex = 99999

var codeRegex = regexp.MustCompile(`(?i)^[A-Z][0-9]{5}-[0-9A-F]{3}$`)

// Normalize canonicalizes raw user input: trimmed, uppercased.
func Normalize(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// MatchesFormat reports whether s has the exact code shape:
// one letter, five digits, a dash, three hex chars.
func MatchesFormat(s string) bool {
	return codeRegex.MatchString(s)
}

// Checksum derives the checksum for a code index. The rolling hash has
// to stay bit-compatible with the JS and Python generators that issued
// existing codes: a 32-bit signed accumulator with wraparound
// (h = h*31 + codepoint), abs of the final value formatted as lowercase
// hex, truncated to 3 chars, uppercased. abs is taken on the widened
// value so that abs(-2^31) is 2^31 ("80000000"), not -2^31.
func Checksum(payload, salt string) string {
	var h int32
	for _, r := range payload + salt {
		h = h<<5 - h + int32(r)
	}

	v := int64(h)
	if v < 0 {
		v = -v
	}

	hex := strconv.FormatInt(v, 16)
	if len(hex) > 3 {
		hex = hex[:3]
	}
	return strings.ToUpper(hex)
}

// ExtractIndex returns the index part (prefix + 5 digits) of a code.
// The second return is false when the code fails format validation.
func ExtractIndex(s string) (string, bool) {
	s = Normalize(s)
	if !MatchesFormat(s) {
		return "", false
	}
	index, _, _ := strings.Cut(s, "-")
	return index, true
}
