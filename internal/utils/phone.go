package utils

import (
	"regexp"
	"strings"
)

var phonePattern = regexp.MustCompile(`^\+?[\d\s-]{10,15}$`)

// IsValidPhone accepts the raw form as entered by the user.
func IsValidPhone(raw string) bool {
	return phonePattern.MatchString(strings.TrimSpace(raw))
}

// NormalizePhone strips spaces and dashes so the same number always
// compares equal regardless of how it was typed. A leading "+" survives.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(raw) {
		if r == '+' && i == 0 {
			b.WriteRune(r)
			continue
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeEmail is the uniqueness key for accounts.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
