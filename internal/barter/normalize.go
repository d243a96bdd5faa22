package barter

import "strings"

// Normalize turns free text into a canonical item name: trimmed and lower-cased.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
