package barter

import (
	"strconv"
	"strings"
)

// ItemToken is one parsed "[qty] name" segment of an item list.
type ItemToken struct {
	Name     string
	Quantity int
}

// IsEmpty reports whether the token is the sentinel produced by a blank segment.
func (t ItemToken) IsEmpty() bool {
	return t.Quantity == 0
}

// ParseToken parses a single segment such as "3 fire gems" or "gem".
// A blank segment yields the empty sentinel (quantity 0).
func ParseToken(raw string) ItemToken {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ItemToken{}
	}

	pieces := strings.Fields(trimmed)
	if len(pieces) >= 2 && isDigits(pieces[0]) {
		// zero or out-of-range quantities fall through to the literal name
		if qty, err := strconv.Atoi(pieces[0]); err == nil && qty > 0 {
			return ItemToken{
				Name:     Normalize(strings.Join(pieces[1:], " ")),
				Quantity: qty,
			}
		}
	}

	return ItemToken{Name: Normalize(trimmed), Quantity: 1}
}

// ParseList splits a comma-separated item list, dropping blank segments.
func ParseList(raw string) []ItemToken {
	var tokens []ItemToken
	for _, segment := range strings.Split(raw, ",") {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		tokens = append(tokens, ParseToken(segment))
	}
	return tokens
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
