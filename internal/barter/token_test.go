package barter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "gem", Normalize("  Gem "))
	assert.Equal(t, "fire  gem", Normalize("\tFIRE  Gem\n"))
	assert.Equal(t, "", Normalize("   "))

	for _, in := range []string{"  Gem ", "Golden Sword", "", "ÄPFEL "} {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "Normalize should be idempotent for %q", in)
	}
}

func TestParseToken(t *testing.T) {
	tests := []struct {
		raw  string
		want ItemToken
	}{
		{"3 fire gems", ItemToken{Name: "fire gems", Quantity: 3}},
		{"gem", ItemToken{Name: "gem", Quantity: 1}},
		{"5", ItemToken{Name: "5", Quantity: 1}},
		{"  2   Golden   Sword ", ItemToken{Name: "golden sword", Quantity: 2}},
		{"Golden   Sword", ItemToken{Name: "golden   sword", Quantity: 1}},
		{"x2 gem", ItemToken{Name: "x2 gem", Quantity: 1}},
		{"2x gem", ItemToken{Name: "2x gem", Quantity: 1}},
		{"-2 gem", ItemToken{Name: "-2 gem", Quantity: 1}},
		{"0 gem", ItemToken{Name: "0 gem", Quantity: 1}},
		{"99999999999999999999999 gem", ItemToken{Name: "99999999999999999999999 gem", Quantity: 1}},
		{"007 agents", ItemToken{Name: "agents", Quantity: 7}},
		{"10 5", ItemToken{Name: "5", Quantity: 10}},
		{"", ItemToken{}},
		{"   ", ItemToken{}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseToken(tt.raw))
		})
	}
}

func TestParseTokenEmptySentinel(t *testing.T) {
	tok := ParseToken(" \t ")
	assert.True(t, tok.IsEmpty())
	assert.False(t, ParseToken("gem").IsEmpty())
}

func TestParseList(t *testing.T) {
	assert.Equal(t,
		[]ItemToken{{Name: "gem", Quantity: 1}, {Name: "swords", Quantity: 2}},
		ParseList("gem, 2 swords, "),
	)
	assert.Equal(t,
		[]ItemToken{{Name: "dragon", Quantity: 1}, {Name: "golden sword", Quantity: 1}},
		ParseList("Dragon,,  ,Golden Sword"),
	)
	assert.Empty(t, ParseList(""))
	assert.Empty(t, ParseList(" , ,"))
}
