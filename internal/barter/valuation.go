package barter

import "sort"

// Table maps a canonical item name to its point value.
type Table map[string]int64

// Lookup normalizes name and returns its value.
func (t Table) Lookup(name string) (int64, bool) {
	v, ok := t[Normalize(name)]
	return v, ok
}

// Valuation is the priced total of one side of a trade.
type Valuation struct {
	Total   int64
	Unknown []string // sorted, no duplicates
}

// Evaluate prices tokens against table. Names missing from the table
// contribute nothing to the total and are reported in Unknown. Empty tokens
// are ignored.
func Evaluate(tokens []ItemToken, table Table) Valuation {
	var total int64
	seen := make(map[string]struct{})
	for _, tok := range tokens {
		if tok.IsEmpty() {
			continue
		}
		if value, ok := table[tok.Name]; ok {
			total += value * int64(tok.Quantity)
			continue
		}
		seen[tok.Name] = struct{}{}
	}

	unknown := make([]string, 0, len(seen))
	for name := range seen {
		unknown = append(unknown, name)
	}
	sort.Strings(unknown)

	return Valuation{Total: total, Unknown: unknown}
}
