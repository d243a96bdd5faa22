package barter

import (
	"fmt"
	"sort"
	"strings"
)

const tradeSeparator = " for "

// Verdict is the fairness of a trade from the asking player's side.
type Verdict int

const (
	Lose Verdict = iota - 1
	Fair
	Win
)

func (v Verdict) String() string {
	switch v {
	case Win:
		return "Win"
	case Fair:
		return "Fair"
	case Lose:
		return "Lose"
	default:
		return fmt.Sprintf("Verdict(%d)", int(v))
	}
}

// Outcome is a fully priced and classified trade.
type Outcome struct {
	Mine              Valuation
	Theirs            Valuation
	Difference        int64
	PercentDifference float64
	Verdict           Verdict
}

// Unknown merges the unknown names of both sides, sorted and de-duplicated.
func (o Outcome) Unknown() []string {
	seen := make(map[string]struct{}, len(o.Mine.Unknown)+len(o.Theirs.Unknown))
	var merged []string
	for _, names := range [][]string{o.Mine.Unknown, o.Theirs.Unknown} {
		for _, name := range names {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			merged = append(merged, name)
		}
	}
	sort.Strings(merged)
	return merged
}

// ParseTrade splits "mine for theirs" at the first case-insensitive " for "
// and parses both sides as item lists.
func ParseTrade(raw string) ([]ItemToken, []ItemToken, error) {
	idx := indexFold(raw, tradeSeparator)
	if idx < 0 {
		return nil, nil, &FormatError{Kind: MissingSeparator, Input: raw}
	}

	left := strings.TrimSpace(raw[:idx])
	right := strings.TrimSpace(raw[idx+len(tradeSeparator):])
	if left == "" || right == "" {
		return nil, nil, &FormatError{Kind: EmptySide, Input: raw}
	}

	mine := ParseList(left)
	theirs := ParseList(right)
	if len(mine) == 0 || len(theirs) == 0 {
		return nil, nil, &FormatError{Kind: EmptySide, Input: raw}
	}
	return mine, theirs, nil
}

// Classify compares both totals. The percentage is relative to mineTotal and
// is 0 whenever mineTotal is not positive.
func Classify(mineTotal, theirsTotal int64) Outcome {
	diff := theirsTotal - mineTotal

	var pct float64
	if mineTotal > 0 {
		pct = float64(diff) / float64(mineTotal) * 100
	}

	verdict := Fair
	switch {
	case diff > 0:
		verdict = Win
	case diff < 0:
		verdict = Lose
	}

	return Outcome{
		Mine:              Valuation{Total: mineTotal},
		Theirs:            Valuation{Total: theirsTotal},
		Difference:        diff,
		PercentDifference: pct,
		Verdict:           verdict,
	}
}

// EvaluateTrade parses raw, prices both sides against table and classifies the result.
func EvaluateTrade(raw string, table Table) (Outcome, error) {
	if table == nil {
		return Outcome{}, ErrNoTable
	}
	mineTokens, theirsTokens, err := ParseTrade(raw)
	if err != nil {
		return Outcome{}, err
	}

	mine := Evaluate(mineTokens, table)
	theirs := Evaluate(theirsTokens, table)

	outcome := Classify(mine.Total, theirs.Total)
	outcome.Mine = mine
	outcome.Theirs = theirs
	return outcome, nil
}

// FormatPercent renders p with one decimal; only strictly positive values get a "+".
func FormatPercent(p float64) string {
	if p > 0 {
		return fmt.Sprintf("+%.1f%%", p)
	}
	return fmt.Sprintf("%.1f%%", p)
}

// indexFold is strings.Index with ASCII case folding on sep, leaving byte
// offsets in s intact.
func indexFold(s, sep string) int {
	n := len(sep)
	for i := 0; i+n <= len(s); i++ {
		if strings.EqualFold(s[i:i+n], sep) {
			return i
		}
	}
	return -1
}
