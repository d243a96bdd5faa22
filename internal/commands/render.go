package commands

import (
	"fmt"
	"strings"

	"torn_trade_values/internal/barter"

	"github.com/dustin/go-humanize"
)

func verdictLabel(v barter.Verdict) string {
	switch v {
	case barter.Win:
		return "✅ Win"
	case barter.Fair:
		return "⚖️ Fair"
	case barter.Lose:
		return "❌ Lose"
	default:
		return v.String()
	}
}

func formatValue(v int64) string {
	return humanize.Comma(v)
}

// RenderOutcome formats a trade result as a chat message.
func RenderOutcome(o barter.Outcome) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**Your side:** %s\n", formatValue(o.Mine.Total))
	fmt.Fprintf(&sb, "**Their side:** %s\n", formatValue(o.Theirs.Total))
	fmt.Fprintf(&sb, "**Difference:** %s (%s)\n", formatValue(o.Difference), barter.FormatPercent(o.PercentDifference))
	fmt.Fprintf(&sb, "**Result:** %s", verdictLabel(o.Verdict))

	if missing := o.Unknown(); len(missing) > 0 {
		sb.WriteString("\n\n**Missing values for:** ")
		sb.WriteString(strings.Join(missing, ", "))
	}
	return sb.String()
}

// RenderWindow formats a proximity window, one item per line, marking the target.
func RenderWindow(w barter.Window) string {
	var sb strings.Builder
	if target, ok := w.Target(); ok {
		fmt.Fprintf(&sb, "**Items valued near %s:**", target.Name)
	}
	for _, n := range w {
		sb.WriteString("\n")
		if n.IsTarget {
			fmt.Fprintf(&sb, "➡️ **%s** - %s", n.Name, formatValue(n.Value))
			continue
		}
		fmt.Fprintf(&sb, "• %s - %s", n.Name, formatValue(n.Value))
	}
	return sb.String()
}
