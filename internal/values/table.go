// Package values loads the item value table from the configured sources.
package values

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"torn_trade_values/internal/barter"

	"github.com/rs/zerolog/log"
)

// Loader produces a fresh value table. Implementations may do I/O.
type Loader interface {
	Load(ctx context.Context) (barter.Table, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context) (barter.Table, error)

func (f LoaderFunc) Load(ctx context.Context) (barter.Table, error) {
	return f(ctx)
}

// StaticLoader always returns a fresh table built from the same entries,
// canonicalized the same way as every other source.
type StaticLoader barter.Table

func (s StaticLoader) Load(ctx context.Context) (barter.Table, error) {
	raw := make(map[string]any, len(s))
	for name, value := range s {
		raw[name] = value
	}
	table, _ := BuildTable(raw)
	return table, nil
}

// BuildTable canonicalizes raw name/value pairs into a table. Entries whose
// value is not an integer are left out and their raw names returned as skipped.
// When two raw names normalize to the same key, the one sorting last wins.
func BuildTable(raw map[string]any) (barter.Table, []string) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	table := make(barter.Table, len(raw))
	var skipped []string
	for _, k := range keys {
		name := barter.Normalize(k)
		if name == "" {
			skipped = append(skipped, k)
			continue
		}
		value, ok := toInt64(raw[k])
		if !ok {
			skipped = append(skipped, k)
			continue
		}
		if _, dup := table[name]; dup {
			log.Debug().Str("item", name).Str("raw_name", k).Msg("Duplicate item after normalization; overriding")
		}
		table[name] = value
	}
	return table, skipped
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float64:
		return floatToInt64(n)
	case float32:
		return floatToInt64(float64(n))
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt64(f)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	case []byte:
		i, err := strconv.ParseInt(strings.TrimSpace(string(n)), 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func logLoaded(source string, table barter.Table, skipped []string) {
	event := log.Debug().
		Str("source", source).
		Int("items", len(table)).
		Int("skipped", len(skipped))
	if len(skipped) > 0 {
		event = event.Strs("skipped_names", skipped)
	}
	event.Msg("Loaded value table")
}
