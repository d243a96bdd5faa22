package commands

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"torn_trade_values/internal/barter"
	"torn_trade_values/internal/values"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTable = values.StaticLoader{
	"dragon":       1200,
	"golden sword": 250,
	"phoenix":      4000,
	"gem":          10,
	"sword":        5,
	"5":            55,
}

func handle(t *testing.T, r *Router, msg string) string {
	t.Helper()
	reply, ok := r.Handle(context.Background(), msg)
	require.True(t, ok, "expected %q to be handled", msg)
	assert.NotEmpty(t, reply.RequestID)
	return reply.Text
}

func TestHandleIgnoresOtherMessages(t *testing.T) {
	r := NewRouter(testTable)

	for _, msg := range []string{"", "hello there", "!", "! t gem for sword", "!unknown thing", "?t gem for sword"} {
		_, ok := r.Handle(context.Background(), msg)
		assert.False(t, ok, "expected %q to be ignored", msg)
	}
}

func TestPing(t *testing.T) {
	r := NewRouter(nil)
	assert.Equal(t, "pong", handle(t, r, "!ping"))
	assert.Equal(t, "pong", handle(t, r, "  !PING  "))
}

func TestTrade(t *testing.T) {
	r := NewRouter(testTable)

	got := handle(t, r, "!t dragon, golden sword for phoenix")

	want := "**Your side:** 1,450\n" +
		"**Their side:** 4,000\n" +
		"**Difference:** 2,550 (+175.9%)\n" +
		"**Result:** ✅ Win"
	assert.Equal(t, want, got)
}

func TestTradeWithQuantitiesAndMissing(t *testing.T) {
	r := NewRouter(testTable)

	got := handle(t, r, "!trade 4 Gem, ruby FOR 2 sword, opal, ruby")

	want := "**Your side:** 40\n" +
		"**Their side:** 10\n" +
		"**Difference:** -30 (-75.0%)\n" +
		"**Result:** ❌ Lose\n" +
		"\n" +
		"**Missing values for:** opal, ruby"
	assert.Equal(t, want, got)
}

func TestTradeFair(t *testing.T) {
	r := NewRouter(testTable)

	got := handle(t, r, "!t 2 sword for gem")
	assert.Contains(t, got, "**Difference:** 0 (0.0%)")
	assert.Contains(t, got, "⚖️ Fair")
}

func TestTradeFormatErrors(t *testing.T) {
	r := NewRouter(testTable)
	usage := "Invalid format. Use `!t item1, item2 for item3, item4`"

	assert.Equal(t, usage, handle(t, r, "!t gem sword"))
	assert.Equal(t, usage, handle(t, r, "!t for sword"))
	assert.Equal(t, usage, handle(t, r, "!t"))
}

func TestTradeLoadFailure(t *testing.T) {
	broken := values.LoaderFunc(func(ctx context.Context) (barter.Table, error) {
		return nil, errors.New("disk on fire")
	})
	r := NewRouter(broken)

	assert.Equal(t, loadFailedReply, handle(t, r, "!t gem for sword"))
	assert.Equal(t, loadFailedReply, handle(t, NewRouter(nil), "!t gem for sword"))
}

func TestTableIsLoadedPerRequest(t *testing.T) {
	var loads atomic.Int32
	loader := values.LoaderFunc(func(ctx context.Context) (barter.Table, error) {
		loads.Add(1)
		return barter.Table{"gem": 10}, nil
	})
	r := NewRouter(loader)

	handle(t, r, "!t gem for gem")
	handle(t, r, "!value gem")
	handle(t, r, "!ping")

	assert.Equal(t, int32(2), loads.Load())
}

func TestNear(t *testing.T) {
	r := NewRouter(testTable)

	got := handle(t, r, "!near Golden Sword 1")

	want := "**Items valued near golden sword:**\n" +
		"• 5 - 55\n" +
		"➡️ **golden sword** - 250\n" +
		"• dragon - 1,200"
	assert.Equal(t, want, got)
}

func TestNearDefaultRadius(t *testing.T) {
	r := NewRouter(testTable, WithDefaultRadius(1))

	got := handle(t, r, "!near 5")
	want := "**Items valued near 5:**\n" +
		"• gem - 10\n" +
		"➡️ **5** - 55\n" +
		"• golden sword - 250"
	assert.Equal(t, want, got)
}

func TestNearErrors(t *testing.T) {
	r := NewRouter(testTable)

	assert.Equal(t, "Usage: `!near item [range]`", handle(t, r, "!near"))
	assert.Equal(t, "No value known for `zzz`.", handle(t, r, "!near ZZZ"))
	assert.Equal(t, "Range must be a whole number of 0 or more, got `-1`.", handle(t, r, "!near gem -1"))
	assert.Equal(t, "Range must be a whole number of 0 or more, got `2.5`.", handle(t, r, "!near gem 2.5"))
}

func TestValue(t *testing.T) {
	r := NewRouter(testTable, WithPrefix("$"))

	assert.Equal(t, "**phoenix:** 4,000", handle(t, r, "$value Phoenix"))
	assert.Equal(t, "**gem:** 10", handle(t, r, "$v gem"))
	assert.Equal(t, "No value known for `ruby`.", handle(t, r, "$value ruby"))
	assert.Equal(t, "Usage: `$value item`", handle(t, r, "$value"))

	_, ok := r.Handle(context.Background(), "!value gem")
	assert.False(t, ok)
}

func TestHelpMentionsPrefix(t *testing.T) {
	got := handle(t, NewRouter(nil, WithPrefix("?")), "?help")
	assert.Contains(t, got, "`?t item1, 2 item2 for item3`")
	assert.Contains(t, got, "`?near item [range]`")
}

func TestSplitRadius(t *testing.T) {
	tests := []struct {
		args, item, radius string
	}{
		{"gem", "gem", ""},
		{"golden sword 2", "golden sword", "2"},
		{"golden sword", "golden sword", ""},
		{"5", "5", ""},
		{"5 5", "5", "5"},
		{"gem -3", "gem", "-3"},
		{"", "", ""},
	}
	for _, tt := range tests {
		item, radius := splitRadius(tt.args)
		assert.Equal(t, tt.item, item, "item for %q", tt.args)
		assert.Equal(t, tt.radius, radius, "radius for %q", tt.args)
	}
}

func TestDispatch(t *testing.T) {
	r := NewRouter(testTable)

	reply, ok := r.Dispatch(context.Background(), "VALUE", "  dragon ")
	require.True(t, ok)
	assert.Equal(t, "value", reply.Command)
	assert.Equal(t, "**dragon:** 1,200", reply.Text)

	_, ok = r.Dispatch(context.Background(), "nope", "")
	assert.False(t, ok)
	assert.Equal(t, "!", r.Prefix())
}
