package values

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"torn_trade_values/internal/barter"
	"torn_trade_values/internal/retry"
	"torn_trade_values/internal/torn"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSheet struct {
	rows [][]interface{}
	err  error
	got  [2]string
}

func (f *fakeSheet) ReadSheet(ctx context.Context, spreadsheetID, range_ string) ([][]interface{}, error) {
	f.got = [2]string{spreadsheetID, range_}
	return f.rows, f.err
}

type fakeItems map[string]torn.Item

func (f fakeItems) GetItems(ctx context.Context) (map[string]torn.Item, error) {
	return f, nil
}

func TestSheetsLoader(t *testing.T) {
	reader := &fakeSheet{rows: [][]interface{}{
		{"Item", "Value"},
		{"Gem", float64(10)},
		{"Golden Sword", "250"},
		{"lonely"},
		{"", 5},
		{"Rumour", "n/a"},
	}}

	table, err := SheetsLoader{Reader: reader, SpreadsheetID: "abc", Range: "Values!A1:B"}.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, [2]string{"abc", "Values!A1:B"}, reader.got)
	assert.Equal(t, barter.Table{"gem": 10, "golden sword": 250}, table)
}

func TestSheetsLoaderError(t *testing.T) {
	boom := errors.New("quota exceeded")
	_, err := SheetsLoader{Reader: &fakeSheet{err: boom}}.Load(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestTornLoader(t *testing.T) {
	source := fakeItems{
		"1258": {Name: "Binoculars", MarketValue: 7450.6},
		"206":  {Name: "Xanax", MarketValue: 830000},
		"1":    {Name: "Hammer", MarketValue: 0},
		"2":    {Name: "", MarketValue: 100},
	}

	table, err := TornLoader{Source: source}.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, barter.Table{"binoculars": 7451, "xanax": 830000}, table)
}

func TestMultiLoaderLaterSourcesOverride(t *testing.T) {
	loader := MultiLoader{Loaders: []Loader{
		StaticLoader{"gem": 10, "sword": 5},
		StaticLoader{"sword": 7, "phoenix": 40},
	}}

	table, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, barter.Table{"gem": 10, "sword": 7, "phoenix": 40}, table)
}

func TestMultiLoaderFailsWhenAnySourceFails(t *testing.T) {
	boom := errors.New("boom")
	loader := MultiLoader{Loaders: []Loader{
		StaticLoader{"gem": 10},
		LoaderFunc(func(ctx context.Context) (barter.Table, error) { return nil, boom }),
	}}

	table, err := loader.Load(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, table)
}

func TestRetryLoader(t *testing.T) {
	var calls atomic.Int32
	flaky := LoaderFunc(func(ctx context.Context) (barter.Table, error) {
		if calls.Add(1) < 3 {
			return nil, errors.New("database is locked")
		}
		return barter.Table{"gem": 10}, nil
	})

	loader := RetryLoader{
		Name:   "flaky",
		Loader: flaky,
		Config: retry.Config{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Timeout: time.Second},
	}

	table, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, barter.Table{"gem": 10}, table)
	assert.Equal(t, int32(3), calls.Load())
}

func TestRetryLoaderGivesUp(t *testing.T) {
	loader := RetryLoader{
		Name:   "broken",
		Loader: LoaderFunc(func(ctx context.Context) (barter.Table, error) { return nil, errors.New("nope") }),
		Config: retry.Config{MaxRetries: 1, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond, Timeout: time.Second},
	}

	_, err := loader.Load(context.Background())
	assert.ErrorContains(t, err, "broken")
}
