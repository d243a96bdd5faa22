package values

import (
	"context"
	"fmt"
	"math"
	"strings"

	"torn_trade_values/internal/barter"
	"torn_trade_values/internal/torn"

	"github.com/rs/zerolog/log"
)

// SheetReader is the part of sheets.Client the loader needs.
type SheetReader interface {
	ReadSheet(ctx context.Context, spreadsheetID, range_ string) ([][]interface{}, error)
}

// SheetsLoader reads two-column (name, value) rows from a spreadsheet range.
// Rows with a blank name or a non-integer value, such as a header row, are skipped.
type SheetsLoader struct {
	Reader        SheetReader
	SpreadsheetID string
	Range         string
}

func (s SheetsLoader) Load(ctx context.Context) (barter.Table, error) {
	rows, err := s.Reader.ReadSheet(ctx, s.SpreadsheetID, s.Range)
	if err != nil {
		return nil, err
	}

	entries := make(map[string]any, len(rows))
	for i, row := range rows {
		if len(row) < 2 || row[0] == nil {
			log.Debug().Int("row", i+1).Int("columns", len(row)).Msg("Skipping row with insufficient columns")
			continue
		}
		name := strings.TrimSpace(fmt.Sprintf("%v", row[0]))
		if name == "" {
			continue
		}
		entries[name] = row[1]
	}

	table, skipped := BuildTable(entries)
	logLoaded("sheets:"+s.Range, table, skipped)
	return table, nil
}

// ItemSource is the part of torn.Client the loader needs.
type ItemSource interface {
	GetItems(ctx context.Context) (map[string]torn.Item, error)
}

// TornLoader prices every item at its rounded Torn market value.
// Items without a market value (untradeable or unlisted) are left out.
type TornLoader struct {
	Source ItemSource
}

func (t TornLoader) Load(ctx context.Context) (barter.Table, error) {
	items, err := t.Source.GetItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get torn items: %w", err)
	}

	entries := make(map[string]any, len(items))
	for id, item := range items {
		if item.Name == "" || item.MarketValue <= 0 {
			continue
		}
		if _, dup := entries[item.Name]; dup {
			log.Debug().Str("item_id", id).Str("name", item.Name).Msg("Duplicate Torn item name")
		}
		entries[item.Name] = math.Round(item.MarketValue)
	}

	table, skipped := BuildTable(entries)
	logLoaded("torn", table, skipped)
	return table, nil
}
