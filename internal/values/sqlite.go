package values

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"torn_trade_values/internal/barter"

	_ "modernc.org/sqlite"
)

const DefaultSQLiteQuery = "SELECT name, value FROM item_values"

// SQLiteLoader reads name/value rows from a SQLite database.
type SQLiteLoader struct {
	Path  string
	Query string // must select exactly two columns: name, value
}

func (s SQLiteLoader) Load(ctx context.Context) (barter.Table, error) {
	// sql.Open would happily create an empty database for a missing path
	if _, err := os.Stat(s.Path); err != nil {
		return nil, fmt.Errorf("failed to open values database: %w", err)
	}

	db, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open values database: %w", err)
	}
	defer db.Close()

	query := s.Query
	if query == "" {
		query = DefaultSQLiteQuery
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query values: %w", err)
	}
	defer rows.Close()

	entries := map[string]any{}
	for rows.Next() {
		var name string
		var value any
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("failed to scan value row: %w", err)
		}
		entries[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read value rows: %w", err)
	}

	table, skipped := BuildTable(entries)
	logLoaded(s.Path, table, skipped)
	return table, nil
}
