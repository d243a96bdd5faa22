package values

import (
	"context"
	"database/sql"
	"io/fs"
	"path/filepath"
	"testing"

	"torn_trade_values/internal/barter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValuesDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "values.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE item_values (name TEXT PRIMARY KEY, value)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO item_values (name, value) VALUES
		('Dragon', 1200),
		('Golden Sword', '250'),
		('phoenix', 4000.0),
		('rumour', 1.5),
		('empty', NULL)`)
	require.NoError(t, err)
	return path
}

func TestSQLiteLoader(t *testing.T) {
	path := newValuesDB(t)

	table, err := SQLiteLoader{Path: path}.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, barter.Table{"dragon": 1200, "golden sword": 250, "phoenix": 4000}, table)
}

func TestSQLiteLoaderCustomQuery(t *testing.T) {
	path := newValuesDB(t)

	table, err := SQLiteLoader{
		Path:  path,
		Query: "SELECT name, value FROM item_values WHERE name = 'Dragon'",
	}.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, barter.Table{"dragon": 1200}, table)
}

func TestSQLiteLoaderErrors(t *testing.T) {
	_, err := SQLiteLoader{Path: filepath.Join(t.TempDir(), "nope.db")}.Load(context.Background())
	assert.ErrorIs(t, err, fs.ErrNotExist)

	path := newValuesDB(t)
	_, err = SQLiteLoader{Path: path, Query: "SELECT name FROM missing_table"}.Load(context.Background())
	assert.Error(t, err)
}
