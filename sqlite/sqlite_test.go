package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/cfpwatch/sqlite"
	"github.com/stretchr/testify/require"
)

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates schema on first open", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		ctx := context.Background()

		var count int
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM snapshots").Scan(&count)
		require.NoError(t, err)
		require.Equal(t, 0, count)
	})

	t.Run("records the schema version", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		require.NoError(t, db.Open())
		defer db.Close()

		v, err := db.Version(context.Background())
		require.NoError(t, err)
		require.Equal(t, 1, v)
	})

	t.Run("refuses a database from a newer binary", func(t *testing.T) {
		t.Parallel()

		dbPath := t.TempDir() + "/future.db"
		db := sqlite.NewDB(dbPath)
		require.NoError(t, db.Open())
		_, err := db.ExecContext(context.Background(), "PRAGMA user_version = 99")
		require.NoError(t, err)
		require.NoError(t, db.Close())

		db = sqlite.NewDB(dbPath)
		err = db.Open()
		require.ErrorContains(t, err, "newer than this binary supports")
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB("/nonexistent/path/db.sqlite")
		err := db.Open()
		require.Error(t, err)
	})

	t.Run("reopening keeps existing data", func(t *testing.T) {
		t.Parallel()

		dbPath := t.TempDir() + "/test.db"
		ctx := context.Background()

		db := sqlite.NewDB(dbPath)
		require.NoError(t, db.Open())
		_, err := db.ExecContext(ctx, `INSERT INTO snapshots (id, venue, url, fetched_at) VALUES ('1', 'v', 'https://x.org', '2026-01-01T00:00:00Z')`)
		require.NoError(t, err)
		require.NoError(t, db.Close())

		db = sqlite.NewDB(dbPath)
		require.NoError(t, db.Open())
		defer db.Close()

		var count int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM snapshots").Scan(&count))
		require.Equal(t, 1, count)
	})

	t.Run("enables WAL mode for file-based databases", func(t *testing.T) {
		t.Parallel()

		dbPath := t.TempDir() + "/test.db"
		db := sqlite.NewDB(dbPath)
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		ctx := context.Background()
		var journalMode string
		err = db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&journalMode)
		require.NoError(t, err)
		require.Equal(t, "wal", journalMode)
	})
}
