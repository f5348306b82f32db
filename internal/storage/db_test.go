package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpen_InMemoryCreatesKVTable(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.ExecContext(ctx, `INSERT INTO kv (key, value) VALUES ('IsFirstLaunch', 'true')`)
	require.NoError(t, err)

	var v string
	require.NoError(t, db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = 'IsFirstLaunch'`).Scan(&v))
	require.Equal(t, "true", v)
}

func TestOpen_FileIsReusable(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "vault.db")

	db, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO kv (key, value) VALUES ('UsePIN', 'true')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// second open must not re-run the create migration destructively
	db, err = Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM kv`).Scan(&n))
	require.Equal(t, 1, n)
}

func TestOpen_BadPathFails(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "missing", "dir", "vault.db"))
	require.Error(t, err)
}
