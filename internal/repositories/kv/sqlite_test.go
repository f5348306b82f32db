package kv

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE kv (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "UserPINCode", []byte("argon2id$x")))

	v, err := r.Get(ctx, "UserPINCode")
	require.NoError(t, err)
	require.Equal(t, []byte("argon2id$x"), v)
}

func TestGet_MissingKeyReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "SavedContracts")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSet_OverwritesValue(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", []byte("old")))
	require.NoError(t, r.Set(ctx, "k", []byte("new")))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestSet_NilValueStoredAsEmpty(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "UserPINCode", nil))

	v, err := r.Get(ctx, "UserPINCode")
	require.NoError(t, err)
	require.NotNil(t, v)
	require.Empty(t, v)
}

func TestList_ReturnsAllPairs(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", []byte{0xAA}))
	require.NoError(t, r.Set(ctx, "b", []byte{0xBB, 0xCC}))

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, m, 2)
	assert.Equal(t, []byte{0xAA}, m["a"])
	assert.Equal(t, []byte{0xBB, 0xCC}, m["b"])
}

func TestDelete_RemovesKeyAndIsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "x", []byte{0x01}))
	require.NoError(t, r.Delete(ctx, "x"))

	v, err := r.Get(ctx, "x")
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, r.Delete(ctx, "x"))
}

func TestClear_RemovesAllKeys(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", []byte{1}))
	require.NoError(t, r.Set(ctx, "b", []byte{2}))
	require.NoError(t, r.Clear(ctx))

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestBoolHelpers(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	_, ok, err := GetBool(ctx, r, "UsePIN")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, SetBool(ctx, r, "UsePIN", true))
	v, ok, err := GetBool(ctx, r, "UsePIN")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, v)

	require.NoError(t, r.Set(ctx, "UsePIN", []byte("maybe")))
	_, _, err = GetBool(ctx, r, "UsePIN")
	require.Error(t, err)
}

func TestErrorsAreWrappedWithKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	boom := errors.New("disk I/O error")
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT value FROM kv`).WithArgs("k").WillReturnError(boom)
	_, err = r.Get(ctx, "k")
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "failed to get kv[k]")

	mock.ExpectExec(`INSERT INTO kv`).WithArgs("k", []byte("v")).WillReturnError(boom)
	err = r.Set(ctx, "k", []byte("v"))
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "failed to set kv[k]")

	mock.ExpectExec(`DELETE FROM kv WHERE key`).WithArgs("k").WillReturnError(boom)
	err = r.Delete(ctx, "k")
	require.Contains(t, err.Error(), "failed to delete kv[k]")

	mock.ExpectExec(`DELETE FROM kv`).WillReturnError(boom)
	err = r.Clear(ctx)
	require.Contains(t, err.Error(), "failed to clear kv")

	mock.ExpectQuery(`SELECT key, value FROM kv`).WillReturnError(boom)
	_, err = r.List(ctx)
	require.Contains(t, err.Error(), "failed to list kv")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_ScanErrorIsWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows := sqlmock.NewRows([]string{"key"}).AddRow("only-one-column")
	mock.ExpectQuery(`SELECT key, value FROM kv`).WillReturnRows(rows)

	_, err = NewSQLiteRepository(db).List(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to scan kv row")
}
