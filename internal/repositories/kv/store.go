package kv

import (
	"context"
	"database/sql"

	"github.com/RomaniOSDev/17PaperRoost/internal/dbx"
)

// Store is a Repository that can also group several writes atomically.
type Store interface {
	Repository
	InTx(ctx context.Context, fn func(ctx context.Context, r Repository) error) error
}

// SQLiteStore is the Store backed by the vault database.
type SQLiteStore struct {
	*SQLiteRepository
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{SQLiteRepository: NewSQLiteRepository(db), db: db}
}

// InTx runs fn against a repository bound to a single transaction; all of
// fn's writes are committed together or not at all.
func (s *SQLiteStore) InTx(ctx context.Context, fn func(ctx context.Context, r Repository) error) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, NewSQLiteRepository(tx))
	})
}
