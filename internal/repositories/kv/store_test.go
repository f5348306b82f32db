package kv

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore_InTxCommits(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	err := s.InTx(ctx, func(ctx context.Context, r Repository) error {
		if err := r.Set(ctx, "UserPINCode", []byte("h")); err != nil {
			return err
		}
		return SetBool(ctx, r, "UsePIN", true)
	})
	require.NoError(t, err)

	m, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("h"), m["UserPINCode"])
	assert.Equal(t, []byte("true"), m["UsePIN"])
}

func TestSQLiteStore_InTxRollsBack(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.InTx(ctx, func(ctx context.Context, r Repository) error {
		require.NoError(t, r.Set(ctx, "UserPINCode", []byte("h")))
		return boom
	})
	require.ErrorIs(t, err, boom)

	v, err := s.Get(ctx, "UserPINCode")
	require.NoError(t, err)
	assert.Nil(t, v)
}
