// Package kv is the local key-value blob store every PaperRoost component
// persists into: the contract list, the PIN settings and app preferences
// each live under a fixed key.
package kv

import (
	"context"
)

// Repository stores opaque values under string keys. Get returns (nil, nil)
// for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
