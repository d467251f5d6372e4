// Package metadata is a small key/value store kept in the local sqlite file.
// The CLI uses it for values that must survive restarts, such as the
// backend session cookie.
package metadata

import (
	"context"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Clear(ctx context.Context) error
}

var _ Repository = (*SQLiteRepository)(nil)
