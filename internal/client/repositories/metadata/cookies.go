package metadata

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/restate/internal/dbx"
)

// KeySessionCookies holds the backend's fallback session cookie.
const KeySessionCookies = "appwrite.cookie_fallback"

// CookieStore keeps the backend session cookie in the metadata table. It
// satisfies appwrite.CookieStore.
type CookieStore struct {
	db *sql.DB
}

func NewCookieStore(db *sql.DB) *CookieStore {
	return &CookieStore{db: db}
}

// LoadCookies returns "" when nothing was saved.
func (s *CookieStore) LoadCookies(ctx context.Context) (string, error) {
	v, err := NewSQLiteRepository(s.db).Get(ctx, KeySessionCookies)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// SaveCookies stores value in a transaction. An empty value means the
// session ended: every session-scoped entry is wiped.
func (s *CookieStore) SaveCookies(ctx context.Context, value string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		if value == "" {
			return repo.Clear(ctx)
		}
		return repo.Set(ctx, KeySessionCookies, []byte(value))
	})
}
