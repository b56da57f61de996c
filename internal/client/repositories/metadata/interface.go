// Package metadata is a small key/value store in the local SQLite database.
// The CLI keeps the session token, role, cached user profile and the email
// awaiting registration OTP here.
package metadata

import (
	"context"

	"github.com/dmitrijs2005/firemap/internal/dbx"
)

type Repository interface {
	// Get returns ok=false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
	// WithDB returns a repository bound to db, typically a transaction.
	WithDB(db dbx.DBTX) Repository
}
