// Package credentials is the local persistence for the session gate: a
// small sqlite key–value table holding the bearer token and the identity
// fields needed to restore an authenticated session across restarts.
package credentials

import "context"

// Repository is a byte-valued key–value cache. Get returns nil (not an
// error) for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Clear(ctx context.Context) error
}
