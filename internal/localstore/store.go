// Package localstore models the client-held session state as an explicit
// two-tier store. Tier A dies with the process (the browser build's
// sessionStorage); tier B is a SQLite file and survives restarts (its
// localStorage), populated only when the user asked to stay signed in.
package localstore

import "context"

// Tier is one storage level. Get returns (nil, nil) for absent keys.
type Tier interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
