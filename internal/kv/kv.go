// ABOUTME: Key-value store contract shared by every storage backend.
// ABOUTME: Backends hold whole JSON documents under string keys.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key has no value.
var ErrNotFound = errors.New("key not found")

// Store is a string-keyed document store.
// Values are opaque bytes; writes replace the whole value.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by configuration.
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
	BackendCharm  = "charm"
)
