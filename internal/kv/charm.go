// ABOUTME: Charm KV backed Store with automatic cloud sync.
// ABOUTME: Data is E2E encrypted by Charm and synced after each write.
package kv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	charmclient "github.com/charmbracelet/charm/client"
	charmkv "github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
)

const (
	// DefaultCharmDB is the Charm KV database name.
	DefaultCharmDB = "swimbook"
	charmHost      = "charm.2389.dev"
)

// ErrReadOnly is returned for writes while another process holds the database lock.
var ErrReadOnly = errors.New("cannot write: database is locked by another process (MCP server?)")

// Charm stores documents in a Charm Cloud KV database.
type Charm struct {
	kv       *charmkv.KV
	autoSync bool
	mu       sync.RWMutex
}

var _ Store = (*Charm)(nil)

// OpenCharm opens the named Charm KV database and pulls remote changes.
// When another process holds the lock the database opens read-only.
func OpenCharm(name string) (*Charm, error) {
	if os.Getenv("CHARM_HOST") == "" {
		if err := os.Setenv("CHARM_HOST", charmHost); err != nil {
			return nil, err
		}
	}

	db, err := charmkv.OpenWithDefaultsFallback(name)
	if err != nil {
		return nil, fmt.Errorf("open charm kv: %w", err)
	}

	c := &Charm{kv: db, autoSync: true}
	if !db.IsReadOnly() {
		_ = db.Sync()
	}
	return c, nil
}

// Get returns the value stored at key.
func (c *Charm) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, err := c.kv.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

// Set replaces the value at key and syncs if auto-sync is on.
func (c *Charm) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return ErrReadOnly
	}
	if err := c.kv.Set([]byte(key), value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	c.syncIfEnabled()
	return nil
}

// Delete removes key and syncs if auto-sync is on.
func (c *Charm) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return ErrReadOnly
	}
	if err := c.kv.Delete([]byte(key)); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	c.syncIfEnabled()
	return nil
}

// Close closes the KV database connection.
func (c *Charm) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv != nil {
		return c.kv.Close()
	}
	return nil
}

// IsReadOnly reports whether the database opened without the write lock.
func (c *Charm) IsReadOnly() bool {
	return c.kv.IsReadOnly()
}

// Sync synchronizes local state with Charm Cloud.
func (c *Charm) Sync() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.kv.IsReadOnly() {
		return nil
	}
	return c.kv.Sync()
}

// SetAutoSync enables or disables sync after every write.
func (c *Charm) SetAutoSync(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoSync = enabled
}

// Reset wipes local data and rebuilds it from Charm Cloud.
func (c *Charm) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Reset()
}

// ID returns the Charm user ID for the linked account.
func (c *Charm) ID() (string, error) {
	cc, err := charmclient.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("create charm client: %w", err)
	}
	return cc.ID()
}

// syncIfEnabled must be called with mu held.
func (c *Charm) syncIfEnabled() {
	if c.autoSync && !c.kv.IsReadOnly() {
		_ = c.kv.Sync()
	}
}
