package store

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned by backends when a key does not exist.
var ErrNotFound = errors.New("record not found")

// Backend is a persistence primitive over opaque JSON records addressed by
// string keys. Implementations return errors; Records absorbs them.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// List returns every key starting with prefix, sorted ascending.
	List(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

// Driver identifies a backend implementation.
type Driver string

const (
	DriverMemory   Driver = "memory"   // in-memory only (tests / ephemeral)
	DriverSQLite   Driver = "sqlite"   // embedded sqlite file
	DriverPostgres Driver = "postgres" // hosted PostgreSQL table
	DriverRedis    Driver = "redis"    // redis key-value server
)

// splitKey splits "pr:PR-2026-000001" into its namespace and id.
func splitKey(key string) (namespace, id string) {
	namespace, id, found := strings.Cut(key, ":")
	if !found {
		return "", key
	}
	return namespace, id
}
