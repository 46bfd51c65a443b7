package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
)

// Records is the non-throwing view over a Backend. Failures are logged and
// reported as nil/false/empty results; callers never see an error.
type Records struct {
	backend Backend
}

// NewRecords wraps backend.
func NewRecords(backend Backend) *Records {
	return &Records{backend: backend}
}

// Backend returns the wrapped backend.
func (r *Records) Backend() Backend {
	return r.backend
}

// Get decodes the record at key into dest. It reports false when the key is
// absent or the read fails.
func (r *Records) Get(ctx context.Context, key string, dest any) bool {
	data, err := r.backend.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false
	}
	if err != nil {
		slog.Error("failed to get record", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		slog.Error("failed to decode record", "key", key, "error", err)
		return false
	}
	return true
}

// Exists reports whether key holds a record. Read failures count as absent.
func (r *Records) Exists(ctx context.Context, key string) bool {
	_, err := r.backend.Get(ctx, key)
	if err != nil && !errors.Is(err, ErrNotFound) {
		slog.Error("failed to check record", "key", key, "error", err)
	}
	return err == nil
}

// Set encodes value as JSON and stores it at key.
func (r *Records) Set(ctx context.Context, key string, value any) bool {
	data, err := json.Marshal(value)
	if err != nil {
		slog.Error("failed to encode record", "key", key, "error", err)
		return false
	}
	if err := r.backend.Set(ctx, key, data); err != nil {
		slog.Error("failed to set record", "key", key, "error", err)
		return false
	}
	return true
}

// Delete removes key. It reports false when the key is absent or the delete fails.
func (r *Records) Delete(ctx context.Context, key string) bool {
	err := r.backend.Delete(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false
	}
	if err != nil {
		slog.Error("failed to delete record", "key", key, "error", err)
		return false
	}
	return true
}

// List returns the keys under prefix, or nil and false if listing failed.
func (r *Records) List(ctx context.Context, prefix string) ([]string, bool) {
	keys, err := r.backend.List(ctx, prefix)
	if err != nil {
		slog.Error("failed to list records", "prefix", prefix, "error", err)
		return nil, false
	}
	return keys, true
}

// GetAllByPrefix lists prefix and fetches each key, skipping keys that vanish
// or fail to decode between the list and the get. It reports false only when
// the listing itself failed.
func GetAllByPrefix[T any](ctx context.Context, r *Records, prefix string) ([]T, bool) {
	keys, ok := r.List(ctx, prefix)
	if !ok {
		return nil, false
	}
	items := make([]T, 0, len(keys))
	for _, key := range keys {
		var item T
		if r.Get(ctx, key, &item) {
			items = append(items, item)
		}
	}
	return items, true
}
