package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/erazemk/wms/internal/model"
	"github.com/erazemk/wms/internal/store"
)

// maxIDAttempts bounds how many identifiers create tries before giving up.
const maxIDAttempts = 5

// Descriptor tells a Collection how to handle one entity kind.
type Descriptor[T any] struct {
	Entity  string // metrics and log label, e.g. model.EntityInventory
	Prefix  string // record key prefix, e.g. "inventory:"
	History func(*T) *[]model.HistoryEntry
	// Touch stamps the last-modified time and user after a mutation.
	Touch func(rec *T, now time.Time, user string)
}

// Mutator changes rec in place and returns the history entry describing the
// change. Returning false aborts the mutation without writing.
type Mutator[T any] func(rec *T, now time.Time) (model.HistoryEntry, bool)

// Collection is the shared create/read/update/delete logic behind every
// entity service. Records are stored as JSON under Prefix+id.
type Collection[T any] struct {
	desc    Descriptor[T]
	records *store.Records
	ids     *IDGenerator
	metrics *Metrics
}

// NewCollection creates a collection for the entity described by desc.
func NewCollection[T any](d Deps, desc Descriptor[T]) *Collection[T] {
	return &Collection[T]{
		desc:    desc,
		records: d.Records,
		ids:     d.ids(),
		metrics: d.Metrics,
	}
}

func (c *Collection[T]) key(id string) string {
	return c.desc.Prefix + id
}

// Now returns the collection's clock reading.
func (c *Collection[T]) Now() time.Time {
	return c.ids.Now()
}

// Insert allocates an identifier under idPrefix, builds the record and stores
// it. It returns nil if no free identifier was found or the write failed.
func (c *Collection[T]) Insert(ctx context.Context, idPrefix string, build func(id string, now time.Time) *T) (rec *T) {
	start := time.Now()
	defer func() { c.metrics.observe(c.desc.Entity, "create", start, rec != nil) }()

	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := c.ids.Next(idPrefix)
		key := c.key(id)
		if c.records.Exists(ctx, key) {
			slog.Warn("generated id already in use", "entity", c.desc.Entity, "id", id)
			continue
		}

		r := build(id, c.ids.Now())
		if !c.records.Set(ctx, key, r) {
			return nil
		}
		return r
	}

	slog.Error("failed to allocate a free id", "entity", c.desc.Entity, "prefix", idPrefix)
	return nil
}

// LoadAll returns every record, reporting false if the listing failed so
// callers can tell an empty collection from an unreachable one.
func (c *Collection[T]) LoadAll(ctx context.Context) ([]T, bool) {
	start := time.Now()
	items, ok := store.GetAllByPrefix[T](ctx, c.records, c.desc.Prefix)
	c.metrics.observe(c.desc.Entity, "list", start, ok)
	return items, ok
}

// All returns every record, or an empty slice on failure.
func (c *Collection[T]) All(ctx context.Context) []T {
	items, ok := c.LoadAll(ctx)
	if !ok {
		return []T{}
	}
	return items
}

// Get returns the record with id, or nil.
func (c *Collection[T]) Get(ctx context.Context, id string) *T {
	start := time.Now()
	var rec T
	ok := c.records.Get(ctx, c.key(id), &rec)
	c.metrics.observe(c.desc.Entity, "get", start, ok)
	if !ok {
		return nil
	}
	return &rec
}

// Mutate loads the record with id, applies fn, appends the entry fn returns
// to its history and stores the result. It returns nil without writing if the
// record does not exist or fn declines.
func (c *Collection[T]) Mutate(ctx context.Context, operation, id string, fn Mutator[T]) (rec *T) {
	start := time.Now()
	defer func() { c.metrics.observe(c.desc.Entity, operation, start, rec != nil) }()

	var r T
	if !c.records.Get(ctx, c.key(id), &r) {
		return nil
	}

	now := c.ids.Now()
	entry, ok := fn(&r, now)
	if !ok {
		return nil
	}
	entry.Date = now
	if entry.User == "" {
		entry.User = model.SystemUser
	}

	history := c.desc.History(&r)
	*history = append(*history, entry)
	c.desc.Touch(&r, now, entry.User)

	if !c.records.Set(ctx, c.key(id), &r) {
		return nil
	}
	return &r
}

// Delete removes the record with id. It reports false if it did not exist.
func (c *Collection[T]) Delete(ctx context.Context, id string) bool {
	start := time.Now()
	ok := c.records.Delete(ctx, c.key(id))
	c.metrics.observe(c.desc.Entity, "delete", start, ok)
	return ok
}

// Filter returns the records for which keep reports true.
func (c *Collection[T]) Filter(ctx context.Context, keep func(*T) bool) []T {
	var out []T
	for _, rec := range c.All(ctx) {
		if keep(&rec) {
			out = append(out, rec)
		}
	}
	if out == nil {
		out = []T{}
	}
	return out
}
