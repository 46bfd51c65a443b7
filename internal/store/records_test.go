package store

import (
	"context"
	"errors"
	"testing"

	"github.com/erazemk/wms/internal/db"
)

type doc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// failingBackend rejects every operation.
type failingBackend struct{}

var errBackendDown = errors.New("backend down")

func (failingBackend) Get(context.Context, string) ([]byte, error)    { return nil, errBackendDown }
func (failingBackend) Set(context.Context, string, []byte) error      { return errBackendDown }
func (failingBackend) Delete(context.Context, string) error           { return errBackendDown }
func (failingBackend) List(context.Context, string) ([]string, error) { return nil, errBackendDown }
func (failingBackend) Close() error                                   { return nil }

// backends returns every backend that runs without an external server.
func backends(t *testing.T) map[string]Backend {
	t.Helper()
	return map[string]Backend{
		"memory": NewMemory(),
		"sqlite": NewSQLite(db.NewTestDB(t)),
	}
}

func TestRecordsRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			r := NewRecords(backend)

			if !r.Set(ctx, "inventory:OFF-000001", doc{Name: "Paper", Count: 10}) {
				t.Fatal("Set returned false")
			}

			var got doc
			if !r.Get(ctx, "inventory:OFF-000001", &got) {
				t.Fatal("Get returned false")
			}
			if got.Name != "Paper" || got.Count != 10 {
				t.Errorf("unexpected record %+v", got)
			}

			// Overwrite.
			r.Set(ctx, "inventory:OFF-000001", doc{Name: "Paper", Count: 4})
			r.Get(ctx, "inventory:OFF-000001", &got)
			if got.Count != 4 {
				t.Errorf("expected count 4 after overwrite, got %d", got.Count)
			}

			if !r.Exists(ctx, "inventory:OFF-000001") {
				t.Error("expected record to exist")
			}
			if r.Exists(ctx, "inventory:missing") {
				t.Error("expected missing record not to exist")
			}
		})
	}
}

func TestRecordsGetMissing(t *testing.T) {
	ctx := context.Background()
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			r := NewRecords(backend)
			var got doc
			if r.Get(ctx, "pr:nope", &got) {
				t.Error("expected Get on missing key to return false")
			}
		})
	}
}

func TestRecordsDelete(t *testing.T) {
	ctx := context.Background()
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			r := NewRecords(backend)
			r.Set(ctx, "asset:IT-000001", doc{Name: "Laptop"})

			if !r.Delete(ctx, "asset:IT-000001") {
				t.Error("expected delete of existing key to succeed")
			}
			if r.Delete(ctx, "asset:IT-000001") {
				t.Error("expected second delete to return false")
			}

			var got doc
			if r.Get(ctx, "asset:IT-000001", &got) {
				t.Error("expected deleted record to be gone")
			}
		})
	}
}

func TestRecordsListByPrefix(t *testing.T) {
	ctx := context.Background()
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			r := NewRecords(backend)
			r.Set(ctx, "po:PO-2026-000002", doc{Name: "b"})
			r.Set(ctx, "po:PO-2026-000001", doc{Name: "a"})
			r.Set(ctx, "pr:PR-2026-000001", doc{Name: "other"})
			// Prefix characters must not act as wildcards.
			r.Set(ctx, "po_x", doc{Name: "not a po"})

			keys, ok := r.List(ctx, "po:")
			if !ok {
				t.Fatal("List returned false")
			}
			if len(keys) != 2 {
				t.Fatalf("expected 2 keys, got %v", keys)
			}
			if keys[0] != "po:PO-2026-000001" || keys[1] != "po:PO-2026-000002" {
				t.Errorf("expected sorted keys, got %v", keys)
			}

			all, ok := GetAllByPrefix[doc](ctx, r, "po:")
			if !ok {
				t.Fatal("GetAllByPrefix returned false")
			}
			if len(all) != 2 || all[0].Name != "a" {
				t.Errorf("unexpected records %+v", all)
			}

			empty, ok := GetAllByPrefix[doc](ctx, r, "asset:")
			if !ok || len(empty) != 0 {
				t.Errorf("expected empty successful listing, got %v, %v", empty, ok)
			}
		})
	}
}

func TestGetAllSkipsUndecodable(t *testing.T) {
	ctx := context.Background()
	backend := NewMemory()
	backend.Set(ctx, "pr:good", []byte(`{"name":"good"}`))
	backend.Set(ctx, "pr:bad", []byte(`not json`))

	all, ok := GetAllByPrefix[doc](ctx, NewRecords(backend), "pr:")
	if !ok {
		t.Fatal("expected listing to succeed")
	}
	if len(all) != 1 || all[0].Name != "good" {
		t.Errorf("expected only the good record, got %+v", all)
	}
}

func TestRecordsAbsorbFailures(t *testing.T) {
	ctx := context.Background()
	r := NewRecords(failingBackend{})

	var got doc
	if r.Get(ctx, "pr:x", &got) {
		t.Error("expected Get to return false")
	}
	if r.Set(ctx, "pr:x", doc{}) {
		t.Error("expected Set to return false")
	}
	if r.Delete(ctx, "pr:x") {
		t.Error("expected Delete to return false")
	}
	if keys, ok := r.List(ctx, "pr:"); ok || keys != nil {
		t.Errorf("expected failed List, got %v, %v", keys, ok)
	}
	if all, ok := GetAllByPrefix[doc](ctx, r, "pr:"); ok || all != nil {
		t.Errorf("expected failed GetAllByPrefix, got %v, %v", all, ok)
	}
}

func TestSplitKey(t *testing.T) {
	tests := []struct {
		key, namespace, id string
	}{
		{"pr:PR-2026-000001", "pr", "PR-2026-000001"},
		{"settings:jwt_secret", "settings", "jwt_secret"},
		{"bare", "", "bare"},
	}
	for _, tt := range tests {
		ns, id := splitKey(tt.key)
		if ns != tt.namespace || id != tt.id {
			t.Errorf("splitKey(%q) = %q, %q; want %q, %q", tt.key, ns, id, tt.namespace, tt.id)
		}
	}
}

func TestGlobEscape(t *testing.T) {
	if got := globEscape("wms:po*[x]"); got != `wms:po\*\[x\]` {
		t.Errorf("unexpected escape %q", got)
	}
}

func TestOpenMemoryDriver(t *testing.T) {
	backend, err := Open(context.Background(), Config{Driver: DriverMemory})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer backend.Close()
	if _, ok := backend.(*Memory); !ok {
		t.Errorf("expected memory backend, got %T", backend)
	}

	if _, err := Open(context.Background(), Config{Driver: "floppy"}); err == nil {
		t.Error("expected error for unknown driver")
	}
}
