package store

import (
	"context"
	"testing"

	"github.com/erazemk/wms/internal/db"
)

func TestJWTSecretIsStable(t *testing.T) {
	ctx := context.Background()
	r := NewRecords(NewSQLite(db.NewTestDB(t)))

	first, err := GetJWTSecret(ctx, r)
	if err != nil {
		t.Fatalf("GetJWTSecret: %v", err)
	}
	if len(first) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(first))
	}

	second, _ := GetJWTSecret(ctx, r)
	if first != second {
		t.Error("expected the same secret on second call")
	}
}

func TestJWTSecretFailsWithoutStorage(t *testing.T) {
	if _, err := GetJWTSecret(context.Background(), NewRecords(failingBackend{})); err == nil {
		t.Error("expected error when the secret cannot be stored")
	}
}

func TestOperatorPasswordHash(t *testing.T) {
	ctx := context.Background()
	r := NewRecords(NewMemory())

	got, err := GetOperatorPasswordHash(ctx, r)
	if err != nil {
		t.Fatalf("GetOperatorPasswordHash: %v", err)
	}
	if got != "" {
		t.Errorf("expected no hash initially, got %q", got)
	}
	if err := SetOperatorPasswordHash(ctx, r, "$2a$10$hash"); err != nil {
		t.Fatalf("SetOperatorPasswordHash: %v", err)
	}
	if got, _ := GetOperatorPasswordHash(ctx, r); got != "$2a$10$hash" {
		t.Errorf("expected stored hash, got %q", got)
	}
}

func TestSettingsReadFailureIsAnError(t *testing.T) {
	ctx := context.Background()
	r := NewRecords(failingBackend{})

	if _, err := GetOperatorPasswordHash(ctx, r); err == nil {
		t.Error("expected error when the password hash cannot be read")
	}
	if _, err := GetJWTSecret(ctx, r); err == nil {
		t.Error("expected error when the secret cannot be read")
	}
}
