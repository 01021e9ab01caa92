package credstore

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestMemoryCreateAndFind(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	created, err := store.Create(ctx, Account{Identity: "a@x.com", PasswordHash: "h1"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}

	found, err := store.Find(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if found.PasswordHash != "h1" {
		t.Fatalf("expected hash h1, got %s", found.PasswordHash)
	}
}

func TestMemoryDuplicateIdentity(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Create(ctx, Account{Identity: "a@x.com", PasswordHash: "h1"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, Account{Identity: "a@x.com", PasswordHash: "h2"}); !errors.Is(err, ErrDuplicateIdentity) {
		t.Fatalf("expected ErrDuplicateIdentity, got %v", err)
	}
}

func TestMemoryFindUnknown(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.Find(context.Background(), "nobody@x.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryUpdatePasswordHash(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Create(ctx, Account{Identity: "a@x.com", PasswordHash: "h1"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := store.UpdatePasswordHash(ctx, "a@x.com", "h2"); err != nil {
		t.Fatalf("UpdatePasswordHash failed: %v", err)
	}

	found, err := store.Find(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if found.PasswordHash != "h2" {
		t.Fatalf("expected hash h2, got %s", found.PasswordHash)
	}

	if err := store.UpdatePasswordHash(ctx, "nobody@x.com", "h3"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRevoke(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Create(ctx, Account{Identity: "a@x.com", PasswordHash: "h1"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := store.Revoke(ctx, "a@x.com"); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}
	if err := store.Revoke(ctx, "a@x.com"); err != nil {
		t.Fatalf("second Revoke failed: %v", err)
	}

	found, err := store.Find(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if !found.Revoked {
		t.Fatal("expected Revoked to be set")
	}

	if err := store.Revoke(ctx, "nobody@x.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			identity := string(rune('a'+n)) + "@x.com"
			if _, err := store.Create(ctx, Account{Identity: identity, PasswordHash: "h"}); err != nil {
				t.Errorf("Create %s failed: %v", identity, err)
				return
			}
			if _, err := store.Find(ctx, identity); err != nil {
				t.Errorf("Find %s failed: %v", identity, err)
			}
		}(i)
	}
	wg.Wait()
}
