package authcore

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jenca-cloud/authcore/credstore"
)

func TestSignupDuplicateIdentity(t *testing.T) {
	engine, _, done := newTestEngine(t, engineTestConfig(t))
	defer done()

	ctx := context.Background()
	if _, err := engine.Signup(ctx, "alice", "correct-password-123"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	_, err := engine.Signup(ctx, "alice", "another-password-456")
	if !errors.Is(err, ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}

	// Case and whitespace variants collide with the normalized identity.
	_, err = engine.Signup(ctx, "  ALICE ", "another-password-456")
	if !errors.Is(err, ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists for normalized duplicate, got %v", err)
	}
}

func TestSignupRejectsInvalidIdentity(t *testing.T) {
	engine, _, done := newTestEngine(t, engineTestConfig(t))
	defer done()

	ctx := context.Background()
	cases := []string{
		"",
		"   ",
		"has space",
		"tab\tcharacter",
		"ctrl\x00char",
		strings.Repeat("a", 300),
	}
	for _, identity := range cases {
		_, err := engine.Signup(ctx, identity, "correct-password-123")
		if !errors.Is(err, ErrIdentityInvalid) {
			t.Fatalf("identity %q: expected ErrIdentityInvalid, got %v", identity, err)
		}
	}
}

func TestSignupRejectsWeakPassword(t *testing.T) {
	engine, _, done := newTestEngine(t, engineTestConfig(t))
	defer done()

	ctx := context.Background()

	_, err := engine.Signup(ctx, "alice", "short")
	if !errors.Is(err, ErrPasswordPolicy) {
		t.Fatalf("expected ErrPasswordPolicy for short password, got %v", err)
	}

	_, err = engine.Signup(ctx, "alice", strings.Repeat("x", 1000))
	if !errors.Is(err, ErrPasswordPolicy) {
		t.Fatalf("expected ErrPasswordPolicy for oversized password, got %v", err)
	}
}

func TestSignupEnforcesCharClassDiversity(t *testing.T) {
	cfg := engineTestConfig(t)
	cfg.Policy.MinCharClasses = 3
	engine, _, done := newTestEngine(t, cfg)
	defer done()

	ctx := context.Background()

	// Long but single-class passwords must not pass on length alone.
	rejected := []string{
		"aaaaaaaaaaaaaaaa",
		"0123456789012345",
		"passwordpassword",
		"PasswordPassword", // two classes, below the required three
	}
	for _, plaintext := range rejected {
		_, err := engine.Signup(ctx, "alice", plaintext)
		if !errors.Is(err, ErrPasswordPolicy) {
			t.Fatalf("password %q: expected ErrPasswordPolicy, got %v", plaintext, err)
		}
	}

	if _, err := engine.Signup(ctx, "alice", "correct-password-123"); err != nil {
		t.Fatalf("three-class password rejected: %v", err)
	}
}

func TestCharClassesCounting(t *testing.T) {
	cases := []struct {
		plaintext string
		want      int
	}{
		{"", 0},
		{"aaaa", 1},
		{"aaAA", 2},
		{"aa11", 2},
		{"aA1!", 4},
		{"correct-password-123", 3},
	}
	for _, tc := range cases {
		if got := charClasses(tc.plaintext); got != tc.want {
			t.Errorf("charClasses(%q) = %d, want %d", tc.plaintext, got, tc.want)
		}
	}
}

func TestSignupStoresArgon2Digest(t *testing.T) {
	store := credstore.NewMemoryStore()
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	engine, err := New().
		WithConfig(engineTestConfig(t)).
		WithRedis(rdb).
		WithCredentialStore(store).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer engine.Close()

	ctx := context.Background()
	if _, err := engine.Signup(ctx, "alice", "correct-password-123"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	account, err := store.Find(ctx, "alice")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if !strings.HasPrefix(account.PasswordHash, "$argon2id$") {
		t.Fatalf("expected argon2id digest, got %q", account.PasswordHash)
	}
	if account.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}
}

func TestRevokeAccountUnknownIdentity(t *testing.T) {
	engine, _, done := newTestEngine(t, engineTestConfig(t))
	defer done()

	err := engine.RevokeAccount(context.Background(), "nobody")
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestRevokeAccountIsIdempotent(t *testing.T) {
	engine, _, done := newTestEngine(t, engineTestConfig(t))
	defer done()

	ctx := context.Background()
	if _, err := engine.Signup(ctx, "alice", "correct-password-123"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if err := engine.RevokeAccount(ctx, "alice"); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if err := engine.RevokeAccount(ctx, "alice"); err != nil {
		t.Fatalf("second revoke failed: %v", err)
	}
}
