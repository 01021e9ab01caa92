package credstore

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrDuplicateIdentity indicates an account with the identity already exists.
	ErrDuplicateIdentity = errors.New("identity already registered")
	// ErrNotFound indicates no account exists for the identity.
	ErrNotFound = errors.New("account not found")
	// ErrUnavailable indicates the backing storage could not be reached.
	ErrUnavailable = errors.New("credential store unavailable")
)

// Account is a stored credential record. PasswordHash is an encoded
// hash string, never plaintext.
type Account struct {
	Identity     string
	PasswordHash string
	CreatedAt    time.Time
	Revoked      bool
}

// Store is the persistence contract for credential records.
// Implementations must be safe for concurrent use.
type Store interface {
	// Create inserts a new account. Returns ErrDuplicateIdentity when an
	// account with the same identity already exists, revoked or not.
	Create(ctx context.Context, account Account) (Account, error)

	// Find returns the account for an identity, or ErrNotFound.
	// Revoked accounts are returned with Revoked set; the caller
	// decides what revocation means.
	Find(ctx context.Context, identity string) (Account, error)

	// UpdatePasswordHash replaces the stored hash for an identity.
	// Returns ErrNotFound when the identity is unknown.
	UpdatePasswordHash(ctx context.Context, identity, passwordHash string) error

	// Revoke marks an account revoked. Returns ErrNotFound when the
	// identity is unknown. Revoking twice is a no-op.
	Revoke(ctx context.Context, identity string) error
}
