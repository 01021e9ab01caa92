package credstore

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store. It is safe for concurrent use and
// intended for tests and single-process deployments.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]Account
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: make(map[string]Account),
	}
}

func (s *MemoryStore) Create(ctx context.Context, account Account) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.Identity]; exists {
		return Account{}, ErrDuplicateIdentity
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}
	s.accounts[account.Identity] = account
	return account, nil
}

func (s *MemoryStore) Find(ctx context.Context, identity string) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, exists := s.accounts[identity]
	if !exists {
		return Account{}, ErrNotFound
	}
	return account, nil
}

func (s *MemoryStore) UpdatePasswordHash(ctx context.Context, identity, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, exists := s.accounts[identity]
	if !exists {
		return ErrNotFound
	}
	account.PasswordHash = passwordHash
	s.accounts[identity] = account
	return nil
}

func (s *MemoryStore) Revoke(ctx context.Context, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, exists := s.accounts[identity]
	if !exists {
		return ErrNotFound
	}
	account.Revoked = true
	s.accounts[identity] = account
	return nil
}
