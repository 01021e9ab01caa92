package authcore

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/jenca-cloud/authcore/credstore"
)

// Signup describes the signup operation and its observable behavior.
//
// Signup may return an error when input validation, dependency calls, or security checks fail.
// Signup does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Signup(ctx context.Context, identity, plaintext string) (Account, error) {
	if e == nil || e.hasher == nil || e.credStore == nil {
		return Account{}, ErrEngineNotReady
	}

	identity = normalizeIdentity(identity)
	if err := validateIdentity(identity, e.config.Policy); err != nil {
		e.metricInc(MetricSignupRejected)
		e.emitAudit(ctx, auditEventSignupFailure, false, identity, "", err, func() map[string]string {
			return map[string]string{
				"reason": "invalid_identity",
			}
		})
		return Account{}, err
	}
	if err := validatePassword(plaintext, e.config.Policy); err != nil {
		e.metricInc(MetricSignupRejected)
		e.emitAudit(ctx, auditEventSignupFailure, false, identity, "", err, func() map[string]string {
			return map[string]string{
				"reason": "password_policy",
			}
		})
		return Account{}, err
	}

	passwordHash, err := e.hasher.Hash(plaintext)
	if err != nil {
		e.emitAudit(ctx, auditEventSignupFailure, false, identity, "", ErrPasswordPolicy, func() map[string]string {
			return map[string]string{
				"reason": "hash_failed",
			}
		})
		return Account{}, ErrPasswordPolicy
	}
	plaintext = ""

	created, err := e.credStore.Create(ctx, Account{
		Identity:     identity,
		PasswordHash: passwordHash,
	})
	if err != nil {
		switch {
		case errors.Is(err, credstore.ErrDuplicateIdentity):
			e.metricInc(MetricSignupConflict)
			e.emitAudit(ctx, auditEventSignupDuplicate, false, identity, "", ErrAccountExists, nil)
			return Account{}, ErrAccountExists
		case errors.Is(err, credstore.ErrUnavailable):
			e.metricInc(MetricStorageUnavailable)
			e.emitAudit(ctx, auditEventSignupFailure, false, identity, "", ErrStorageUnavailable, func() map[string]string {
				return map[string]string{
					"reason": "store_unavailable",
				}
			})
			return Account{}, errors.Join(ErrStorageUnavailable, err)
		default:
			e.emitAudit(ctx, auditEventSignupFailure, false, identity, "", err, nil)
			return Account{}, err
		}
	}

	e.metricInc(MetricSignupSuccess)
	e.emitAudit(ctx, auditEventSignupSuccess, true, identity, "", nil, nil)

	return created, nil
}

// RevokeAccount describes the revokeaccount operation and its observable behavior.
//
// RevokeAccount may return an error when input validation, dependency calls, or security checks fail.
// RevokeAccount does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) RevokeAccount(ctx context.Context, identity string) error {
	if e == nil || e.credStore == nil {
		return ErrEngineNotReady
	}

	identity = normalizeIdentity(identity)
	if err := validateIdentity(identity, e.config.Policy); err != nil {
		return err
	}

	if err := e.credStore.Revoke(ctx, identity); err != nil {
		switch {
		case errors.Is(err, credstore.ErrNotFound):
			e.emitAudit(ctx, auditEventAccountRevoked, false, identity, "", ErrAccountNotFound, nil)
			return ErrAccountNotFound
		case errors.Is(err, credstore.ErrUnavailable):
			e.metricInc(MetricStorageUnavailable)
			e.emitAudit(ctx, auditEventAccountRevoked, false, identity, "", ErrStorageUnavailable, nil)
			return errors.Join(ErrStorageUnavailable, err)
		default:
			e.emitAudit(ctx, auditEventAccountRevoked, false, identity, "", err, nil)
			return err
		}
	}

	e.metricInc(MetricAccountRevoked)
	e.emitAudit(ctx, auditEventAccountRevoked, true, identity, "", nil, nil)
	return nil
}

func normalizeIdentity(identity string) string {
	return strings.ToLower(strings.TrimSpace(identity))
}

func validateIdentity(identity string, policy PolicyConfig) error {
	if identity == "" {
		return ErrIdentityInvalid
	}
	if policy.MaxIdentityLength > 0 && len(identity) > policy.MaxIdentityLength {
		return ErrIdentityInvalid
	}
	for _, r := range identity {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return ErrIdentityInvalid
		}
	}
	return nil
}

func validatePassword(plaintext string, policy PolicyConfig) error {
	if len(plaintext) < policy.MinPasswordLength {
		return ErrPasswordPolicy
	}
	if policy.MaxPasswordLength > 0 && len(plaintext) > policy.MaxPasswordLength {
		return ErrPasswordPolicy
	}
	if policy.MinCharClasses > 1 && charClasses(plaintext) < policy.MinCharClasses {
		return ErrPasswordPolicy
	}
	return nil
}

// charClasses counts the distinct character classes (lower, upper,
// digit, other) present in a password.
func charClasses(plaintext string) int {
	var lower, upper, digit, other bool
	for _, r := range plaintext {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			other = true
		}
	}
	n := 0
	for _, present := range [...]bool{lower, upper, digit, other} {
		if present {
			n++
		}
	}
	return n
}
