package authcore

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jenca-cloud/authcore/credstore"
	"github.com/jenca-cloud/authcore/password"
	"github.com/jenca-cloud/authcore/revocation"
	"github.com/jenca-cloud/authcore/token"
)

// Engine defines a public type used by authcore APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config      Config
	credStore   credstore.Store
	revocations *revocation.Store
	keyring     *token.Keyring
	issuer      *token.Issuer
	verifier    *token.Verifier
	hasher      *password.Hasher
	decoyHash   string
	audit       *auditDispatcher
	metrics     *Metrics
}

// Close describes the close operation and its observable behavior.
//
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.TakeSnapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// Login describes the login operation and its observable behavior.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Login(ctx context.Context, identity, plaintext string) (*LoginResult, error) {
	if e == nil || e.hasher == nil || e.issuer == nil {
		return nil, ErrEngineNotReady
	}

	identity = normalizeIdentity(identity)
	if err := validateIdentity(identity, e.config.Policy); err != nil {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, identity, "", ErrInvalidCredentials, func() map[string]string {
			return map[string]string{
				"reason": "invalid_identity",
			}
		})
		return nil, errors.Join(ErrUnauthorized, ErrInvalidCredentials)
	}
	if plaintext == "" {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, identity, "", ErrInvalidCredentials, func() map[string]string {
			return map[string]string{
				"reason": "empty_password",
			}
		})
		return nil, errors.Join(ErrUnauthorized, ErrInvalidCredentials)
	}

	account, err := e.credStore.Find(ctx, identity)
	if err != nil {
		if errors.Is(err, credstore.ErrUnavailable) {
			e.metricInc(MetricStorageUnavailable)
			e.emitAudit(ctx, auditEventLoginFailure, false, identity, "", ErrStorageUnavailable, func() map[string]string {
				return map[string]string{
					"reason": "store_unavailable",
				}
			})
			return nil, errors.Join(ErrStorageUnavailable, err)
		}
		// Burn a hash verification so unknown identities cost the same
		// as a password mismatch.
		_, _ = e.hasher.Verify(plaintext, e.decoyHash)
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, identity, "", ErrInvalidCredentials, func() map[string]string {
			return map[string]string{
				"reason": "account_not_found",
			}
		})
		return nil, errors.Join(ErrUnauthorized, ErrInvalidCredentials)
	}

	ok, err := e.hasher.Verify(plaintext, account.PasswordHash)
	if err != nil || !ok {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, identity, "", ErrInvalidCredentials, func() map[string]string {
			return map[string]string{
				"reason": "password_mismatch",
			}
		})
		return nil, errors.Join(ErrUnauthorized, ErrInvalidCredentials)
	}

	if account.Revoked {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, identity, "", ErrAccountRevoked, func() map[string]string {
			return map[string]string{
				"reason": "account_revoked",
			}
		})
		return nil, errors.Join(ErrUnauthorized, ErrAccountRevoked)
	}

	if e.config.Password.UpgradeOnLogin {
		if stale, err := e.hasher.NeedsRehash(account.PasswordHash); err == nil && stale {
			if upgraded, err := e.hasher.Hash(plaintext); err == nil {
				// Rehash update is best-effort and must not block successful login.
				if err := e.credStore.UpdatePasswordHash(ctx, identity, upgraded); err != nil {
					log.Print("authcore: password hash upgrade update failed")
				} else {
					e.metricInc(MetricPasswordRehashed)
				}
			} else {
				log.Print("authcore: password hash upgrade generation failed")
			}
		}
	}
	plaintext = ""

	issued, err := e.issuer.Issue(identity, e.config.Token.TTL)
	if err != nil {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, identity, "", err, func() map[string]string {
			return map[string]string{
				"reason": "token_issue_failed",
			}
		})
		return nil, err
	}

	e.metricInc(MetricTokenIssued)
	e.metricInc(MetricLoginSuccess)
	e.emitAudit(ctx, auditEventLoginSuccess, true, identity, issued.ID, nil, nil)

	return &LoginResult{
		Identity:  identity,
		Token:     issued.Token,
		TokenID:   issued.ID,
		IssuedAt:  issued.IssuedAt,
		ExpiresAt: issued.ExpiresAt,
	}, nil
}

// Verify describes the verify operation and its observable behavior.
//
// Verify may return an error when input validation, dependency calls, or security checks fail.
// Verify does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Verify(ctx context.Context, tokenStr string) (*VerifyResult, error) {
	if e == nil || e.verifier == nil {
		return nil, ErrEngineNotReady
	}
	if e.metrics != nil && e.metrics.LatencyEnabled() {
		start := time.Now()
		defer func() {
			e.metrics.Observe(MetricVerifyLatency, time.Since(start))
		}()
	}

	claims, err := e.verifier.Verify(tokenStr)
	if err != nil {
		cause := e.classifyVerifyFailure(err)
		e.emitAudit(ctx, auditEventVerifyFailure, false, "", "", cause, nil)
		return nil, errors.Join(ErrUnauthorized, cause)
	}

	revoked, err := e.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		// Fail closed: a token that cannot be checked against the
		// revocation set is not accepted.
		e.metricInc(MetricStorageUnavailable)
		e.emitAudit(ctx, auditEventVerifyFailure, false, claims.Identity, claims.ID, ErrStorageUnavailable, func() map[string]string {
			return map[string]string{
				"reason": "revocation_check_failed",
			}
		})
		return nil, errors.Join(ErrStorageUnavailable, err)
	}
	if revoked {
		e.metricInc(MetricVerifyRevoked)
		e.emitAudit(ctx, auditEventVerifyFailure, false, claims.Identity, claims.ID, ErrTokenRevoked, nil)
		return nil, errors.Join(ErrUnauthorized, ErrTokenRevoked)
	}

	e.metricInc(MetricVerifySuccess)

	return &VerifyResult{
		Identity:  claims.Identity,
		TokenID:   claims.ID,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (e *Engine) classifyVerifyFailure(err error) error {
	switch {
	case errors.Is(err, token.ErrExpired):
		e.metricInc(MetricVerifyExpired)
		return ErrTokenExpired
	case errors.Is(err, token.ErrBadSignature):
		e.metricInc(MetricVerifyBadSignature)
		return ErrTokenBadSignature
	default:
		e.metricInc(MetricVerifyMalformed)
		return ErrTokenMalformed
	}
}

// Logout describes the logout operation and its observable behavior.
//
// Logout may return an error when input validation, dependency calls, or security checks fail.
// Logout does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Logout(ctx context.Context, tokenStr string) error {
	if e == nil || e.verifier == nil {
		return ErrEngineNotReady
	}

	// Signature and structure are still enforced; only expiry is not,
	// so a just-expired token can be logged out without error.
	claims, err := e.verifier.Extract(tokenStr)
	if err != nil {
		cause := e.classifyVerifyFailure(err)
		e.emitAudit(ctx, auditEventLogout, false, "", "", cause, nil)
		return errors.Join(ErrUnauthorized, cause)
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		// Already expired; nothing to revoke.
		e.metricInc(MetricLogoutNoop)
		e.emitAudit(ctx, auditEventLogout, true, claims.Identity, claims.ID, nil, func() map[string]string {
			return map[string]string{
				"noop": "expired",
			}
		})
		return nil
	}

	if err := e.revocations.Revoke(ctx, claims.ID, remaining); err != nil {
		e.metricInc(MetricStorageUnavailable)
		e.emitAudit(ctx, auditEventLogout, false, claims.Identity, claims.ID, ErrStorageUnavailable, nil)
		return errors.Join(ErrStorageUnavailable, err)
	}

	e.metricInc(MetricLogout)
	e.emitAudit(ctx, auditEventLogout, true, claims.Identity, claims.ID, nil, nil)
	return nil
}

// RotateSigningKey describes the rotatesigningkey operation and its observable behavior.
//
// RotateSigningKey may return an error when input validation, dependency calls, or security checks fail.
// RotateSigningKey does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) RotateSigningKey(kid string, signingKey []byte) error {
	if e == nil || e.keyring == nil {
		return ErrEngineNotReady
	}
	if err := e.keyring.Rotate(kid, signingKey); err != nil {
		return err
	}
	e.emitAudit(context.Background(), auditEventKeyRotated, true, "", "", nil, func() map[string]string {
		return map[string]string{
			"kid": kid,
		}
	})
	return nil
}

// RetireSigningKey describes the retiresigningkey operation and its observable behavior.
//
// RetireSigningKey may return an error when input validation, dependency calls, or security checks fail.
// RetireSigningKey does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) RetireSigningKey(kid string) error {
	if e == nil || e.keyring == nil {
		return ErrEngineNotReady
	}
	if err := e.keyring.Retire(kid); err != nil {
		return err
	}
	e.emitAudit(context.Background(), auditEventKeyRetired, true, "", "", nil, func() map[string]string {
		return map[string]string{
			"kid": kid,
		}
	})
	return nil
}
