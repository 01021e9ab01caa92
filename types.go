package authcore

import (
	"time"

	"github.com/jenca-cloud/authcore/credstore"
)

// Account is the stored credential record for an identity.
type Account = credstore.Account

// LoginResult is returned by [Engine.Login]. Token is the signed bearer
// token; ExpiresAt is its expiry instant.
type LoginResult struct {
	Identity  string
	Token     string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// VerifyResult is returned by [Engine.Verify] for a valid token. It
// identifies the authenticated principal and the token that proved it.
type VerifyResult struct {
	Identity  string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// SecurityReport is a read-only snapshot of the engine's security posture,
// returned by [Engine.SecurityReport].
type SecurityReport struct {
	ProductionMode   bool
	SigningAlgorithm string
	ActiveKeyID      string
	TokenTTL         time.Duration
	TokenLeeway      time.Duration
	Argon2           PasswordConfigReport
	RehashOnLogin    bool
	AuditEnabled     bool
	MetricsEnabled   bool
}

// PasswordConfigReport contains the Argon2 parameters active in the engine.
type PasswordConfigReport struct {
	Memory      uint32
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}
