package authcore

import (
	"errors"
	"time"
)

// Config defines a public type used by authcore APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Token      TokenConfig
	Password   PasswordConfig
	Policy     PolicyConfig
	Revocation RevocationConfig
	Audit      AuditConfig
	Metrics    MetricsConfig
	Security   SecurityConfig
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenConfig defines a public type used by authcore APIs.
//
// TokenConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TokenConfig struct {
	TTL           time.Duration
	SigningMethod string // "ed25519" (default), "hs256" optional
	SigningKey    []byte
	KeyID         string
	Issuer        string
	Leeway        time.Duration
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig defines a public type used by authcore APIs.
//
// PasswordConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PasswordConfig struct {
	Memory         uint32 // in KB
	Time           uint32
	Parallelism    uint8
	SaltLength     uint32
	KeyLength      uint32
	UpgradeOnLogin bool
}

// PolicyConfig defines a public type used by authcore APIs.
//
// PolicyConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PolicyConfig struct {
	MinPasswordLength int
	MaxPasswordLength int
	// MinCharClasses is the number of distinct character classes (lower,
	// upper, digit, other) a password must span. 0 or 1 disables the check.
	MinCharClasses    int
	MaxIdentityLength int
}

/*
====================================
REVOCATION CONFIG
====================================
*/

// RevocationConfig defines a public type used by authcore APIs.
//
// RevocationConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RevocationConfig struct {
	RedisPrefix string
}

// AuditConfig defines a public type used by authcore APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by authcore APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
SECURITY CONFIG
====================================
*/

// SecurityConfig defines a public type used by authcore APIs.
//
// SecurityConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SecurityConfig struct {
	ProductionMode bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

func defaultConfig() Config {
	return Config{
		Token: TokenConfig{
			TTL:           15 * time.Minute,
			SigningMethod: "ed25519",
			KeyID:         "k1",
			Issuer:        "authcore",
			Leeway:        30 * time.Second,
		},
		Password: PasswordConfig{
			Memory:         65536,
			Time:           3,
			Parallelism:    2,
			SaltLength:     16,
			KeyLength:      32,
			UpgradeOnLogin: true,
		},
		Policy: PolicyConfig{
			MinPasswordLength: 8,
			MaxPasswordLength: 256,
			MinCharClasses:    1,
			MaxIdentityLength: 254,
		},
		Revocation: RevocationConfig{
			RedisPrefix: "arv",
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
		Security: SecurityConfig{
			ProductionMode: false,
		},
	}
}

// HighSecurityConfig returns a preset suitable for production deployments:
// short-lived tokens, hardened argon2 parameters, and audit enabled. The
// caller still supplies Token.SigningKey.
func HighSecurityConfig() Config {
	cfg := defaultConfig()
	cfg.Token.TTL = 5 * time.Minute
	cfg.Token.Leeway = 10 * time.Second
	cfg.Password.Memory = 128 * 1024
	cfg.Password.Time = 3
	cfg.Password.Parallelism = 4
	cfg.Policy.MinPasswordLength = 12
	cfg.Policy.MinCharClasses = 3
	cfg.Audit.Enabled = true
	cfg.Audit.DropIfFull = false
	cfg.Metrics.Enabled = true
	cfg.Security.ProductionMode = true
	return cfg
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Token.SigningKey = cloneBytes(cfg.Token.SigningKey)
	return out
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// Token
	if c.Token.TTL <= 0 {
		return errors.New("Token TTL must be > 0")
	}
	if c.Token.SigningMethod != "ed25519" && c.Token.SigningMethod != "hs256" {
		return errors.New("unsupported token signing method")
	}
	if len(c.Token.SigningKey) == 0 {
		return errors.New("Token SigningKey is required")
	}
	if c.Token.KeyID == "" {
		return errors.New("Token KeyID is required")
	}
	if c.Token.Issuer == "" {
		return errors.New("Token Issuer is required")
	}
	if c.Token.Leeway < 0 {
		return errors.New("Token Leeway must be >= 0")
	}
	if c.Token.Leeway > 2*time.Minute {
		return errors.New("Token Leeway must be <= 2m")
	}

	// Password
	if c.Password.Memory < 8*1024 {
		return errors.New("Password Memory must be >= 8192 KB")
	}
	if c.Password.Time < 1 {
		return errors.New("Password Time must be >= 1")
	}
	if c.Password.Parallelism < 1 {
		return errors.New("Password Parallelism must be >= 1")
	}
	if c.Password.SaltLength < 16 {
		return errors.New("Password SaltLength must be >= 16")
	}
	if c.Password.KeyLength < 16 {
		return errors.New("Password KeyLength must be >= 16")
	}

	// Policy
	if c.Policy.MinPasswordLength < 1 {
		return errors.New("Policy MinPasswordLength must be >= 1")
	}
	if c.Policy.MaxPasswordLength < c.Policy.MinPasswordLength {
		return errors.New("Policy MaxPasswordLength must be >= MinPasswordLength")
	}
	if c.Policy.MinCharClasses < 0 || c.Policy.MinCharClasses > 4 {
		return errors.New("Policy MinCharClasses must be between 0 and 4")
	}
	if c.Policy.MaxIdentityLength <= 0 {
		return errors.New("Policy MaxIdentityLength must be > 0")
	}

	// Audit
	if c.Audit.Enabled {
		if c.Audit.BufferSize <= 0 {
			return errors.New("Audit BufferSize must be > 0 when audit is enabled")
		}
	}

	if c.Security.ProductionMode {
		if c.Token.TTL > time.Hour {
			return errors.New("ProductionMode requires Token TTL <= 1h")
		}
		if c.Token.SigningMethod == "hs256" && len(c.Token.SigningKey) < 32 {
			return errors.New("ProductionMode requires hs256 key length >= 256 bits")
		}
		if c.Password.Memory < 64*1024 {
			return errors.New("ProductionMode requires Password Memory >= 65536 KB")
		}
		if c.Password.Time < 2 {
			return errors.New("ProductionMode requires Password Time >= 2")
		}
		if c.Password.KeyLength < 32 {
			return errors.New("ProductionMode requires Password KeyLength >= 32")
		}
		if c.Policy.MinPasswordLength < 8 {
			return errors.New("ProductionMode requires Policy MinPasswordLength >= 8")
		}
	}

	return nil
}
