package authcore

import (
	"fmt"
	"strings"
	"time"
)

// LintSeverity defines a public type used by authcore APIs.
//
// LintSeverity instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LintSeverity int

const (
	// LintInfo flags hardening opportunities that are safe to ignore.
	LintInfo LintSeverity = iota
	// LintMedium flags settings that weaken the security posture.
	LintMedium
	// LintHigh flags settings that undermine a core guarantee.
	LintHigh
)

// String describes the string operation and its observable behavior.
//
// String does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s LintSeverity) String() string {
	switch s {
	case LintHigh:
		return "HIGH"
	case LintMedium:
		return "MEDIUM"
	default:
		return "INFO"
	}
}

// ConfigWarning defines a public type used by authcore APIs.
//
// ConfigWarning instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ConfigWarning struct {
	Code     string
	Severity LintSeverity
	Message  string
}

// ConfigWarnings defines a public type used by authcore APIs.
//
// ConfigWarnings instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ConfigWarnings []ConfigWarning

// Codes describes the codes operation and its observable behavior.
//
// Codes does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (ws ConfigWarnings) Codes() []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.Code)
	}
	return out
}

// BySeverity describes the byseverity operation and its observable behavior.
//
// BySeverity does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (ws ConfigWarnings) BySeverity(min LintSeverity) ConfigWarnings {
	out := make(ConfigWarnings, 0, len(ws))
	for _, w := range ws {
		if w.Severity >= min {
			out = append(out, w)
		}
	}
	return out
}

// AsError describes the aserror operation and its observable behavior.
//
// AsError may return an error when input validation, dependency calls, or security checks fail.
// AsError does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (ws ConfigWarnings) AsError(min LintSeverity) error {
	flagged := ws.BySeverity(min)
	if len(flagged) == 0 {
		return nil
	}

	parts := make([]string, 0, len(flagged))
	for _, w := range flagged {
		parts = append(parts, fmt.Sprintf("%s [%s]: %s", w.Code, w.Severity, w.Message))
	}
	return fmt.Errorf("config lint: %s", strings.Join(parts, "; "))
}

// Lint inspects a valid config for settings that weaken its security
// posture. Unlike Validate, lint findings never prevent Build; callers
// that want hard enforcement use AsError.
func (c *Config) Lint() ConfigWarnings {
	var ws ConfigWarnings

	add := func(code string, severity LintSeverity, message string) {
		ws = append(ws, ConfigWarning{Code: code, Severity: severity, Message: message})
	}

	if c.Token.Leeway > time.Minute {
		add("leeway_large", LintMedium,
			"token leeway above 60s widens the post-expiry acceptance window")
	}
	if c.Token.TTL > 30*time.Minute {
		add("token_ttl_long", LintMedium,
			"token TTL above 30m extends the revocation-set lifetime of every logout")
	}
	if c.Token.SigningMethod == "hs256" {
		add("signing_hs256", LintMedium,
			"hs256 shares one secret between signing and verification; prefer ed25519")
	}

	if c.Password.Memory < 64*1024 {
		add("argon2_memory_low", LintMedium,
			"argon2 memory below 64 MB weakens resistance to GPU cracking")
	}
	if c.Password.Time < 2 {
		add("argon2_time_low", LintInfo,
			"argon2 time cost below 2 passes")
	}
	if !c.Password.UpgradeOnLogin {
		add("rehash_disabled", LintInfo,
			"stored digests will not be upgraded when password parameters change")
	}

	if c.Policy.MinPasswordLength < 8 {
		add("password_min_length_low", LintHigh,
			"minimum password length below 8 characters")
	}
	if c.Policy.MinCharClasses < 2 {
		add("char_classes_low", LintInfo,
			"passwords may use a single character class; consider MinCharClasses >= 2")
	}

	if !c.Audit.Enabled {
		add("audit_disabled", LintInfo,
			"authentication outcomes will not be audited")
	}

	return ws
}
