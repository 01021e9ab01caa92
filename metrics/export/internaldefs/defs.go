package internaldefs

import (
	authcore "github.com/jenca-cloud/authcore"
)

// CounterDef defines a public type used by authcore APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   authcore.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by authcore APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   authcore.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the authentication engine.
var CounterDefs = []CounterDef{
	{ID: authcore.MetricSignupSuccess, Name: "authcore_signup_success_total", Help: "Successful account signups."},
	{ID: authcore.MetricSignupConflict, Name: "authcore_signup_conflict_total", Help: "Signup attempts rejected as duplicate."},
	{ID: authcore.MetricSignupRejected, Name: "authcore_signup_rejected_total", Help: "Signup attempts rejected by identity or password policy."},
	{ID: authcore.MetricLoginSuccess, Name: "authcore_login_success_total", Help: "Successful login attempts."},
	{ID: authcore.MetricLoginFailure, Name: "authcore_login_failure_total", Help: "Failed login attempts."},
	{ID: authcore.MetricVerifySuccess, Name: "authcore_verify_success_total", Help: "Successful token verifications."},
	{ID: authcore.MetricVerifyExpired, Name: "authcore_verify_expired_total", Help: "Verifications rejected for expiry."},
	{ID: authcore.MetricVerifyRevoked, Name: "authcore_verify_revoked_total", Help: "Verifications rejected for revocation."},
	{ID: authcore.MetricVerifyMalformed, Name: "authcore_verify_malformed_total", Help: "Verifications rejected as malformed."},
	{ID: authcore.MetricVerifyBadSignature, Name: "authcore_verify_bad_signature_total", Help: "Verifications rejected for signature mismatch."},
	{ID: authcore.MetricLogout, Name: "authcore_logout_total", Help: "Logout operations that revoked a token."},
	{ID: authcore.MetricLogoutNoop, Name: "authcore_logout_noop_total", Help: "Logout operations on already-expired tokens."},
	{ID: authcore.MetricTokenIssued, Name: "authcore_token_issued_total", Help: "Issued session tokens."},
	{ID: authcore.MetricAccountRevoked, Name: "authcore_account_revoked_total", Help: "Account revocation operations."},
	{ID: authcore.MetricPasswordRehashed, Name: "authcore_password_rehashed_total", Help: "Stored digests upgraded on login."},
	{ID: authcore.MetricStorageUnavailable, Name: "authcore_storage_unavailable_total", Help: "Operations failed by unreachable backends."},
}

// HistogramDefs is an exported constant or variable used by the authentication engine.
var HistogramDefs = []HistogramDef{
	{ID: authcore.MetricVerifyLatency, Name: "authcore_verify_latency_seconds", Help: "Verify latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the authentication engine.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the authentication engine.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
