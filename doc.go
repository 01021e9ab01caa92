// Package authcore provides a credential issuance and verification engine with
// Argon2id password hashing, signed expiring bearer tokens, and a Redis-backed
// token revocation set.
//
// The package is designed for concurrent server workloads: Engine methods are safe to call
// from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// authcore is the public surface. It exposes [Engine], [Builder], [Config], and value types
// (LoginResult, VerifyResult, MetricsSnapshot, etc.). All internal coordination — metric
// storage and audit dispatch — lives under internal/ and is never exported. Hashing,
// token handling, persistence, and revocation live in the password, token, credstore,
// and revocation sub-packages.
//
// # What this package must NOT do
//
//   - Expose Redis clients, store internals, or encoding details in its public API.
//   - Perform I/O outside of Engine methods (construction via Builder hashes one decoy
//     value and allocates, nothing more).
//   - Import any sub-package that re-imports authcore (no import cycles).
//
// # Performance contract
//
// Verify is the hot path. It performs one signature check plus one Redis round-trip for
// the revocation set and must not allocate beyond the returned result. Login and Signup
// each cost one Argon2id pass by design.
package authcore
