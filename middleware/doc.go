// Package middleware exposes an HTTP adapter for guarding routes with
// authcore token verification.
//
// [RequireAuth] reads the Authorization header, calls Engine.Verify, and
// injects the verification result into the request context, where handlers
// retrieve it with [VerifyResultFromContext] or [IdentityFromContext].
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT
// implement authentication logic itself — all decisions are delegated to
// Engine.Verify.
//
// # What this package must NOT do
//
//   - Parse or create tokens directly (delegates to Engine).
//   - Access Redis (Engine handles I/O).
//   - Reveal why a request was rejected; every failure is a plain 401.
package middleware
