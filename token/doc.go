// Package token mints and verifies signed, expiring session tokens.
//
// Tokens are JWTs carrying the account identity, issued-at, expiry, and a
// cryptographically random token id (jti). Signing keys live in a [Keyring]:
// a versioned key set with one active signing key and any number of
// grace-period verification keys. Key rotation is a controlled [Keyring.Rotate]
// call; verification of tokens signed by a prior key keeps working until the
// key is explicitly retired, which callers should do only after every token it
// could have signed has expired (grace period = max TTL).
//
// # Architecture boundaries
//
// This package decides whether a token is authentic and unexpired. Revocation
// is a separate concern: the engine consults the revocation set after the
// verifier accepts a token.
//
// # What this package must NOT do
//
//   - Perform any I/O beyond reading the in-process keyring.
//   - Accept an unsigned ("none" algorithm) token under any configuration.
//   - Import any other authcore package.
package token
