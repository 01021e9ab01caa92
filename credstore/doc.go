// Package credstore persists account credentials.
//
// A credential record maps a normalized identity to its password hash
// plus a revoked flag. Two implementations are provided: an in-memory
// store for tests and small deployments, and a PostgreSQL store with
// embedded goose migrations for production use.
//
// Stores never see plaintext passwords. Hashing happens in the caller;
// only the encoded hash string crosses this boundary.
//
// # Architecture boundaries
//
// This package must NOT:
//   - hash or verify passwords
//   - normalize or validate identities (callers pass canonical values)
//   - import other authcore packages
package credstore
