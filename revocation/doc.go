// Package revocation tracks token ids that have been invalidated before
// their natural expiry.
//
// The set is backed by Redis. Each revoked token id is stored under a
// prefixed key whose TTL equals the remaining lifetime of the token, so
// entries disappear on their own once the token would have expired
// anyway and the set never grows beyond the number of live tokens.
//
// # Architecture boundaries
//
// This package must NOT:
//   - parse or validate tokens (that is the token package's job)
//   - decide what a revoked token means for a caller
//   - import other authcore packages
package revocation
