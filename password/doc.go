// Package password implements credential hashing and verification with Argon2id.
//
// # Output format
//
// Digests are encoded in PHC string format, which carries the algorithm tag,
// version, and cost parameters alongside the salt and derived key:
//
//	$argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<hash>
//
// Because every digest embeds its own parameters, hashes produced under older
// cost settings stay verifiable after a parameter upgrade. [Hasher.NeedsRehash]
// reports whether a stored digest is weaker than the active parameters so the
// caller can re-hash on the next successful login.
//
// # Architecture boundaries
//
// This package owns hashing and verification only. Password policy (length,
// charset diversity) is enforced by the engine.
//
// # What this package must NOT do
//
//   - Store or retrieve credentials — callers supply plaintext and receive digests.
//   - Import any other authcore package.
//   - Log plaintext passwords or digest material.
package password
