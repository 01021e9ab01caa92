package token

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"
)

// Method selects the token signing algorithm.
type Method string

const (
	// MethodEd25519 signs tokens with an Ed25519 private key.
	MethodEd25519 Method = "ed25519"
	// MethodHS256 signs tokens with an HMAC-SHA256 shared secret.
	MethodHS256 Method = "hs256"
)

const minHMACSecretBytes = 32

type keypair struct {
	sign   any // ed25519.PrivateKey or []byte HMAC secret
	verify any // ed25519.PublicKey or []byte HMAC secret
}

// Keyring is a versioned signing key set. Exactly one key is active for
// signing at a time; every key that has not been retired remains usable for
// verification. All methods are safe for concurrent use.
type Keyring struct {
	mu        sync.RWMutex
	method    Method
	activeKID string
	keys      map[string]keypair
}

// NewKeyring builds a keyring with a single active key.
func NewKeyring(method Method, kid string, signingKey []byte) (*Keyring, error) {
	kid = strings.TrimSpace(kid)
	if kid == "" {
		return nil, errors.New("keyring requires a non-empty key id")
	}

	switch method {
	case MethodEd25519, MethodHS256:
	default:
		return nil, errors.New("unsupported signing method")
	}

	k := &Keyring{
		method: method,
		keys:   make(map[string]keypair, 2),
	}
	if err := k.install(kid, signingKey); err != nil {
		return nil, err
	}
	k.activeKID = kid

	return k, nil
}

// Rotate installs a new active signing key. The previous key stays in the
// ring for verification until retired.
func (k *Keyring) Rotate(kid string, signingKey []byte) error {
	kid = strings.TrimSpace(kid)
	if kid == "" {
		return errors.New("rotate requires a non-empty key id")
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if _, exists := k.keys[kid]; exists {
		return fmt.Errorf("key id %q already present in keyring", kid)
	}
	if err := k.install(kid, signingKey); err != nil {
		return err
	}
	k.activeKID = kid

	return nil
}

// Retire removes a grace-period key. Retiring the active signing key is an
// error; rotate first.
func (k *Keyring) Retire(kid string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if kid == k.activeKID {
		return errors.New("cannot retire the active signing key")
	}
	if _, exists := k.keys[kid]; !exists {
		return fmt.Errorf("key id %q not present in keyring", kid)
	}
	delete(k.keys, kid)

	return nil
}

// ActiveKID returns the id of the key currently used for signing.
func (k *Keyring) ActiveKID() string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.activeKID
}

func (k *Keyring) signingMethod() jwt.SigningMethod {
	if k.method == MethodHS256 {
		return jwt.SigningMethodHS256
	}
	return jwt.SigningMethodEdDSA
}

func (k *Keyring) signer() (string, any, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	pair, ok := k.keys[k.activeKID]
	if !ok {
		return "", nil, errors.New("keyring has no active key")
	}
	return k.activeKID, pair.sign, nil
}

func (k *Keyring) verificationKey(kid string) (any, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	pair, ok := k.keys[kid]
	if !ok {
		return nil, fmt.Errorf("unknown key id %q", kid)
	}
	return pair.verify, nil
}

// install assumes k.mu is held (or the keyring is not yet shared).
func (k *Keyring) install(kid string, signingKey []byte) error {
	switch k.method {
	case MethodHS256:
		if len(signingKey) < minHMACSecretBytes {
			return errors.New("hs256 secret must be at least 32 bytes")
		}
		secret := make([]byte, len(signingKey))
		copy(secret, signingKey)
		k.keys[kid] = keypair{sign: secret, verify: secret}
	case MethodEd25519:
		priv, err := parseEdPrivateKey(signingKey)
		if err != nil {
			return err
		}
		k.keys[kid] = keypair{sign: priv, verify: priv.Public().(ed25519.PublicKey)}
	default:
		return errors.New("unsupported signing method")
	}

	return nil
}

func parseEdPrivateKey(key []byte) (ed25519.PrivateKey, error) {
	if len(key) == ed25519.PrivateKeySize {
		out := make(ed25519.PrivateKey, ed25519.PrivateKeySize)
		copy(out, key)
		return out, nil
	}
	parsed, err := jwt.ParseEdPrivateKeyFromPEM(key)
	if err != nil {
		return nil, errors.New("invalid ed25519 private key")
	}
	edKey, ok := parsed.(ed25519.PrivateKey)
	if !ok {
		return nil, errors.New("invalid ed25519 private key type")
	}
	return edKey, nil
}
