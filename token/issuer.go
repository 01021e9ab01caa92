package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the signed token payload: account identity plus the registered
// claims (jti, iat, exp, iss).
type Claims struct {
	Identity string `json:"idn"`
	jwt.RegisteredClaims
}

// Issued describes a freshly minted token. Token is the opaque encoded value
// handed to the caller; ID is the token id tracked by the revocation set.
type Issued struct {
	Token     string
	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Issuer mints signed session tokens bound to an account identity.
//
// Issuer instances are configured during initialization and then treated as
// immutable; key rotation happens through the shared Keyring.
type Issuer struct {
	keyring *Keyring
	issuer  string
}

// NewIssuer returns an Issuer that signs with the keyring's active key.
// issuerName is embedded as the iss claim when non-empty.
func NewIssuer(keyring *Keyring, issuerName string) (*Issuer, error) {
	if keyring == nil {
		return nil, errors.New("issuer requires a keyring")
	}
	return &Issuer{keyring: keyring, issuer: issuerName}, nil
}

// Issue mints a token for the given identity with a random unique token id.
// The token expires ttl after issuance.
func (i *Issuer) Issue(identity string, ttl time.Duration) (*Issued, error) {
	if identity == "" {
		return nil, errors.New("issue requires an identity")
	}
	if ttl <= 0 {
		return nil, errors.New("issue requires a positive ttl")
	}

	now := time.Now()
	expiresAt := now.Add(ttl)
	tokenID := uuid.NewString()

	claims := Claims{
		Identity: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	if i.issuer != "" {
		claims.Issuer = i.issuer
	}

	tok := jwt.NewWithClaims(i.keyring.signingMethod(), claims)

	kid, signKey, err := i.keyring.signer()
	if err != nil {
		return nil, err
	}
	tok.Header["kid"] = kid

	encoded, err := tok.SignedString(signKey)
	if err != nil {
		return nil, err
	}

	return &Issued{
		Token:     encoded,
		ID:        tokenID,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}, nil
}
