package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMalformed is returned when a token cannot be decoded or carries an
	// invalid claim set.
	ErrMalformed = errors.New("malformed token")
	// ErrExpired is returned when a structurally valid, correctly signed
	// token is past its expiry.
	ErrExpired = errors.New("token expired")
	// ErrBadSignature is returned when the signature does not verify against
	// any key in the ring, or the key id is unknown.
	ErrBadSignature = errors.New("token signature invalid")
)

// Verifier validates presented tokens: signature against the current and
// grace-period keys, then expiry against the wall clock. Revocation is the
// engine's concern, checked after verification succeeds.
type Verifier struct {
	keyring *Keyring
	issuer  string
	leeway  time.Duration
}

// NewVerifier returns a Verifier bound to the given keyring. issuerName, when
// non-empty, must match the token's iss claim. leeway tolerates small clock
// skew on expiry checks.
func NewVerifier(keyring *Keyring, issuerName string, leeway time.Duration) (*Verifier, error) {
	if keyring == nil {
		return nil, errors.New("verifier requires a keyring")
	}
	if leeway < 0 || leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}
	return &Verifier{keyring: keyring, issuer: issuerName, leeway: leeway}, nil
}

// Verify decodes and validates the token. The first failed check wins:
// ErrMalformed, ErrBadSignature, or ErrExpired.
func (v *Verifier) Verify(tokenStr string) (*Claims, error) {
	return v.parse(tokenStr, false)
}

// Extract validates the signature but ignores expiry. Used for logout, where
// an already-expired token still names the token id to revoke.
func (v *Verifier) Extract(tokenStr string) (*Claims, error) {
	return v.parse(tokenStr, true)
}

func (v *Verifier) parse(tokenStr string, skipExpiry bool) (*Claims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{v.keyring.signingMethod().Alg()}),
	}
	if skipExpiry {
		options = append(options, jwt.WithoutClaimsValidation())
	} else {
		if v.leeway > 0 {
			options = append(options, jwt.WithLeeway(v.leeway))
		}
		if v.issuer != "" {
			options = append(options, jwt.WithIssuer(v.issuer))
		}
	}

	parser := jwt.NewParser(options...)
	tok, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("missing kid")
		}
		return v.keyring.verificationKey(kid)
	})
	if err != nil {
		return nil, classifyParseError(err)
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, fmt.Errorf("%w: invalid claims", ErrMalformed)
	}
	if claims.ID == "" || claims.Identity == "" {
		return nil, fmt.Errorf("%w: missing identity or token id", ErrMalformed)
	}

	return claims, nil
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrBadSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpired, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
