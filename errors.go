package authcore

import "errors"

var (
	// ErrUnauthorized is an exported constant or variable used by the credential engine.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCredentials is an exported constant or variable used by the credential engine.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountExists is an exported constant or variable used by the credential engine.
	ErrAccountExists = errors.New("account already exists")
	// ErrAccountNotFound is an exported constant or variable used by the credential engine.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountRevoked is an exported constant or variable used by the credential engine.
	ErrAccountRevoked = errors.New("account revoked")
	// ErrIdentityInvalid is an exported constant or variable used by the credential engine.
	ErrIdentityInvalid = errors.New("invalid identity")
	// ErrPasswordPolicy is an exported constant or variable used by the credential engine.
	ErrPasswordPolicy = errors.New("password policy violation")
	// ErrTokenExpired is an exported constant or variable used by the credential engine.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenRevoked is an exported constant or variable used by the credential engine.
	ErrTokenRevoked = errors.New("token revoked")
	// ErrTokenMalformed is an exported constant or variable used by the credential engine.
	ErrTokenMalformed = errors.New("token malformed")
	// ErrTokenBadSignature is an exported constant or variable used by the credential engine.
	ErrTokenBadSignature = errors.New("token signature invalid")
	// ErrStorageUnavailable is an exported constant or variable used by the credential engine.
	ErrStorageUnavailable = errors.New("storage backend unavailable")
	// ErrEngineNotReady is an exported constant or variable used by the credential engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)
