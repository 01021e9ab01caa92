package middleware

import (
	"context"
	"net/http"
	"strings"

	authcore "github.com/jenca-cloud/authcore"
)

type verifyResultContextKey struct{}

// VerifyResultFromContext returns the verification result injected by
// [RequireAuth], when the request passed the guard.
func VerifyResultFromContext(ctx context.Context) (*authcore.VerifyResult, bool) {
	res, ok := ctx.Value(verifyResultContextKey{}).(*authcore.VerifyResult)
	return res, ok
}

// IdentityFromContext returns the authenticated account identity, when the
// request passed the guard.
func IdentityFromContext(ctx context.Context) (string, bool) {
	res, ok := VerifyResultFromContext(ctx)
	if !ok {
		return "", false
	}
	return res.Identity, true
}

// RequireAuth wraps a handler so it only runs for requests presenting a
// valid bearer token. Every failure, whatever the cause, is answered with
// a plain 401.
func RequireAuth(engine *authcore.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			res, err := engine.Verify(r.Context(), token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), verifyResultContextKey{}, res)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}
