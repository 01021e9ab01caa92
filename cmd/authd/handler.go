package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"

	authcore "github.com/jenca-cloud/authcore"
	"github.com/jenca-cloud/authcore/metrics/export/prometheus"
	"github.com/jenca-cloud/authcore/middleware"
)

type credentialsRequest struct {
	Identity string `json:"identity"`
	Password string `json:"password"`
}

type errorResponse struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

func newHandler(engine *authcore.Engine, logger *slog.Logger) http.Handler {
	h := &handler{engine: engine, logger: logger}
	guard := middleware.RequireAuth(engine)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /signup", h.signup)
	mux.HandleFunc("POST /login", h.login)
	mux.HandleFunc("POST /logout", h.logout)
	mux.HandleFunc("GET /status", h.status)
	mux.Handle("DELETE /users/{identity}", guard(http.HandlerFunc(h.deleteUser)))
	mux.Handle("GET /metrics", prometheus.NewPrometheusExporter(engine).Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return mux
}

type handler struct {
	engine *authcore.Engine
	logger *slog.Logger
}

func (h *handler) signup(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	account, err := h.engine.Signup(requestContext(r), req.Identity, req.Password)
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"identity": account.Identity})
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	result, err := h.engine.Login(requestContext(r), req.Identity, req.Password)
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"identity":   result.Identity,
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
	})
}

func (h *handler) logout(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required.",
			"The request carries no bearer token.")
		return
	}

	if err := h.engine.Logout(requestContext(r), token); err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{})
}

// status reports whether the presented token authenticates a user. An absent
// or invalid token is not an error here; the response just says so.
func (h *handler) status(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"is_authenticated": false})
		return
	}

	result, err := h.engine.Verify(requestContext(r), token)
	if err != nil {
		if errors.Is(err, authcore.ErrStorageUnavailable) {
			h.writeEngineError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"is_authenticated": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"is_authenticated": true,
		"identity":         result.Identity,
	})
}

func (h *handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	identity := r.PathValue("identity")

	if err := h.engine.RevokeAccount(requestContext(r), identity); err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"identity": identity})
}

func (h *handler) writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, authcore.ErrAccountExists):
		writeError(w, http.StatusConflict, "There is already a user with the given identity.",
			"A user already exists with the requested identity.")
	case errors.Is(err, authcore.ErrIdentityInvalid):
		writeError(w, http.StatusBadRequest, "There was an error validating the given arguments.",
			"The identity is empty, too long, or contains forbidden characters.")
	case errors.Is(err, authcore.ErrPasswordPolicy):
		writeError(w, http.StatusBadRequest, "There was an error validating the given arguments.",
			"The password does not satisfy the password policy.")
	case errors.Is(err, authcore.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, "The requested user does not exist.",
			"No user exists with the requested identity.")
	case errors.Is(err, authcore.ErrStorageUnavailable):
		h.logger.Error("backend unavailable", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusServiceUnavailable, "The service is temporarily unavailable.",
			"A backing store could not be reached. Retry later.")
	case errors.Is(err, authcore.ErrInvalidCredentials), errors.Is(err, authcore.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "The credentials provided were incorrect.",
			"The identity or password does not match, or the token is not valid.")
	default:
		h.logger.Error("unhandled engine error", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "An internal error occurred.",
			"The request could not be processed.")
	}
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "There was an error validating the given arguments.",
			"The request body is not a valid credentials document.")
		return credentialsRequest{}, false
	}
	if req.Identity == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "There was an error validating the given arguments.",
			"Both identity and password are required.")
		return credentialsRequest{}, false
	}

	return req, true
}

func bearerToken(r *http.Request) (string, bool) {
	const prefix = "Bearer "
	value := r.Header.Get("Authorization")
	if !strings.HasPrefix(value, prefix) {
		return "", false
	}
	token := value[len(prefix):]
	return token, token != ""
}

func requestContext(r *http.Request) context.Context {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return authcore.WithClientIP(r.Context(), host)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, title, detail string) {
	writeJSON(w, status, errorResponse{Title: title, Detail: detail})
}
