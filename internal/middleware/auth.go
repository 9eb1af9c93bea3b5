package middleware

import (
	"context"
	"net/http"

	"github.com/KartikeAnuj/Disaster-Management/internal/domain"

	"github.com/google/uuid"
)

type ctxKey string

const identityKey ctxKey = "identity"

// Identity resolves the caller from the headers set by the upstream auth
// proxy (the external identity collaborator). Missing or malformed headers
// yield an anonymous identity; role decisions stay in the service layer.
func Identity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := domain.Anonymous()

			if raw := r.Header.Get("X-User-ID"); raw != "" {
				if id, err := uuid.Parse(raw); err == nil {
					identity = domain.Identity{
						ID:   id,
						Role: r.Header.Get("X-User-Role"),
					}
				}
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the resolved identity, or anonymous if the
// middleware never ran.
func IdentityFromContext(ctx context.Context) domain.Identity {
	if identity, ok := ctx.Value(identityKey).(domain.Identity); ok {
		return identity
	}
	return domain.Anonymous()
}

// WithIdentity injects an identity directly; used by handler tests.
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// APIKey guards the admin group. An empty configured key disables the check
// (local runs).
func APIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key != "" && r.Header.Get("X-API-Key") != key {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
