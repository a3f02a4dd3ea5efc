package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/wayfarer-travel/backend/internal/auth"
	"github.com/wayfarer-travel/backend/internal/domain"
)

// TokenVerifier is the slice of the auth package the middleware depends on.
type TokenVerifier interface {
	Verify(ctx context.Context, credential string) (domain.Identity, error)
}

// IdentitySyncer keeps the local user record in step with the verified
// identity. Satisfied by repo.UserRepo.
type IdentitySyncer interface {
	Upsert(ctx context.Context, identity domain.Identity) (domain.User, error)
}

// identityCtxKey is the private context key for the authenticated identity.
type identityCtxKey struct{}

// IdentityFrom returns the authenticated identity attached to the request
// context by RequireAuth. ok is false on routes that never passed through it.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityCtxKey{}).(domain.Identity)
	return id, ok
}

// WithIdentity returns a context carrying the given identity.
// Exported for handler tests, which stand in for RequireAuth.
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, identity)
}

// RequireAuth returns a middleware that authenticates every request:
// extract bearer credential → verify against the identity provider →
// upsert the local user record → attach the identity to the context.
// Any step short-circuits with 401 and a JSON error body; no handler runs.
//
// The upsert is best-effort by default: a store failure there is logged and
// the request proceeds on the verified identity alone (availability over
// consistency). Set requireSync to reject with 500 instead.
func RequireAuth(verifier TokenVerifier, users IdentitySyncer, requireSync bool, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.BearerToken(r.Header.Get("Authorization"))
			if err != nil {
				reject(w, http.StatusUnauthorized, err.Error())
				return
			}

			identity, err := verifier.Verify(r.Context(), token)
			if err != nil {
				reject(w, http.StatusUnauthorized, err.Error())
				return
			}

			if _, err := users.Upsert(r.Context(), identity); err != nil {
				if requireSync {
					log.ErrorContext(r.Context(), "user sync failed",
						"subject", identity.SubjectID, "error", err)
					reject(w, http.StatusInternalServerError, "failed to sync user record")
					return
				}
				log.WarnContext(r.Context(), "user sync failed, continuing",
					"subject", identity.SubjectID, "error", err)
			}

			ctx := WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// reject writes the flat {"error": ...} body used for authentication failures.
func reject(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
