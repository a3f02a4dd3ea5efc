package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wayfarer-travel/backend/internal/domain"
	"github.com/wayfarer-travel/backend/internal/middleware"
)

// requireIdentity fetches the authenticated identity from the request
// context. Protected routes always pass through middleware.RequireAuth, so a
// missing identity means a wiring mistake — reported as 401 rather than a
// panic.
func requireIdentity(w http.ResponseWriter, r *http.Request) (domain.Identity, bool) {
	ident, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
	}
	return ident, ok
}

// pathID parses the named URL parameter as a UUID. An unparseable value can
// never address a row, so it is reported as not found (uniform 404 policy —
// same response as a well-formed ID that matches nothing).
func pathID(w http.ResponseWriter, r *http.Request, name, notFoundMsg string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeJSON(w, http.StatusNotFound, notFoundBody(notFoundMsg))
		return uuid.UUID{}, false
	}
	return id, true
}
