package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist — or exists but is not owned by the requesting
// subject. The two cases are deliberately indistinguishable so the API never
// confirms the existence of another user's data.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing title, rating out of range).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")
