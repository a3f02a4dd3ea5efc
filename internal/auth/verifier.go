// Package auth verifies bearer credentials issued by the external identity
// provider and maps them to a domain.Identity. Verification is pure — no
// side effects, no local user state.
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wayfarer-travel/backend/internal/domain"
)

// ErrNoCredential is returned when no credential is presented or the
// Authorization header is not a well-formed "Bearer <token>" pair.
var ErrNoCredential = errors.New("missing or malformed credential")

// ErrInvalidToken is returned when the credential is well-formed but the
// provider rejects it (expired, forged, wrong audience, missing claims).
// Provider-internal detail is never attached to this error.
var ErrInvalidToken = errors.New("invalid or expired token")

// Verifier turns an opaque bearer credential into a verified identity.
// Implementations may call out to the identity provider, so the context is
// part of the contract even though the JWT implementation is local.
type Verifier interface {
	Verify(ctx context.Context, credential string) (domain.Identity, error)
}

// BearerToken extracts the token from an Authorization header value.
// Returns ErrNoCredential unless the value is exactly "Bearer <token>"
// (scheme match is case-insensitive).
func BearerToken(header string) (string, error) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrNoCredential
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrNoCredential
	}
	return token, nil
}

// providerClaims is the claim set the identity provider puts in its tokens.
// sub and email are required; name is optional.
type providerClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// JWTVerifier validates HS256 tokens against the provider's shared secret.
type JWTVerifier struct {
	secret   []byte
	audience string // empty disables the audience check
}

// NewJWTVerifier constructs a JWTVerifier. audience may be empty when the
// provider does not scope tokens to an audience.
func NewJWTVerifier(secret []byte, audience string) *JWTVerifier {
	return &JWTVerifier{secret: secret, audience: audience}
}

// Verify parses and validates the credential and returns the identity it
// asserts. All rejection causes collapse into ErrInvalidToken so callers
// cannot leak provider-internal detail.
func (v *JWTVerifier) Verify(_ context.Context, credential string) (domain.Identity, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	var claims providerClaims
	_, err := jwt.ParseWithClaims(credential, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return domain.Identity{}, ErrInvalidToken
	}
	if claims.Subject == "" || claims.Email == "" {
		return domain.Identity{}, ErrInvalidToken
	}

	return domain.Identity{
		SubjectID:   claims.Subject,
		Email:       claims.Email,
		DisplayName: claims.Name,
	}, nil
}
