/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package authx authenticates bearer tokens (HS256 JWTs) and reports its
// failures as fault values: a missing or non-bearer Authorization header is
// a *fault.MissingCredentials, a token that fails verification is a
// *fault.AuthenticationRejected and a missing role is a *fault.AccessDenied.
package authx

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"dirpx.dev/apierr/fault"
	"github.com/golang-jwt/jwt/v5"
)

// Scheme is the accepted authorization scheme.
const Scheme = "Bearer"

// ErrSecretMissing is returned by New when no signing secret is given.
var ErrSecretMissing = errors.New("authx: signing secret is empty")

// Claims are the token claims understood by the Authenticator.
type Claims struct {
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// HasRole reports whether the claims grant role.
func (c *Claims) HasRole(role string) bool {
	return c != nil && slices.Contains(c.Roles, role)
}

// Authenticator issues and verifies tokens. It is immutable and safe for
// concurrent use.
type Authenticator struct {
	key      []byte
	issuer   string
	audience string
	leeway   time.Duration
	now      func() time.Time
}

// Option configures an Authenticator.
type Option func(*Authenticator)

// WithIssuer sets the issuer written into and required from tokens.
func WithIssuer(iss string) Option { return func(a *Authenticator) { a.issuer = iss } }

// WithAudience sets the audience written into and required from tokens.
func WithAudience(aud string) Option { return func(a *Authenticator) { a.audience = aud } }

// WithLeeway tolerates clock skew when checking time-based claims.
func WithLeeway(d time.Duration) Option { return func(a *Authenticator) { a.leeway = d } }

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option { return func(a *Authenticator) { a.now = now } }

// New returns an Authenticator signing with secret.
func New(secret []byte, opts ...Option) (*Authenticator, error) {
	if len(secret) == 0 {
		return nil, ErrSecretMissing
	}
	a := &Authenticator{key: append([]byte(nil), secret...), now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Issue signs a token for subject valid for ttl.
func (a *Authenticator) Issue(subject string, ttl time.Duration, roles ...string) (string, error) {
	now := a.now()
	claims := &Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    a.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if a.audience != "" {
		claims.Audience = jwt.ClaimStrings{a.audience}
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.key)
}

// Verify parses and validates token. Failures are *fault.AuthenticationRejected
// wrapping the jwt error.
func (a *Authenticator) Verify(token string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}
	if a.audience != "" {
		opts = append(opts, jwt.WithAudience(a.audience))
	}
	if a.leeway > 0 {
		opts = append(opts, jwt.WithLeeway(a.leeway))
	}

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.key, nil
	}, opts...)
	if err != nil {
		return nil, fault.Reject(err)
	}
	if !tok.Valid {
		return nil, fault.Reject(jwt.ErrTokenInvalidClaims)
	}
	return claims, nil
}

// Authenticate extracts the bearer token from an Authorization header value
// and verifies it.
func (a *Authenticator) Authenticate(authorization string) (*Claims, error) {
	token, err := BearerToken(authorization)
	if err != nil {
		return nil, err
	}
	return a.Verify(token)
}

// BearerToken returns the token of a "Bearer <token>" header value. The
// scheme is matched case-insensitively.
func BearerToken(authorization string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(authorization), " ")
	if !ok || !strings.EqualFold(scheme, Scheme) {
		return "", &fault.MissingCredentials{Scheme: Scheme}
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", &fault.MissingCredentials{Scheme: Scheme}
	}
	return token, nil
}

// RequireRole returns a *fault.AccessDenied unless claims grant role.
func RequireRole(claims *Claims, role string) error {
	if claims.HasRole(role) {
		return nil
	}
	return fault.Deny("missing role " + role)
}

type claimsKey struct{}

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFrom returns the claims stored in ctx, if any.
func ClaimsFrom(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*Claims)
	return c, ok && c != nil
}
