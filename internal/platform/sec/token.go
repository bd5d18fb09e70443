// Copyright (c) 2026 D42X. All rights reserved.

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (token signing, the body
// cipher, password hashing) from the domain logic. It is Infrastructure,
// injected into the Application layer via small interfaces.
package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/d42x/d42x-api/internal/platform/constants"
)

// AuthClaims is the payload embedded inside a signed access token.
//
// # Why custom claims?
//
// By embedding the account id and username directly inside the token, the
// authentication middleware can reconstruct the caller's identity WITHOUT
// querying the database on every single API request.
//
// The uppercase JSON keys are part of the wire contract with the admin UI.
type AuthClaims struct {
	jwt.RegisteredClaims

	UID      uuid.UUID `json:"UID"`
	Username string    `json:"USERNAME"`
}

// TokenService signs and verifies HMAC-SHA256 access tokens.
//
// The signing secret, issuer, audience, and lifetime are fixed at
// construction and never mutated; a single instance is shared by reference
// across all request handlers.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	lifetime time.Duration
}

// NewTokenService creates a TokenService with a configured symmetric secret.
//
// The secret comes from configuration rather than being generated per
// process, so outstanding tokens stay valid across restarts and replicas.
func NewTokenService(secret []byte, issuer, audience string, lifetime time.Duration) *TokenService {
	return &TokenService{
		secret:   secret,
		issuer:   issuer,
		audience: audience,
		lifetime: lifetime,
	}
}

// Issue creates a signed token for an administrator who just logged in.
//
// The jti claim is a fresh random UUID per issuance; it is not tracked
// server-side and exists only to make each token unique.
func (service *TokenService) Issue(uid uuid.UUID, username string) (string, error) {
	now := time.Now()

	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    service.issuer,
			Subject:   constants.TokenSubject,
			Audience:  jwt.ClaimStrings{service.audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(service.lifetime)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
		UID:      uid,
		Username: username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify checks the signature and the full claim set of a token string.
//
// The parser's own time validation is disabled so that every predicate below
// is evaluated by one explicit function; the accept/reject outcome never
// depends on which check happens to run first.
func (service *TokenService) Verify(tokenString string) (*AuthClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		return service.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	if err := service.validateClaims(claims, time.Now()); err != nil {
		return nil, err
	}

	return claims, nil
}

// validateClaims enforces the mandatory claim set.
//
// Every registered claim must be present, the fixed claims must match the
// configured constants, and the three time predicates are strict:
// exp > now, nbf < now, iat < now.
func (service *TokenService) validateClaims(claims *AuthClaims, now time.Time) error {
	reg := claims.RegisteredClaims

	valid := reg.Issuer == service.issuer &&
		reg.Subject == constants.TokenSubject &&
		containsAudience(reg.Audience, service.audience) &&
		reg.ExpiresAt != nil && reg.ExpiresAt.After(now) &&
		reg.NotBefore != nil && reg.NotBefore.Before(now) &&
		reg.IssuedAt != nil && reg.IssuedAt.Before(now) &&
		reg.ID != "" &&
		claims.UID != uuid.Nil &&
		claims.Username != ""

	if !valid {
		return fmt.Errorf("sec: token claims rejected")
	}

	return nil
}

// containsAudience reports whether the aud claim includes the expected value.
func containsAudience(audience jwt.ClaimStrings, expected string) bool {
	for _, a := range audience {
		if a == expected {
			return true
		}
	}
	return false
}
