// Copyright (c) 2026 D42X. All rights reserved.

package middleware

import (
	"net/http"
	"strings"

	"github.com/d42x/d42x-api/internal/platform/apperr"
	"github.com/d42x/d42x-api/internal/platform/constants"
	"github.com/d42x/d42x-api/internal/platform/ctxutil"
	"github.com/d42x/d42x-api/internal/platform/respond"
	"github.com/d42x/d42x-api/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from [sec.TokenService],
// allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	Verify(tokenString string) (*sec.AuthClaims, error)
}

// exemptMethods pass the gate without a token: CORS pre-flight and HEAD
// probes never carry credentials.
var exemptMethods = map[string]bool{
	http.MethodOptions: true,
	http.MethodHead:    true,
}

// Authenticate gates the administrative API behind bearer-token authentication.
//
// # Flow
//
//  1. Paths outside the admin prefix, the login endpoint itself, and exempt
//     methods dispatch untouched: public endpoints bypass the gate entirely.
//  2. Everything else requires 'Authorization: Bearer <token>'. A missing
//     header, a malformed scheme, or a failed verification answers
//     401 Unauthorized immediately; the handler never runs.
//  3. On success a [*sec.Identity] built from the UID/USERNAME claims is
//     attached to the request context. Downstream handlers on gated paths
//     may assume the identity is present.
//
// The 401 message is identical for every failure mode so a caller cannot
// probe which check rejected them.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			path := request.URL.Path

			// ── 1. Public Traffic ─────────────────────────────────────────────
			if !strings.HasPrefix(path, constants.AdminPrefix) ||
				path == constants.LoginPath ||
				exemptMethods[request.Method] {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Bearer Extraction ──────────────────────────────────────────
			authHeader := request.Header.Get(constants.HeaderAuthorization)
			token, hasPrefix := strings.CutPrefix(authHeader, constants.BearerPrefix)
			if authHeader == "" || !hasPrefix || token == "" {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.Verify(token)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 4. Identity Injection ─────────────────────────────────────────
			identity := &sec.Identity{ID: claims.UID, Username: claims.Username}
			ctx := ctxutil.WithIdentity(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
