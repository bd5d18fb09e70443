// Copyright (c) 2026 D42X. All rights reserved.

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Protection Pipeline: Route prefixes and content-type sentinels.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "d42x-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Protection Pipeline

const (
	// APIPrefix marks routes whose bodies travel through the cipher gate.
	APIPrefix = "/api/"

	// AdminPrefix marks routes that require an authenticated administrator.
	AdminPrefix = "/api/admin"

	// LoginPath is exempt from authentication: it is where tokens come from.
	LoginPath = "/api/admin/login"

	// ContentTypeCiphered is the sentinel content type that signals
	// "this body is hex-encoded ciphertext of a JSON document".
	ContentTypeCiphered = "text/plain;charset=UTF-8"

	// ContentTypeJSON is what a decrypted request body is rewritten to.
	ContentTypeJSON = "application/json;charset=UTF-8"
)

// # Authentication

const (
	// TokenSubject is the fixed 'sub' claim stamped on login tokens.
	TokenSubject = "user.log_in"

	// BearerPrefix is the required Authorization header scheme.
	BearerPrefix = "Bearer "
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
)

// # Response Fields

const (
	FieldCode  = "code"
	FieldError = "error"
)

// # Cache Defaults

const (
	// DefaultCacheTTL bounds the age of any cached read result.
	DefaultCacheTTL = 5 * time.Minute

	// DefaultCacheCapacity is the global entry-count ceiling shared across keys.
	DefaultCacheCapacity = 256
)
