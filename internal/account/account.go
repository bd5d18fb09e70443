// Copyright (c) 2026 D42X. All rights reserved.

/*
Package account implements administrator identity management.

There is exactly one role in this system: the administrator who curates the
meme catalog. The package handles credential verification, login-token
issuance, and password rotation.

Architecture:

  - Service: Orchestrates business logic (Login, ChangePassword).
  - Repository: Abstracted interface over the Postgres account table.
  - Security: Bcrypt hashes at rest, HMAC-signed tokens on the wire.

Visitors never have accounts; everything here exists for the admin panel.
*/
package account

import (
	"time"

	"github.com/google/uuid"
)

// Account is an administrator account row.
//
// UsualAddress records the IP the admin most recently logged in from; a
// login from elsewhere is visible in the audit logs but not blocked.
type Account struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"`
	IsAdmin        bool      `json:"is_admin"`
	UsualAddress   string    `json:"-"`
	LastActivityAt time.Time `json:"last_activity_at"`
	CreatedAt      time.Time `json:"created_at"`
}
