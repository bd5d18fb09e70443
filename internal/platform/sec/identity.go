// Copyright (c) 2026 D42X. All rights reserved.

package sec

import "github.com/google/uuid"

// Identity is the authenticated caller attached to a request's context.
//
// It lives for the duration of one dispatch and is never persisted; the
// server holds no session state between requests.
type Identity struct {
	// ID is the account identifier carried in the token's UID claim.
	ID uuid.UUID
	// Username is the display name carried in the token's USERNAME claim.
	Username string
}
