// Copyright (c) 2026 D42X. All rights reserved.

package account

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for administrator accounts.
type Repository interface {
	// FindAdminByUsername returns the admin account with the given username.
	// Non-admin rows are invisible to this lookup.
	FindAdminByUsername(ctx context.Context, username string) (*Account, error)

	// FindAdminByID returns the admin account with the given ID.
	FindAdminByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// UpdatePassword replaces the stored bcrypt hash.
	UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error

	// UpdateActivity stamps the last-activity time and usual address.
	UpdateActivity(ctx context.Context, id uuid.UUID, address string) error
}
