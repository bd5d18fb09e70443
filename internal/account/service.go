// Copyright (c) 2026 D42X. All rights reserved.

package account

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/d42x/d42x-api/internal/platform/apperr"
	"github.com/d42x/d42x-api/internal/platform/sec"
	"github.com/d42x/d42x-api/internal/platform/validate"
)

// TokenIssuer is the contract for minting login tokens.
type TokenIssuer interface {
	Issue(uid uuid.UUID, username string) (string, error)
}

// Service implements administrator authentication use cases.
type Service struct {
	repo   Repository
	tokens TokenIssuer
	logger *slog.Logger
}

// NewService constructs a new account Service.
func NewService(repo Repository, tokens TokenIssuer, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		logger: logger,
	}
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
//
// Password is the credential digest computed by the admin UI before
// submission; it is compared against the stored bcrypt hash.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is a successfully established admin session.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Login verifies admin credentials and issues a signed bearer token.
//
// Every failure mode (unknown username, wrong credential) answers the same
// Unauthorized error so login attempts cannot enumerate accounts.
func (service *Service) Login(ctx context.Context, input LoginInput, address string) (*LoginResult, error) {
	v := &validate.Validator{}
	if err := v.Required("username", input.Username).Required("password", input.Password).Err(); err != nil {
		return nil, err
	}

	admin, err := service.repo.FindAdminByUsername(ctx, input.Username)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid username or password")
	}

	if !sec.CheckPasswordHash(input.Password, admin.HashedPassword) {
		return nil, apperr.Unauthorized("Invalid username or password")
	}

	token, err := service.tokens.Issue(admin.ID, admin.Username)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	// Activity stamping is best effort; a failed stamp never blocks a login.
	if err := service.repo.UpdateActivity(ctx, admin.ID, address); err != nil {
		service.logger.WarnContext(ctx, "account_activity_stamp_failed",
			slog.String("admin_id", admin.ID.String()),
			slog.Any("error", err),
		)
	}

	service.logger.InfoContext(ctx, "admin_logged_in",
		slog.String("admin_id", admin.ID.String()),
		slog.String("address", address),
	)

	return &LoginResult{Token: token, Username: admin.Username}, nil
}

// # Credential Rotation

// ChangePasswordInput carries the current and replacement credentials.
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword rotates the admin credential after verifying the current one.
func (service *Service) ChangePassword(ctx context.Context, adminID uuid.UUID, input ChangePasswordInput) error {
	v := &validate.Validator{}
	err := v.
		Required("current_password", input.CurrentPassword).
		Required("new_password", input.NewPassword).
		MinLen("new_password", input.NewPassword, 8).
		Err()
	if err != nil {
		return err
	}

	admin, err := service.repo.FindAdminByID(ctx, adminID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(input.CurrentPassword, admin.HashedPassword) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hashed, err := sec.HashPassword(input.NewPassword)
	if err != nil {
		return apperr.Internal(err)
	}

	if err := service.repo.UpdatePassword(ctx, adminID, hashed); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "admin_password_changed",
		slog.String("admin_id", adminID.String()),
	)
	return nil
}
