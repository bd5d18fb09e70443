// Copyright (c) 2026 D42X. All rights reserved.

package account_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d42x/d42x-api/internal/account"
	"github.com/d42x/d42x-api/internal/platform/apperr"
	"github.com/d42x/d42x-api/internal/platform/sec"
)

// stubRepository keeps a single admin row in memory.
type stubRepository struct {
	admin           *account.Account
	updatedPassword string
	activityStamps  int
}

func (s *stubRepository) FindAdminByUsername(_ context.Context, username string) (*account.Account, error) {
	if s.admin != nil && s.admin.Username == username {
		return s.admin, nil
	}
	return nil, apperr.NotFound("Account")
}

func (s *stubRepository) FindAdminByID(_ context.Context, id uuid.UUID) (*account.Account, error) {
	if s.admin != nil && s.admin.ID == id {
		return s.admin, nil
	}
	return nil, apperr.NotFound("Account")
}

func (s *stubRepository) UpdatePassword(_ context.Context, _ uuid.UUID, hashedPassword string) error {
	s.updatedPassword = hashedPassword
	return nil
}

func (s *stubRepository) UpdateActivity(_ context.Context, _ uuid.UUID, _ string) error {
	s.activityStamps++
	return nil
}

// stubIssuer mints a predictable token.
type stubIssuer struct{}

func (stubIssuer) Issue(uid uuid.UUID, username string) (string, error) {
	return "token-for-" + username, nil
}

func newTestService(t *testing.T, password string) (*account.Service, *stubRepository, uuid.UUID) {
	t.Helper()

	hashed, err := sec.HashPassword(password)
	require.NoError(t, err)

	adminID := uuid.New()
	repo := &stubRepository{admin: &account.Account{
		ID:             adminID,
		Username:       "admin",
		HashedPassword: hashed,
		IsAdmin:        true,
	}}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return account.NewService(repo, stubIssuer{}, logger), repo, adminID
}

/*
TestService_Login covers the credential verification outcomes.
*/
func TestService_Login(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		password  string
		wantToken string
		wantErr   bool
	}{
		{"valid_credentials", "admin", "correct-digest", "token-for-admin", false},
		{"wrong_password", "admin", "wrong-digest", "", true},
		{"unknown_username", "nobody", "correct-digest", "", true},
		{"empty_credentials", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newTestService(t, "correct-digest")

			result, err := service.Login(context.Background(), account.LoginInput{
				Username: tt.username,
				Password: tt.password,
			}, "203.0.113.7")

			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, result)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, result.Token)
			assert.Equal(t, "admin", result.Username)
		})
	}
}

/*
TestService_Login_UniformRejection verifies unknown-user and wrong-password
failures are indistinguishable, so logins cannot enumerate accounts.
*/
func TestService_Login_UniformRejection(t *testing.T) {
	service, _, _ := newTestService(t, "correct-digest")

	_, unknownErr := service.Login(context.Background(), account.LoginInput{
		Username: "nobody", Password: "x",
	}, "")
	_, wrongErr := service.Login(context.Background(), account.LoginInput{
		Username: "admin", Password: "x",
	}, "")

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

/*
TestService_Login_StampsActivity verifies a successful login records the
admin's address.
*/
func TestService_Login_StampsActivity(t *testing.T) {
	service, repo, _ := newTestService(t, "correct-digest")

	_, err := service.Login(context.Background(), account.LoginInput{
		Username: "admin", Password: "correct-digest",
	}, "203.0.113.7")

	require.NoError(t, err)
	assert.Equal(t, 1, repo.activityStamps)
}

/*
TestService_ChangePassword covers credential rotation.
*/
func TestService_ChangePassword(t *testing.T) {
	tests := []struct {
		name    string
		current string
		next    string
		wantErr bool
	}{
		{"valid_rotation", "correct-digest", "new-digest-value", false},
		{"wrong_current", "bad-digest", "new-digest-value", true},
		{"too_short_new", "correct-digest", "short", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, adminID := newTestService(t, "correct-digest")

			err := service.ChangePassword(context.Background(), adminID, account.ChangePasswordInput{
				CurrentPassword: tt.current,
				NewPassword:     tt.next,
			})

			if tt.wantErr {
				require.Error(t, err)
				assert.Empty(t, repo.updatedPassword)
				return
			}

			require.NoError(t, err)
			assert.True(t, sec.CheckPasswordHash(tt.next, repo.updatedPassword))
		})
	}
}
