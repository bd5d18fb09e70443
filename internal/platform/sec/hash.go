// Copyright (c) 2026 D42X. All rights reserved.

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a credential using the bcrypt algorithm.
//
// The admin UI sends a digest of the raw password rather than the password
// itself; what is bcrypt-hashed and stored here is that digest.
func HashPassword(credential string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a credential with its stored bcrypt hash.
func CheckPasswordHash(credential, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(credential))
	return err == nil
}
