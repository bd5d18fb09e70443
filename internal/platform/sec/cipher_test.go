// Copyright (c) 2026 D42X. All rights reserved.

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d42x/d42x-api/internal/platform/sec"
)

var (
	testKey = []byte("0123456789abcdef")
	testIV  = []byte("fedcba9876543210")
)

func newTestCipher(t *testing.T) *sec.BodyCipher {
	t.Helper()
	bc, err := sec.NewBodyCipher(testKey, testIV)
	require.NoError(t, err)
	return bc
}

/*
TestBodyCipher_New rejects keys and IVs that are not exactly one AES block.
*/
func TestBodyCipher_New(t *testing.T) {
	tests := []struct {
		name    string
		key     []byte
		iv      []byte
		wantErr bool
	}{
		{"valid", testKey, testIV, false},
		{"short_key", []byte("short"), testIV, true},
		{"long_key", append(testKey, 'x'), testIV, true},
		{"short_iv", testKey, []byte("short"), true},
		{"empty_iv", testKey, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sec.NewBodyCipher(tt.key, tt.iv)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

/*
TestBodyCipher_RoundTrip verifies encrypt and decrypt are mutual inverses
for bodies of every alignment relative to the block size.
*/
func TestBodyCipher_RoundTrip(t *testing.T) {
	bc := newTestCipher(t)

	tests := []struct {
		name  string
		plain string
	}{
		{"single_byte", "x"},
		{"json_object", `{"username":"admin","categories":["cats"]}`},
		{"exact_block", "0123456789abcdef"},
		{"one_over_block", "0123456789abcdefg"},
		{"multibyte_utf8", "貓咪梗圖 😼"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := bc.Encrypt([]byte(tt.plain))
			require.NoError(t, err)
			assert.NotEqual(t, tt.plain, string(enc))

			dec, err := bc.Decrypt(enc)
			require.NoError(t, err)
			assert.Equal(t, tt.plain, string(dec))
		})
	}
}

/*
TestBodyCipher_EmptyIdentity verifies empty bodies pass through unciphered
in both directions.
*/
func TestBodyCipher_EmptyIdentity(t *testing.T) {
	bc := newTestCipher(t)

	enc, err := bc.Encrypt(nil)
	require.NoError(t, err)
	assert.Empty(t, enc)

	dec, err := bc.Decrypt([]byte{})
	require.NoError(t, err)
	assert.Empty(t, dec)
}

/*
TestBodyCipher_Deterministic verifies the fixed IV makes identical plaintexts
produce identical envelopes. This is part of the wire contract, not a bug.
*/
func TestBodyCipher_Deterministic(t *testing.T) {
	bc := newTestCipher(t)

	first, err := bc.Encrypt([]byte("same input"))
	require.NoError(t, err)
	second, err := bc.Encrypt([]byte("same input"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

/*
TestBodyCipher_DecryptErrors verifies that malformed envelopes fail loudly
instead of yielding garbled plaintext.
*/
func TestBodyCipher_DecryptErrors(t *testing.T) {
	bc := newTestCipher(t)

	tests := []struct {
		name string
		text string
	}{
		{"not_hex", "zzzz-not-hex-zzzz"},
		{"odd_hex_length", "abc"},
		// 8 bytes of valid hex: half a block.
		{"misaligned_ciphertext", "0011223344556677"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := bc.Decrypt([]byte(tt.text))
			assert.Error(t, err)
		})
	}
}

/*
TestBodyCipher_BadPadding verifies that ciphertext which decrypts to invalid
PKCS#7 padding is rejected.
*/
func TestBodyCipher_BadPadding(t *testing.T) {
	bc := newTestCipher(t)

	enc, err := bc.Encrypt([]byte("valid payload"))
	require.NoError(t, err)

	// Flip the final hex digit: CBC corrupts the last plaintext block,
	// which holds the padding.
	tampered := append([]byte(nil), enc...)
	if tampered[len(tampered)-1] == 'a' {
		tampered[len(tampered)-1] = 'b'
	} else {
		tampered[len(tampered)-1] = 'a'
	}

	_, err = bc.Decrypt(tampered)
	assert.Error(t, err)
}
