// Copyright (c) 2026 D42X. All rights reserved.

package sec

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"fmt"
)

// BodyCipher encrypts and decrypts HTTP bodies with AES-CBC, PKCS#7 padding,
// and a hex envelope for transport.
//
// # Determinism
//
// The IV is fixed at construction, so identical plaintexts always produce
// identical ciphertexts. The threat model here is payload obfuscation against
// casual interception, not semantic security against a chosen-plaintext
// adversary. A per-message IV would change the wire contract with the UI.
//
// # Concurrency
//
// Key and IV are read-only after construction; a single instance is shared
// by reference across all request handlers.
type BodyCipher struct {
	block cipher.Block
	iv    []byte
}

// NewBodyCipher creates a BodyCipher from a 16-byte key and 16-byte IV.
func NewBodyCipher(key, iv []byte) (*BodyCipher, error) {
	if len(key) != aes.BlockSize {
		return nil, fmt.Errorf("sec: AES key must be %d bytes, got %d", aes.BlockSize, len(key))
	}
	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("sec: AES IV must be %d bytes, got %d", aes.BlockSize, len(iv))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to initialize cipher: %w", err)
	}

	return &BodyCipher{
		block: block,
		iv:    append([]byte(nil), iv...),
	}, nil
}

// Encrypt pads, encrypts, and hex-encodes a plaintext body.
//
// An empty body is returned unchanged: zero-length payloads are never
// ciphered in either direction.
func (c *BodyCipher) Encrypt(plaintext []byte) ([]byte, error) {
	if len(plaintext) == 0 {
		return plaintext, nil
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)

	ciphertext := make([]byte, len(padded))
	encrypter := cipher.NewCBCEncrypter(c.block, c.iv)
	encrypter.CryptBlocks(ciphertext, padded)

	encoded := make([]byte, hex.EncodedLen(len(ciphertext)))
	hex.Encode(encoded, ciphertext)

	return encoded, nil
}

// Decrypt is the inverse of [BodyCipher.Encrypt].
//
// It fails on malformed hex, on ciphertext that is not a whole number of
// blocks, and on invalid padding; a partially decrypted body is never
// returned.
func (c *BodyCipher) Decrypt(text []byte) ([]byte, error) {
	if len(text) == 0 {
		return text, nil
	}

	ciphertext := make([]byte, hex.DecodedLen(len(text)))
	if _, err := hex.Decode(ciphertext, text); err != nil {
		return nil, fmt.Errorf("sec: envelope is not valid hex: %w", err)
	}

	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("sec: ciphertext length %d is not a multiple of the block size", len(ciphertext))
	}

	plaintext := make([]byte, len(ciphertext))
	decrypter := cipher.NewCBCDecrypter(c.block, c.iv)
	decrypter.CryptBlocks(plaintext, ciphertext)

	unpadded, err := pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		return nil, err
	}

	return unpadded, nil
}

// pkcs7Pad appends 1..blockSize bytes, each holding the pad length.
func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padLen)}, padLen)...)
}

// pkcs7Unpad strips and validates PKCS#7 padding.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("sec: cannot unpad empty data")
	}

	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize || padLen > len(data) {
		return nil, fmt.Errorf("sec: invalid padding length %d", padLen)
	}

	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, fmt.Errorf("sec: invalid padding bytes")
		}
	}

	return data[:len(data)-padLen], nil
}
