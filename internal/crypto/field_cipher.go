// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Noteguard Authors

// Package crypto implements field-level authenticated encryption on top of
// the key vault, plus the deterministic passphrase derivation used to open
// the outer encrypted storage engine.
package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/noteguard/noteguard/internal/keystore"
	"github.com/noteguard/noteguard/internal/logger"
)

// ivSize is the AES-GCM nonce length. Fixed at 12 bytes, which is why a
// single length-prefix byte suffices in the storage encoding.
const ivSize = 12

// EncryptedBlob is a transient encryption result: a fresh random IV and the
// ciphertext with its 16-byte authentication tag appended. Blobs are
// produced per field per write and replaced on every update, never mutated
// in place.
type EncryptedBlob struct {
	IV         []byte
	Ciphertext []byte
}

// FieldCipher encrypts and decrypts individual byte strings under the
// vault's content key. Every call resolves the key handle anew so that a
// wiped key fails deterministically instead of serving a stale cached AEAD.
type FieldCipher struct {
	vault  *keystore.KeyVault
	alias  string
	logger *logger.Logger
}

// NewFieldCipher constructs a FieldCipher over the content-encryption key.
func NewFieldCipher(vault *keystore.KeyVault, log *logger.Logger) *FieldCipher {
	return &FieldCipher{vault: vault, alias: keystore.ContentKeyAlias, logger: log}
}

// Encrypt seals plaintext with a fresh random 12-byte IV. The IV is never
// reused with the same key: every call draws new randomness from the OS
// CSPRNG. The content key is materialized lazily on the first call.
func (c *FieldCipher) Encrypt(plaintext []byte) (EncryptedBlob, error) {
	handle, err := c.vault.GetOrCreate(c.alias)
	if err != nil {
		return EncryptedBlob{}, c.classify(err)
	}

	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return EncryptedBlob{}, fmt.Errorf("%w: generate iv: %v", ErrUnknown, err)
	}

	return EncryptedBlob{IV: iv, Ciphertext: handle.Seal(iv, plaintext)}, nil
}

// Decrypt opens blob and returns the plaintext. Failures are classified
// into the closed sentinel set of this package:
//
//   - key missing or invalidated: ErrKeyInvalidated
//   - key store locked: ErrAuthenticationRequired
//   - malformed blob or tag mismatch: ErrDataCorrupted
//   - anything else: ErrUnknown
//
// Decrypt never creates a key: after a wipe the old ciphertext must fail,
// not silently re-key.
func (c *FieldCipher) Decrypt(blob EncryptedBlob) ([]byte, error) {
	handle, err := c.vault.Get(c.alias)
	if err != nil {
		return nil, c.classify(err)
	}

	if len(blob.IV) != handle.NonceSize() {
		return nil, fmt.Errorf("%w: iv length %d", ErrDataCorrupted, len(blob.IV))
	}

	plaintext, err := handle.Open(blob.IV, blob.Ciphertext)
	if err != nil {
		// gcm.Open fails only on authentication-tag mismatch.
		return nil, fmt.Errorf("%w: %v", ErrDataCorrupted, err)
	}
	return plaintext, nil
}

// EncryptString encrypts a UTF-8 string and returns the storage encoding
// base64([1-byte iv-length][iv][ciphertext||tag]).
func (c *FieldCipher) EncryptString(plaintext string) (string, error) {
	blob, err := c.Encrypt([]byte(plaintext))
	if err != nil {
		return "", err
	}

	packed := make([]byte, 0, 1+len(blob.IV)+len(blob.Ciphertext))
	packed = append(packed, byte(len(blob.IV)))
	packed = append(packed, blob.IV...)
	packed = append(packed, blob.Ciphertext...)

	return base64.StdEncoding.EncodeToString(packed), nil
}

// DecryptString reverses EncryptString. Encoding-level damage (bad base64,
// truncation, impossible IV length) is classified as ErrDataCorrupted, the
// same as a tag mismatch: in both cases the stored value cannot be trusted.
func (c *FieldCipher) DecryptString(encoded string) (string, error) {
	packed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: decode base64: %v", ErrDataCorrupted, err)
	}
	if len(packed) < 1 {
		return "", fmt.Errorf("%w: empty blob", ErrDataCorrupted)
	}

	ivLen := int(packed[0])
	if len(packed) < 1+ivLen {
		return "", fmt.Errorf("%w: truncated iv", ErrDataCorrupted)
	}

	blob := EncryptedBlob{
		IV:         packed[1 : 1+ivLen],
		Ciphertext: packed[1+ivLen:],
	}
	plaintext, err := c.Decrypt(blob)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// classify maps keystore errors onto this package's sentinel set.
func (c *FieldCipher) classify(err error) error {
	switch {
	case errors.Is(err, keystore.ErrKeyNotFound),
		errors.Is(err, keystore.ErrInvalidKeyMaterial):
		return fmt.Errorf("%w: %v", ErrKeyInvalidated, err)
	case errors.Is(err, keystore.ErrAuthenticationRequired):
		return fmt.Errorf("%w: %v", ErrAuthenticationRequired, err)
	default:
		return fmt.Errorf("%w: %v", ErrUnknown, err)
	}
}
