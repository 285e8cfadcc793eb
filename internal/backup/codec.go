// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Noteguard Authors

// Package backup implements the password-protected portable backup format.
//
// A backup is restorable on a key-invalidated or entirely different device:
// the key is derived from the user's password alone, independent of the key
// vault. File layout: salt(16) || iv(12) || ciphertext||tag, where the
// plaintext is a JSON-encoded [models.BackupBundle].
package backup

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"golang.org/x/crypto/pbkdf2"

	"github.com/noteguard/noteguard/internal/logger"
	"github.com/noteguard/noteguard/models"
)

const (
	saltSize   = 16
	ivSize     = 12
	keyLen     = 32 // 256-bit backup key
	iterations = 100_000
)

// Codec encrypts and decrypts backup bundles with a password-derived key.
type Codec struct {
	iterations int
	logger     *logger.Logger
}

// NewCodec constructs a backup Codec with the standard PBKDF2 cost.
func NewCodec(log *logger.Logger) *Codec {
	return &Codec{iterations: iterations, logger: log}
}

// CreateBackup serializes notes into a bundle and encrypts it under a key
// derived from password via PBKDF2-HMAC-SHA256 with a fresh random salt.
// The salt and IV are fresh per backup, so two backups of identical notes
// never share ciphertext.
func (c *Codec) CreateBackup(notes []models.Note, password string) ([]byte, error) {
	bundle := models.BackupBundle{
		Version:   models.BackupBundleVersion,
		Timestamp: time.Now().UnixMilli(),
		Notes:     make([]models.BackupNote, 0, len(notes)),
	}
	for _, n := range notes {
		bundle.Notes = append(bundle.Notes, n.ToBackupNote())
	}

	plaintext, err := json.Marshal(bundle)
	if err != nil {
		return nil, fmt.Errorf("encode backup bundle: %w", err)
	}

	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate backup salt: %w", err)
	}
	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, fmt.Errorf("generate backup iv: %w", err)
	}

	gcm, err := c.aead(password, salt)
	if err != nil {
		return nil, err
	}

	ciphertext := gcm.Seal(nil, iv, plaintext, nil)

	out := make([]byte, 0, saltSize+ivSize+len(ciphertext))
	out = append(out, salt...)
	out = append(out, iv...)
	out = append(out, ciphertext...)

	c.logger.Info().Int("notes", len(notes)).Int("bytes", len(out)).
		Msg("backup created")
	return out, nil
}

// RestoreBackup re-derives the key from the embedded salt and the supplied
// password and decrypts the bundle. Inputs shorter than the salt and IV
// headers fail with ErrBackupTooShort; any decryption failure is collapsed
// into the single ambiguous ErrWrongPasswordOrCorrupted and no partial data
// is ever returned.
func (c *Codec) RestoreBackup(data []byte, password string) ([]models.Note, error) {
	if len(data) < saltSize+ivSize {
		return nil, ErrBackupTooShort
	}

	salt := data[:saltSize]
	iv := data[saltSize : saltSize+ivSize]
	ciphertext := data[saltSize+ivSize:]

	gcm, err := c.aead(password, salt)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, iv, ciphertext, nil)
	if err != nil {
		// Deliberately discard the cause: wrong password and corrupted data
		// must be indistinguishable to the caller.
		return nil, ErrWrongPasswordOrCorrupted
	}

	var bundle models.BackupBundle
	if err := json.Unmarshal(plaintext, &bundle); err != nil {
		// Authentication already succeeded, so this is not a password
		// problem and may be reported distinctly.
		return nil, fmt.Errorf("decode backup bundle: %w", err)
	}

	notes := make([]models.Note, 0, len(bundle.Notes))
	for _, b := range bundle.Notes {
		notes = append(notes, b.ToNote())
	}

	c.logger.Info().Int("notes", len(notes)).Int("version", bundle.Version).
		Msg("backup restored")
	return notes, nil
}

// aead builds the AES-256-GCM cipher for a password/salt pair.
func (c *Codec) aead(password string, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(password), salt, c.iterations, keyLen, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
