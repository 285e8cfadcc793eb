// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Noteguard Authors

// Package keystore owns the long-lived symmetric keys of the application.
//
// Raw key material lives exclusively inside a [SecureKeyStore]; everything
// above this package works with opaque [MasterKeyHandle] values that expose
// AEAD operations but never the key bytes themselves. Keys are created
// lazily on first use and destroyed only by the panic controller.
package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/noteguard/noteguard/internal/logger"
)

// Stable logical key aliases. These names are the only way keys are ever
// referenced; renaming one orphans the corresponding key material.
const (
	// ContentKeyAlias names the key that encrypts note fields.
	ContentKeyAlias = "noteguard-content-key"

	// PassphraseKeyAlias names the independent key from which the outer
	// storage-engine passphrase is derived.
	PassphraseKeyAlias = "noteguard-db-passphrase-key"
)

// KnownAliases lists every alias the vault may have materialized. The panic
// controller iterates it during a wipe.
var KnownAliases = []string{ContentKeyAlias, PassphraseKeyAlias}

const masterKeySize = 32 // AES-256

// MasterKeyHandle is an opaque reference to a vault key. It wraps a ready
// AEAD so callers can seal and open data without ever observing raw key
// bytes. Handles are transient: they are resolved per operation and must not
// be cached across a potential wipe.
type MasterKeyHandle struct {
	name string
	aead cipher.AEAD
}

// Name returns the logical alias this handle was resolved from.
func (h *MasterKeyHandle) Name() string { return h.name }

// NonceSize returns the AEAD nonce length (12 bytes for AES-GCM).
func (h *MasterKeyHandle) NonceSize() int { return h.aead.NonceSize() }

// Seal encrypts plaintext under the handle's key. The returned slice is
// ciphertext followed by the 16-byte authentication tag.
func (h *MasterKeyHandle) Seal(nonce, plaintext []byte) []byte {
	return h.aead.Seal(nil, nonce, plaintext, nil)
}

// Open decrypts and authenticates ciphertext produced by Seal. An error
// means the data was tampered with or encrypted under a different key.
func (h *MasterKeyHandle) Open(nonce, ciphertext []byte) ([]byte, error) {
	return h.aead.Open(nil, nonce, ciphertext, nil)
}

// KeyVault materializes and resolves master keys on top of a
// SecureKeyStore.
//
// A mutex serializes GetOrCreate so that two concurrent first-use calls can
// never race check-then-create and materialize two different keys under the
// same alias.
type KeyVault struct {
	store  SecureKeyStore
	logger *logger.Logger

	mu sync.Mutex
}

// NewKeyVault constructs a KeyVault over the given store.
func NewKeyVault(store SecureKeyStore, log *logger.Logger) *KeyVault {
	return &KeyVault{store: store, logger: log}
}

// GetOrCreate returns a handle to the key stored under alias, generating and
// persisting a fresh 256-bit key if none exists yet. It is idempotent: for
// any alias, exactly one key is ever created.
func (v *KeyVault) GetOrCreate(alias string) (*MasterKeyHandle, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	key, err := v.store.Load(alias)
	if err == nil {
		return v.buildHandle(alias, key)
	}
	if !errors.Is(err, ErrKeyNotFound) {
		return nil, err
	}

	key = make([]byte, masterKeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("generate master key: %w", err)
	}
	if err := v.store.Store(alias, key); err != nil {
		zero(key)
		return nil, err
	}
	v.logger.Info().Str("alias", alias).Str("backend", v.store.Backend()).
		Msg("materialized new master key")

	return v.buildHandle(alias, key)
}

// Get resolves an existing key without creating one. Decryption paths use
// this so that a wiped key surfaces as ErrKeyNotFound instead of silently
// materializing a fresh key that can never open old ciphertext.
func (v *KeyVault) Get(alias string) (*MasterKeyHandle, error) {
	key, err := v.store.Load(alias)
	if err != nil {
		return nil, err
	}
	return v.buildHandle(alias, key)
}

// Exists reports whether a key is materialized under alias.
func (v *KeyVault) Exists(alias string) (bool, error) {
	return v.store.Exists(alias)
}

// Delete destroys the key under alias. Ciphertext produced under that key
// becomes permanently unrecoverable. A missing alias is not an error: the
// desired end state (no key) already holds.
func (v *KeyVault) Delete(alias string) error {
	err := v.store.Delete(alias)
	if err != nil && !errors.Is(err, ErrKeyNotFound) {
		return err
	}
	return nil
}

// DeleteAll destroys every known key. Used by the panic controller; each
// deletion is attempted even if a previous one failed, and the first error
// is returned after all attempts.
func (v *KeyVault) DeleteAll() error {
	var firstErr error
	for _, alias := range KnownAliases {
		if err := v.Delete(alias); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// buildHandle converts raw key material into an AEAD handle and zeroes the
// raw bytes. aes.NewCipher copies the key, so the local buffer can be wiped
// immediately.
func (v *KeyVault) buildHandle(alias string, key []byte) (*MasterKeyHandle, error) {
	defer zero(key)

	if len(key) != masterKeySize {
		return nil, ErrInvalidKeyMaterial
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return &MasterKeyHandle{name: alias, aead: gcm}, nil
}
