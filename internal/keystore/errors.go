package keystore

import "errors"

// Sentinel errors returned by SecureKeyStore implementations and the
// KeyVault. Callers should use [errors.Is] to match against these values.
var (
	// ErrKeyNotFound is returned when no key material exists under the
	// requested alias. After a cryptographic wipe every alias resolves to
	// this error.
	ErrKeyNotFound = errors.New("key not found in secure key store")

	// ErrAuthenticationRequired is returned when the key store is present
	// but locked, and the user must authenticate before key material can be
	// released.
	ErrAuthenticationRequired = errors.New("key store requires authentication")

	// ErrInvalidKeyMaterial is returned when stored key material cannot be
	// decoded or has the wrong length, which means the underlying credential
	// was changed or corrupted and the key must be considered invalidated.
	ErrInvalidKeyMaterial = errors.New("stored key material is invalid")
)
