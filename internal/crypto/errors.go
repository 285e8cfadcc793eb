package crypto

import "errors"

// Sentinel errors classifying every way a field decryption can fail. The
// set is closed: Decrypt and DecryptString always return one of these
// (possibly wrapped with context) so callers can map each to a distinct
// user-facing recovery hint instead of a raw exception message.
var (
	// ErrKeyInvalidated means the master key is missing or its stored
	// material is unusable, typically after a cryptographic wipe or a
	// platform credential change. The data is unrecoverable without a
	// backup.
	ErrKeyInvalidated = errors.New("master key invalidated")

	// ErrAuthenticationRequired means the key store is locked and the user
	// must authenticate before the key can be used.
	ErrAuthenticationRequired = errors.New("authentication required to use key")

	// ErrDataCorrupted means the stored blob is malformed or its
	// authentication tag does not verify: the ciphertext was tampered with
	// or corrupted. Altered plaintext is never returned.
	ErrDataCorrupted = errors.New("encrypted data corrupted")

	// ErrUnknown covers any other cryptographic failure.
	ErrUnknown = errors.New("unknown cryptographic error")
)
