package keystore

//go:generate mockgen -source=interfaces.go -destination=../mock/keystore_mock.go -package=mock

// SecureKeyStore abstracts the platform facility that holds raw symmetric
// key material. Two implementations exist:
//
//   - the OS-backed store (keychain / libsecret / credential manager), the
//     preferred backend: key material is protected by the platform and never
//     written to application storage;
//   - the in-memory software fallback for targets without an OS key store.
//     Its security property is strictly weaker ("key never leaves hardware"
//     is lost); choosing it is an explicit configuration decision, never a
//     silent downgrade.
//
// Raw key bytes cross this interface only between the store and the
// KeyVault, which immediately converts them into an AEAD and zeroes the
// buffer. Application code works exclusively with [MasterKeyHandle] values.
type SecureKeyStore interface {
	// Load returns the key material stored under alias, or ErrKeyNotFound.
	Load(alias string) ([]byte, error)

	// Store persists key material under alias, overwriting any previous
	// value.
	Store(alias string, key []byte) error

	// Exists reports whether key material is present under alias without
	// releasing it.
	Exists(alias string) (bool, error)

	// Delete removes the key material under alias. Deleting an absent alias
	// returns ErrKeyNotFound.
	Delete(alias string) error

	// Backend returns a short label identifying the implementation
	// ("os-keyring" or "memory"), used for logging and diagnostics.
	Backend() string
}
