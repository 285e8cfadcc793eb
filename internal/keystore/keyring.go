package keystore

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// service is the keyring service name under which all noteguard aliases
// live. Changing it orphans existing keys.
const service = "noteguard"

// osKeyStore stores key material in the operating system keyring
// (macOS Keychain, Secret Service on Linux, Credential Manager on Windows).
type osKeyStore struct{}

// NewOSKeyStore returns the OS-backed SecureKeyStore.
func NewOSKeyStore() SecureKeyStore {
	return &osKeyStore{}
}

func (s *osKeyStore) Load(alias string) ([]byte, error) {
	encoded, err := keyring.Get(service, alias)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrKeyNotFound
		}
		// A locked collection or dismissed unlock prompt surfaces here.
		return nil, fmt.Errorf("%w: %v", ErrAuthenticationRequired, err)
	}

	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyMaterial, err)
	}
	return key, nil
}

func (s *osKeyStore) Store(alias string, key []byte) error {
	if err := keyring.Set(service, alias, base64.StdEncoding.EncodeToString(key)); err != nil {
		return fmt.Errorf("store key %q: %w", alias, err)
	}
	return nil
}

func (s *osKeyStore) Exists(alias string) (bool, error) {
	_, err := keyring.Get(service, alias)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("check key %q: %w", alias, err)
	}
	return true, nil
}

func (s *osKeyStore) Delete(alias string) error {
	if err := keyring.Delete(service, alias); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrKeyNotFound
		}
		return fmt.Errorf("delete key %q: %w", alias, err)
	}
	return nil
}

func (s *osKeyStore) Backend() string { return "os-keyring" }
