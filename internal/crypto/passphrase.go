package crypto

import (
	"encoding/hex"

	"github.com/noteguard/noteguard/internal/keystore"
	"github.com/noteguard/noteguard/internal/logger"
)

// passphraseSeed is the fixed plaintext the passphrase key encrypts. The
// derived passphrase is the ciphertext of this constant, so it is stable
// for the lifetime of the key and unrecoverable once the key is deleted.
const passphraseSeed = "noteguard-storage-passphrase-seed-v1"

// PassphraseDeriver produces the passphrase that opens the outer
// storage-encryption layer. It uses its own vault key, independent of the
// content key, and never persists the derived secret anywhere outside the
// secure key store's protection.
type PassphraseDeriver struct {
	vault  *keystore.KeyVault
	alias  string
	logger *logger.Logger
}

// NewPassphraseDeriver constructs a PassphraseDeriver over the
// passphrase-derivation key.
func NewPassphraseDeriver(vault *keystore.KeyVault, log *logger.Logger) *PassphraseDeriver {
	return &PassphraseDeriver{vault: vault, alias: keystore.PassphraseKeyAlias, logger: log}
}

// Derive returns the storage passphrase as a hex string, materializing the
// derivation key on first use.
//
// The nonce is all zeroes, so the output is deterministic. That requires
// the invariant that this key seals exactly one plaintext, the fixed seed,
// for its entire lifetime. The field-cipher key must never be used this
// way.
func (d *PassphraseDeriver) Derive() (string, error) {
	handle, err := d.vault.GetOrCreate(d.alias)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, handle.NonceSize())
	passphrase := handle.Seal(nonce, []byte(passphraseSeed))

	return hex.EncodeToString(passphrase), nil
}
