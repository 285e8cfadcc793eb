package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// PIN hashing parameters. A stored record is self-describing: the versioned
// format embeds its own iteration count and salt, so these constants only
// govern newly written records.
const (
	pinHashVersion = "v2"
	pinIterations  = 100_000
	pinSaltSize    = 16
	pinKeyLen      = 32 // 256-bit derived key
)

// hashPinVersioned derives a fresh salted PBKDF2-HMAC-SHA256 record in the
// form "v2:<iterations>:<saltHex>:<hashHex>".
func hashPinVersioned(pin string) (string, error) {
	salt := make([]byte, pinSaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate pin salt: %w", err)
	}

	dk := pbkdf2.Key([]byte(pin), salt, pinIterations, pinKeyLen, sha256.New)
	return strings.Join([]string{
		pinHashVersion,
		strconv.Itoa(pinIterations),
		hex.EncodeToString(salt),
		hex.EncodeToString(dk),
	}, ":"), nil
}

// legacyHash computes the historical plain hex SHA-256 digest of a PIN.
// Only ever used for comparison against pre-versioned records; new records
// are always written in versioned form.
func legacyHash(pin string) string {
	sum := sha256.Sum256([]byte(pin))
	return hex.EncodeToString(sum[:])
}

// verifyHash checks pin against a stored record, selecting the algorithm
// from the record format alone. It reports whether the PIN matched and
// whether the record is in the legacy format (and therefore due for a
// rewrite on a successful match). Malformed versioned records are a
// non-match, never an error.
func verifyHash(pin, stored string) (match, legacy bool) {
	if !strings.HasPrefix(stored, pinHashVersion+":") {
		// Legacy record: plain hex digest, compared as the original
		// implementation did. The direct equality is a known timing side
		// channel, tolerated because a matching record is immediately
		// rewritten to the versioned format.
		return stored != "" && stored == legacyHash(pin), true
	}

	parts := strings.Split(stored, ":")
	if len(parts) != 4 {
		return false, false
	}
	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations <= 0 {
		return false, false
	}
	salt, err := hex.DecodeString(parts[2])
	if err != nil {
		return false, false
	}
	want, err := hex.DecodeString(parts[3])
	if err != nil || len(want) == 0 {
		return false, false
	}

	got := pbkdf2.Key([]byte(pin), salt, iterations, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1, false
}
