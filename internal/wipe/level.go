package wipe

// PanicLevel selects how destructive a panic action is. Levels are strictly
// ordered; each is a one-shot terminal action with no intermediate states.
type PanicLevel int

const (
	// LockOnly locks the app and forces re-authentication. No data is
	// destroyed.
	LockOnly PanicLevel = iota

	// CryptographicWipe destroys all vault keys and the encrypted storage
	// files. Note data becomes permanently unrecoverable without a backup.
	CryptographicWipe

	// FullWipe destroys the keys and recursively deletes every application
	// data directory: databases, preferences, general files and cache.
	FullWipe
)

// String implements fmt.Stringer for logging and diagnostics.
func (l PanicLevel) String() string {
	switch l {
	case LockOnly:
		return "lock_only"
	case CryptographicWipe:
		return "cryptographic_wipe"
	case FullWipe:
		return "full_wipe"
	}
	return "invalid"
}
