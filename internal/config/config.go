// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Noteguard Authors

package config

// StructuredConfig is the top-level configuration container for the
// noteguard application. It is populated by merging values from defaults,
// an optional JSON file, environment variables, and command-line flags (in
// that order of increasing precedence).
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings.
	App App `envPrefix:"APP_" json:"app"`

	// Storage holds file-system locations for all persisted state.
	Storage Storage `envPrefix:"STORAGE_" json:"storage"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged underneath environment
	// and flag values. Populated via the CONFIG environment variable or the
	// -c / -config flag.
	JSONFilePath string `env:"CONFIG" json:"-"`
}

// App holds application-level configuration values.
type App struct {
	// KeystoreBackend selects the SecureKeyStore implementation: "os" for
	// the platform keyring (preferred) or "memory" for the software
	// fallback. The fallback loses the "key never leaves hardware"
	// property; selecting it is an explicit choice, never a silent
	// downgrade, which is why there is no auto-detection.
	// Env: APP_KEYSTORE_BACKEND
	KeystoreBackend string `env:"KEYSTORE_BACKEND" json:"keystoreBackend"`
}

// Storage holds every data location the application reads, writes, or, in
// a panic wipe, destroys.
type Storage struct {
	// DataDir is the root application data directory.
	// Env: STORAGE_DATA_DIR
	DataDir string `env:"DATA_DIR" json:"dataDir"`

	// DatabasePath is the encrypted sqlite database file.
	// Env: STORAGE_DATABASE_PATH
	DatabasePath string `env:"DATABASE_PATH" json:"databasePath"`

	// PrefsPath is the JSON preference file.
	// Env: STORAGE_PREFS_PATH
	PrefsPath string `env:"PREFS_PATH" json:"prefsPath"`

	// FilesDir is the general application files directory.
	// Env: STORAGE_FILES_DIR
	FilesDir string `env:"FILES_DIR" json:"filesDir"`

	// CacheDir is the cache directory.
	// Env: STORAGE_CACHE_DIR
	CacheDir string `env:"CACHE_DIR" json:"cacheDir"`
}

// Keystore backend labels accepted in App.KeystoreBackend.
const (
	KeystoreBackendOS     = "os"
	KeystoreBackendMemory = "memory"
)
