package config

import (
	"flag"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-keystore-backend key store backend ("os" or "memory")
//	-data-dir application data directory
//	-d database file path
//	-prefs preference file path
//	-files-dir general files directory
//	-cache-dir cache directory
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var keystoreBackend string
	var dataDir string
	var databasePath string
	var prefsPath string
	var filesDir string
	var cacheDir string
	var jsonConfigPath string

	flag.StringVar(&keystoreBackend, "keystore-backend", "", `Key store backend ("os" or "memory")`)
	flag.StringVar(&dataDir, "data-dir", "", "Application data directory")
	flag.StringVar(&databasePath, "d", "", "Database file path")
	flag.StringVar(&prefsPath, "prefs", "", "Preference file path")
	flag.StringVar(&filesDir, "files-dir", "", "General files directory")
	flag.StringVar(&cacheDir, "cache-dir", "", "Cache directory")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			KeystoreBackend: keystoreBackend,
		},
		Storage: Storage{
			DataDir:      dataDir,
			DatabasePath: databasePath,
			PrefsPath:    prefsPath,
			FilesDir:     filesDir,
			CacheDir:     cacheDir,
		},
		JSONFilePath: jsonConfigPath,
	}
}
