package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/noteguard/noteguard/internal/auth"
	"github.com/noteguard/noteguard/internal/backup"
	"github.com/noteguard/noteguard/internal/config"
	"github.com/noteguard/noteguard/internal/crypto"
	"github.com/noteguard/noteguard/internal/keystore"
	"github.com/noteguard/noteguard/internal/logger"
	"github.com/noteguard/noteguard/internal/service"
	"github.com/noteguard/noteguard/internal/store"
	"github.com/noteguard/noteguard/internal/tasks"
	"github.com/noteguard/noteguard/internal/wipe"
	"github.com/noteguard/noteguard/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// main is the composition root: every component is constructed exactly once
// and passed down by reference. There is no ambient or global mutable state.
func main() {
	printBuildInfo()

	log := logger.NewLogger("noteguard")
	cfg, err := config.GetConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	var keyStore keystore.SecureKeyStore
	switch cfg.App.KeystoreBackend {
	case config.KeystoreBackendMemory:
		// Explicitly configured software fallback; weaker than the OS
		// keyring and logged as such.
		log.Warn().Msg("using in-memory key store: keys are not hardware protected")
		keyStore = keystore.NewMemoryKeyStore()
	default:
		keyStore = keystore.NewOSKeyStore()
	}

	vault := keystore.NewKeyVault(keyStore, log)
	deriver := crypto.NewPassphraseDeriver(vault, log)
	fieldCipher := crypto.NewFieldCipher(vault, log)

	passphrase, err := deriver.Derive()
	if err != nil {
		log.Fatal().Err(err).Msg("derive storage passphrase")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := store.NewConnectSQLite(ctx, cfg.Storage.DatabasePath, passphrase, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open encrypted storage")
	}
	defer db.Close()

	if err := migrations.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}

	prefs, err := store.NewPrefsStore(cfg.Storage.PrefsPath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open preference store")
	}

	runner := tasks.NewRunner(log)
	noteRepo := store.NewNoteRepository(db, log)
	gateway := service.NewNoteCryptoGateway(fieldCipher, log)
	notes := service.NewNoteService(noteRepo, gateway, runner, log)
	authenticator := auth.NewPinAuthenticator(prefs, log)
	backupCodec := backup.NewCodec(log)

	controller := wipe.NewController(vault, prefs, wipe.Targets{
		StorageFiles: storageFileSet(cfg.Storage.DatabasePath),
		DataDirs: []string{
			filepath.Dir(cfg.Storage.DatabasePath),
			filepath.Dir(cfg.Storage.PrefsPath),
			cfg.Storage.FilesDir,
			cfg.Storage.CacheDir,
		},
	}, runner, log)

	// The UI layer drives these; constructing them here is the whole job of
	// this binary until it is attached.
	_ = notes
	_ = authenticator
	_ = backupCodec
	_ = controller

	log.Info().
		Str("keystore", keyStore.Backend()).
		Bool("locked", prefs.Locked()).
		Bool("pin_enabled", prefs.PinEnabled()).
		Msg("noteguard data-protection core ready")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := runner.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("waiting for detached tasks")
	}
}

// storageFileSet lists the database file and the sidecar files sqlite may
// have created next to it.
func storageFileSet(dbPath string) []string {
	return []string{dbPath, dbPath + "-wal", dbPath + "-shm", dbPath + "-journal"}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
