package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"dario.cat/mergo"
)

type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

// GetConfig assembles the application configuration. Later sources win:
// defaults < JSON file < environment < flags. Flags and env are collected
// first because either may point at the JSON file.
func GetConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags().
		withEnv().
		withJSON().
		withDefaults().
		build()
}

// build merges the collected sources. mergo fills only empty fields, so the
// slice order (highest precedence first) determines which source wins.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, config.validate()
}

func (b *configBuilder) withFlags() *configBuilder {
	b.configs = append(b.configs, ParseFlags())
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
			break
		}
	}
	if jsonPath == "" {
		return b
	}

	jsonCfg, err := parseJSON(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append(b.configs, jsonCfg)
	return b
}

// withDefaults appends the lowest-precedence source. Paths not set by any
// other source land under the data directory.
func (b *configBuilder) withDefaults() *configBuilder {
	dataDir := "noteguard-data"
	for _, cfg := range b.configs {
		if cfg.Storage.DataDir != "" {
			dataDir = cfg.Storage.DataDir
			break
		}
	}

	b.configs = append(b.configs, &StructuredConfig{
		App: App{
			KeystoreBackend: KeystoreBackendOS,
		},
		Storage: Storage{
			DataDir:      dataDir,
			DatabasePath: filepath.Join(dataDir, "databases", "notes.db"),
			PrefsPath:    filepath.Join(dataDir, "prefs", "noteguard.json"),
			FilesDir:     filepath.Join(dataDir, "files"),
			CacheDir:     filepath.Join(dataDir, "cache"),
		},
	})
	return b
}

// validate checks the merged configuration for internally consistent
// values.
func (c *StructuredConfig) validate() error {
	switch c.App.KeystoreBackend {
	case KeystoreBackendOS, KeystoreBackendMemory:
	default:
		return fmt.Errorf("%w: unknown keystore backend %q", ErrInvalidAppConfigs, c.App.KeystoreBackend)
	}

	if c.Storage.DatabasePath == "" || c.Storage.PrefsPath == "" {
		return fmt.Errorf("%w: database and preference paths must be set", ErrInvalidStorageConfigs)
	}
	return nil
}
