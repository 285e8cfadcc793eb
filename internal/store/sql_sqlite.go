// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Noteguard Authors

// Package store contains the persistence layer: the sqlite note repository
// and the JSON preference store. The sqlite file itself is encrypted by the
// outer storage engine; this package only supplies the derived passphrase
// at connection time and otherwise treats the database as a normal sqlite
// target.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/noteguard/noteguard/internal/logger"
)

// DB wraps the sql.DB connection together with the component logger.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// NewConnectSQLite opens (creating if necessary) the encrypted notes
// database. The passphrase comes from the passphrase deriver and is handed
// to the storage engine via PRAGMA key before any other statement runs; on
// builds without the encryption extension the pragma is a no-op.
func NewConnectSQLite(ctx context.Context, dbPath, passphrase string, log *logger.Logger) (*DB, error) {
	if err := createLocalDBFileIfNotExists(dbPath); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
		return nil, fmt.Errorf("error creating database file")
	}

	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB")
	}

	if passphrase != "" {
		// The passphrase is hex, produced by the deriver; quoting it as a
		// blob literal keeps the statement free of user-controlled input.
		if _, err := conn.ExecContext(ctx, fmt.Sprintf(`PRAGMA key = "x'%s'"`, passphrase)); err != nil {
			conn.Close()
			log.Err(err).Str("func", "NewConnectSQLite").Msg("error keying database")
			return nil, fmt.Errorf("error keying database: %w", err)
		}
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	return &DB{DB: conn, logger: log}, nil
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		if dir := filepath.Dir(dbFile); dir != "." {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return fmt.Errorf("error creating DB dir: %w", err)
			}
		}
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	return nil
}
