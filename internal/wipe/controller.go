// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Noteguard Authors

// Package wipe orchestrates the graduated emergency data-destruction
// levels.
//
// Every destructive sequence starts by setting the lock flag, so a process
// crash mid-wipe can never leave the app unlocked with partially destroyed
// data. All remaining steps are best-effort: under duress, maximal
// destruction matters more than halting on the first failure.
package wipe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/noteguard/noteguard/internal/keystore"
	"github.com/noteguard/noteguard/internal/logger"
	"github.com/noteguard/noteguard/internal/tasks"
)

// ErrUnknownLevel is returned when Execute receives a PanicLevel outside
// the defined set.
var ErrUnknownLevel = errors.New("unknown panic level")

// LockState is the slice of the preference store the controller needs: the
// lock flag and the activity timestamp.
type LockState interface {
	SetLocked(locked bool) error
	ResetActivity() error
}

// Targets enumerates what a wipe destroys beyond the vault keys.
type Targets struct {
	// StorageFiles is the encrypted storage file set: the database file and
	// its sidecar files (WAL, journal). CryptographicWipe removes these so
	// the app does not fault trying to open storage with a now-missing
	// passphrase on next launch.
	StorageFiles []string

	// DataDirs are the application data directories removed by FullWipe:
	// databases, preferences, general files and cache.
	DataDirs []string
}

// Controller executes panic actions.
type Controller struct {
	vault   *keystore.KeyVault
	state   LockState
	targets Targets
	runner  *tasks.Runner
	logger  *logger.Logger
}

// NewController constructs a panic Controller.
func NewController(vault *keystore.KeyVault, state LockState, targets Targets, runner *tasks.Runner, log *logger.Logger) *Controller {
	return &Controller{vault: vault, state: state, targets: targets, runner: runner, logger: log}
}

// Trigger runs the panic action as a detached critical task and returns a
// handle the caller may await. The action survives caller teardown.
func (c *Controller) Trigger(level PanicLevel) *tasks.Handle {
	return c.runner.Submit("panic_"+level.String(), func(ctx context.Context) error {
		return c.Execute(ctx, level)
	})
}

// Execute performs the ordered step sequence for level synchronously. Each
// step is isolated: a failure is logged and the remaining steps still run.
// The action as a whole fails only if level itself is invalid.
func (c *Controller) Execute(ctx context.Context, level PanicLevel) error {
	switch level {
	case LockOnly, CryptographicWipe, FullWipe:
	default:
		return fmt.Errorf("%w: %d", ErrUnknownLevel, int(level))
	}

	c.logger.Warn().Str("level", level.String()).Msg("panic action started")

	// The lock flag goes down before anything destructive.
	c.step("set_locked", func() error { return c.state.SetLocked(true) })
	c.step("reset_activity", c.state.ResetActivity)

	if level == LockOnly {
		return nil
	}

	c.step("delete_keys", c.vault.DeleteAll)

	switch level {
	case CryptographicWipe:
		for _, file := range c.targets.StorageFiles {
			file := file
			c.step("delete_storage_file", func() error {
				if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
					return err
				}
				return nil
			})
		}
	case FullWipe:
		for _, dir := range c.targets.DataDirs {
			dir := dir
			c.step("delete_data_dir", func() error {
				return removeTreeBestEffort(dir)
			})
		}
	}

	c.logger.Warn().Str("level", level.String()).Msg("panic action finished")
	return nil
}

// step runs one destructive action, logging and swallowing its failure so
// subsequent steps are always attempted.
func (c *Controller) step(name string, fn func() error) {
	if err := fn(); err != nil {
		c.logger.Error().Err(err).Str("step", name).Msg("panic step failed, continuing")
	}
}

// removeTreeBestEffort deletes a directory tree, continuing past individual
// failures. Files are removed first, then directories deepest-first, and a
// final RemoveAll sweeps up anything the walk could not reach.
func removeTreeBestEffort(root string) error {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil
	}

	var dirs []string
	// The walk itself continues past errors: an unreadable entry is skipped
	// rather than aborting the traversal.
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			dirs = append(dirs, path)
			return nil
		}
		_ = os.Remove(path)
		return nil
	})

	// Children before parents.
	sort.Slice(dirs, func(i, j int) bool { return len(dirs[i]) > len(dirs[j]) })
	for _, dir := range dirs {
		_ = os.Remove(dir)
	}

	return os.RemoveAll(root)
}
