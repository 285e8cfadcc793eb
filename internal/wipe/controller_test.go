package wipe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/noteguard/noteguard/internal/keystore"
	"github.com/noteguard/noteguard/internal/logger"
	"github.com/noteguard/noteguard/internal/tasks"
)

// fakeLockState records the order of calls so tests can assert the lock
// flag goes down before anything destructive.
type fakeLockState struct {
	calls      []string
	lockErr    error
	locked     bool
	activityAt int64
}

func (s *fakeLockState) SetLocked(locked bool) error {
	s.calls = append(s.calls, "lock")
	if s.lockErr != nil {
		return s.lockErr
	}
	s.locked = locked
	return nil
}

func (s *fakeLockState) ResetActivity() error {
	s.calls = append(s.calls, "reset_activity")
	s.activityAt = 0
	return nil
}

// recordingVault wraps the real vault to record when deletion happens
// relative to the lock calls.
type recordingStore struct {
	keystore.SecureKeyStore
	state *fakeLockState
}

func (r *recordingStore) Delete(alias string) error {
	r.state.calls = append(r.state.calls, "delete_key")
	return r.SecureKeyStore.Delete(alias)
}

func newTestController(t *testing.T, state *fakeLockState, targets Targets) (*Controller, *keystore.KeyVault) {
	t.Helper()
	store := &recordingStore{SecureKeyStore: keystore.NewMemoryKeyStore(), state: state}
	vault := keystore.NewKeyVault(store, logger.Nop())
	runner := tasks.NewRunner(logger.Nop())
	return NewController(vault, state, targets, runner, logger.Nop()), vault
}

func TestExecute_LockOnly(t *testing.T) {
	state := &fakeLockState{activityAt: 12345}
	ctrl, vault := newTestController(t, state, Targets{})

	if _, err := vault.GetOrCreate(keystore.ContentKeyAlias); err != nil {
		t.Fatalf("GetOrCreate error: %v", err)
	}

	if err := ctrl.Execute(context.Background(), LockOnly); err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if !state.locked {
		t.Fatalf("expected lock flag set")
	}
	if state.activityAt != 0 {
		t.Fatalf("expected activity timestamp reset")
	}
	// No destruction on LockOnly.
	if exists, _ := vault.Exists(keystore.ContentKeyAlias); !exists {
		t.Fatalf("LockOnly must not delete keys")
	}
}

func TestExecute_CryptographicWipe(t *testing.T) {
	dir := t.TempDir()
	dbFile := filepath.Join(dir, "notes.db")
	walFile := filepath.Join(dir, "notes.db-wal")
	for _, f := range []string{dbFile, walFile} {
		if err := os.WriteFile(f, []byte("data"), 0o600); err != nil {
			t.Fatalf("write %s: %v", f, err)
		}
	}

	state := &fakeLockState{}
	// A missing sidecar file in the target set must not derail the wipe.
	ctrl, vault := newTestController(t, state, Targets{
		StorageFiles: []string{dbFile, walFile, filepath.Join(dir, "notes.db-shm")},
	})

	if _, err := vault.GetOrCreate(keystore.ContentKeyAlias); err != nil {
		t.Fatalf("GetOrCreate error: %v", err)
	}

	if err := ctrl.Execute(context.Background(), CryptographicWipe); err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if exists, _ := vault.Exists(keystore.ContentKeyAlias); exists {
		t.Fatalf("expected vault keys destroyed")
	}
	for _, f := range []string{dbFile, walFile} {
		if _, err := os.Stat(f); !os.IsNotExist(err) {
			t.Fatalf("expected %s removed", f)
		}
	}
}

func TestExecute_LockHappensBeforeDestruction(t *testing.T) {
	state := &fakeLockState{}
	ctrl, vault := newTestController(t, state, Targets{})

	if _, err := vault.GetOrCreate(keystore.ContentKeyAlias); err != nil {
		t.Fatalf("GetOrCreate error: %v", err)
	}
	state.calls = nil // only record the wipe itself

	if err := ctrl.Execute(context.Background(), CryptographicWipe); err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	seenDelete := false
	for _, call := range state.calls {
		if call == "delete_key" {
			seenDelete = true
		}
		if call == "lock" && seenDelete {
			t.Fatalf("lock recorded after destruction: %v", state.calls)
		}
	}
	if !seenDelete {
		t.Fatalf("no key deletion recorded: %v", state.calls)
	}
}

func TestExecute_StepFailureDoesNotAbortRemainingSteps(t *testing.T) {
	dir := t.TempDir()
	dbFile := filepath.Join(dir, "notes.db")
	if err := os.WriteFile(dbFile, []byte("data"), 0o600); err != nil {
		t.Fatalf("write db: %v", err)
	}

	state := &fakeLockState{lockErr: errors.New("prefs unwritable")}
	ctrl, vault := newTestController(t, state, Targets{StorageFiles: []string{dbFile}})

	if _, err := vault.GetOrCreate(keystore.ContentKeyAlias); err != nil {
		t.Fatalf("GetOrCreate error: %v", err)
	}

	if err := ctrl.Execute(context.Background(), CryptographicWipe); err != nil {
		t.Fatalf("Execute must swallow step failures: %v", err)
	}

	if exists, _ := vault.Exists(keystore.ContentKeyAlias); exists {
		t.Fatalf("keys must be destroyed despite the lock step failing")
	}
	if _, err := os.Stat(dbFile); !os.IsNotExist(err) {
		t.Fatalf("storage file must be removed despite the lock step failing")
	}
}

func TestExecute_FullWipeRemovesDataDirs(t *testing.T) {
	root := t.TempDir()
	dirs := []string{
		filepath.Join(root, "databases"),
		filepath.Join(root, "prefs"),
		filepath.Join(root, "files", "nested", "deep"),
		filepath.Join(root, "cache"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o700); err != nil {
			t.Fatalf("mkdir %s: %v", d, err)
		}
		if err := os.WriteFile(filepath.Join(d, "x"), []byte("x"), 0o600); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}

	state := &fakeLockState{}
	targets := Targets{DataDirs: []string{
		filepath.Join(root, "databases"),
		filepath.Join(root, "prefs"),
		filepath.Join(root, "files"),
		filepath.Join(root, "cache"),
	}}
	ctrl, vault := newTestController(t, state, targets)

	if _, err := vault.GetOrCreate(keystore.PassphraseKeyAlias); err != nil {
		t.Fatalf("GetOrCreate error: %v", err)
	}

	if err := ctrl.Execute(context.Background(), FullWipe); err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	for _, d := range targets.DataDirs {
		if _, err := os.Stat(d); !os.IsNotExist(err) {
			t.Fatalf("expected %s removed", d)
		}
	}
	if exists, _ := vault.Exists(keystore.PassphraseKeyAlias); exists {
		t.Fatalf("expected vault keys destroyed")
	}
}

func TestExecute_UnknownLevel(t *testing.T) {
	state := &fakeLockState{}
	ctrl, _ := newTestController(t, state, Targets{})

	if err := ctrl.Execute(context.Background(), PanicLevel(42)); !errors.Is(err, ErrUnknownLevel) {
		t.Fatalf("Execute = %v, want ErrUnknownLevel", err)
	}
	if len(state.calls) != 0 {
		t.Fatalf("invalid level must not touch anything: %v", state.calls)
	}
}

func TestTrigger_SurvivesCallerCancellation(t *testing.T) {
	state := &fakeLockState{}
	ctrl, vault := newTestController(t, state, Targets{})

	if _, err := vault.GetOrCreate(keystore.ContentKeyAlias); err != nil {
		t.Fatalf("GetOrCreate error: %v", err)
	}

	handle := ctrl.Trigger(CryptographicWipe)

	// The caller's context is already cancelled; waiting fails but the
	// wipe itself keeps running to completion.
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if err := handle.Wait(cancelled); !errors.Is(err, context.Canceled) {
		t.Fatalf("Wait with cancelled ctx = %v, want context.Canceled", err)
	}

	if err := handle.Wait(context.Background()); err != nil {
		t.Fatalf("wipe task error: %v", err)
	}
	if exists, _ := vault.Exists(keystore.ContentKeyAlias); exists {
		t.Fatalf("expected keys destroyed by detached wipe")
	}
}
