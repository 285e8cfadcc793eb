package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/noteguard/noteguard/internal/logger"
)

// prefsState is the JSON document persisted by the preference store. It
// holds every piece of externally persisted security state: the lock flag
// and activity timestamp, the PIN-enabled flag, and both PIN hash records.
type prefsState struct {
	Locked         bool   `json:"locked"`
	LastActivityAt int64  `json:"last_activity_at"`
	PinEnabled     bool   `json:"pin_enabled"`
	UserPinHash    string `json:"user_pin_hash,omitempty"`
	DuressPinHash  string `json:"duress_pin_hash,omitempty"`
}

// PrefsStore is a small file-backed preference store. It implements
// auth.PinStore and carries the lock flag and last-activity timestamp the
// panic controller manipulates. Every mutation is persisted immediately;
// the file is written with 0600 permissions.
type PrefsStore struct {
	path   string
	logger *logger.Logger

	mu    sync.RWMutex
	state prefsState
}

// NewPrefsStore loads (or initializes) the preference file at path.
func NewPrefsStore(path string, log *logger.Logger) (*PrefsStore, error) {
	s := &PrefsStore{path: path, logger: log}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PrefsStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read preference file: %w", err)
	}
	if err := json.Unmarshal(data, &s.state); err != nil {
		return fmt.Errorf("decode preference file: %w", err)
	}
	return nil
}

// persist writes the current state. Callers must hold s.mu.
func (s *PrefsStore) persist() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create preference dir: %w", err)
		}
	}
	payload, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write preference file: %w", err)
	}
	return nil
}

// Path returns the preference file location; the panic controller deletes
// it during a full wipe.
func (s *PrefsStore) Path() string { return s.path }

// Locked reports the lock flag.
func (s *PrefsStore) Locked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Locked
}

// SetLocked persists the lock flag.
func (s *PrefsStore) SetLocked(locked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Locked = locked
	return s.persist()
}

// LastActivityAt returns the last recorded activity timestamp in Unix
// epoch milliseconds.
func (s *PrefsStore) LastActivityAt() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.LastActivityAt
}

// TouchActivity records the current time as the last activity.
func (s *PrefsStore) TouchActivity() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.LastActivityAt = time.Now().UnixMilli()
	return s.persist()
}

// ResetActivity zeroes the activity timestamp so the next interaction
// forces re-authentication.
func (s *PrefsStore) ResetActivity() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.LastActivityAt = 0
	return s.persist()
}

// --- auth.PinStore implementation ---

func (s *PrefsStore) UserPinHash() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.UserPinHash
}

func (s *PrefsStore) DuressPinHash() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.DuressPinHash
}

func (s *PrefsStore) PinEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.PinEnabled
}

func (s *PrefsStore) SetUserPinHash(hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.UserPinHash = hash
	return s.persist()
}

func (s *PrefsStore) SetDuressPinHash(hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.DuressPinHash = hash
	return s.persist()
}

func (s *PrefsStore) SetPinEnabled(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.PinEnabled = enabled
	return s.persist()
}

func (s *PrefsStore) ClearPins() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.UserPinHash = ""
	s.state.DuressPinHash = ""
	s.state.PinEnabled = false
	return s.persist()
}
