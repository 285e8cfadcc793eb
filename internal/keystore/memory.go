package keystore

import (
	"sync"
)

// MemoryKeyStore is the software fallback for targets without an OS key
// store. Key material lives in process memory only: it does not survive a
// restart, and the "key never leaves hardware" property of the OS backend is
// lost. The composition root must select this backend explicitly.
type MemoryKeyStore struct {
	mu     sync.RWMutex
	keys   map[string][]byte
	locked bool
}

// NewMemoryKeyStore returns the in-memory SecureKeyStore fallback.
func NewMemoryKeyStore() *MemoryKeyStore {
	return &MemoryKeyStore{keys: make(map[string][]byte)}
}

func (s *MemoryKeyStore) Load(alias string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.locked {
		return nil, ErrAuthenticationRequired
	}
	key, ok := s.keys[alias]
	if !ok {
		return nil, ErrKeyNotFound
	}

	// Hand out a copy so callers zeroing their buffer do not destroy the
	// stored material.
	out := make([]byte, len(key))
	copy(out, key)
	return out, nil
}

func (s *MemoryKeyStore) Store(alias string, key []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locked {
		return ErrAuthenticationRequired
	}
	if old, ok := s.keys[alias]; ok {
		zero(old)
	}
	kept := make([]byte, len(key))
	copy(kept, key)
	s.keys[alias] = kept
	return nil
}

func (s *MemoryKeyStore) Exists(alias string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.keys[alias]
	return ok, nil
}

func (s *MemoryKeyStore) Delete(alias string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, ok := s.keys[alias]
	if !ok {
		return ErrKeyNotFound
	}
	zero(key)
	delete(s.keys, alias)
	return nil
}

func (s *MemoryKeyStore) Backend() string { return "memory" }

// Lock makes every subsequent Load/Store fail with
// ErrAuthenticationRequired until Unlock is called. It models the locked
// state of a platform key store and backs the AuthenticationRequired
// decryption outcome on fallback targets.
func (s *MemoryKeyStore) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locked = true
}

// Unlock reverses Lock.
func (s *MemoryKeyStore) Unlock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locked = false
}

// zero overwrites b so key material does not linger in reusable memory.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
