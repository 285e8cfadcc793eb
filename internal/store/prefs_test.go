package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noteguard/noteguard/internal/logger"
)

func newPrefs(t *testing.T, path string) *PrefsStore {
	t.Helper()
	s, err := NewPrefsStore(path, logger.Nop())
	require.NoError(t, err)
	return s
}

func TestPrefs_StateSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")

	s := newPrefs(t, path)
	require.NoError(t, s.SetLocked(true))
	require.NoError(t, s.SetUserPinHash("v2:100000:aa:bb"))
	require.NoError(t, s.SetDuressPinHash("cc"))
	require.NoError(t, s.SetPinEnabled(true))
	require.NoError(t, s.TouchActivity())

	reloaded := newPrefs(t, path)
	assert.True(t, reloaded.Locked())
	assert.True(t, reloaded.PinEnabled())
	assert.Equal(t, "v2:100000:aa:bb", reloaded.UserPinHash())
	assert.Equal(t, "cc", reloaded.DuressPinHash())
	assert.NotZero(t, reloaded.LastActivityAt())
}

func TestPrefs_MissingFileStartsEmpty(t *testing.T) {
	s := newPrefs(t, filepath.Join(t.TempDir(), "absent", "prefs.json"))

	assert.False(t, s.Locked())
	assert.False(t, s.PinEnabled())
	assert.Empty(t, s.UserPinHash())
	assert.Zero(t, s.LastActivityAt())
}

func TestPrefs_CorruptFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewPrefsStore(path, logger.Nop())
	assert.Error(t, err)
}

func TestPrefs_ClearPins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")

	s := newPrefs(t, path)
	require.NoError(t, s.SetUserPinHash("aa"))
	require.NoError(t, s.SetDuressPinHash("bb"))
	require.NoError(t, s.SetPinEnabled(true))
	require.NoError(t, s.SetLocked(true))

	require.NoError(t, s.ClearPins())

	assert.Empty(t, s.UserPinHash())
	assert.Empty(t, s.DuressPinHash())
	assert.False(t, s.PinEnabled())
	// Clearing the PIN never touches the lock flag.
	assert.True(t, s.Locked())
}

func TestPrefs_ResetActivity(t *testing.T) {
	s := newPrefs(t, filepath.Join(t.TempDir(), "prefs.json"))

	require.NoError(t, s.TouchActivity())
	require.NotZero(t, s.LastActivityAt())

	require.NoError(t, s.ResetActivity())
	assert.Zero(t, s.LastActivityAt())
}

func TestPrefs_FilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")

	s := newPrefs(t, path)
	require.NoError(t, s.SetLocked(true))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
