package keystore_test

import (
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/noteguard/noteguard/internal/keystore"
	"github.com/noteguard/noteguard/internal/logger"
	"github.com/noteguard/noteguard/internal/mock"
)

// Backend failures other than "not found" must surface to the caller
// instead of being mistaken for a missing key and triggering re-keying.
func TestGetOrCreate_SurfacesBackendFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock.NewMockSecureKeyStore(ctrl)

	backendErr := errors.New("keyring daemon unavailable")
	store.EXPECT().Load(keystore.ContentKeyAlias).Return(nil, backendErr)

	vault := keystore.NewKeyVault(store, logger.Nop())
	if _, err := vault.GetOrCreate(keystore.ContentKeyAlias); !errors.Is(err, backendErr) {
		t.Fatalf("GetOrCreate = %v, want backend error", err)
	}
}

// A failed persist must not hand out a handle to a key that was never
// stored: the next call would generate a different key.
func TestGetOrCreate_StoreFailureReturnsNoHandle(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock.NewMockSecureKeyStore(ctrl)

	store.EXPECT().Load(keystore.ContentKeyAlias).Return(nil, keystore.ErrKeyNotFound)
	persistErr := errors.New("write denied")
	store.EXPECT().Store(keystore.ContentKeyAlias, gomock.Len(32)).Return(persistErr)

	vault := keystore.NewKeyVault(store, logger.Nop())
	if _, err := vault.GetOrCreate(keystore.ContentKeyAlias); !errors.Is(err, persistErr) {
		t.Fatalf("GetOrCreate = %v, want persist error", err)
	}
}
