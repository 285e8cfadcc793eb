package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noteguard/noteguard/internal/crypto"
	"github.com/noteguard/noteguard/internal/keystore"
	"github.com/noteguard/noteguard/internal/logger"
	"github.com/noteguard/noteguard/internal/service"
	"github.com/noteguard/noteguard/internal/store"
	"github.com/noteguard/noteguard/internal/tasks"
	"github.com/noteguard/noteguard/models"
)

// fakeNoteRepo is an in-memory NoteRepository.
type fakeNoteRepo struct {
	notes map[string]models.EncryptedNote
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: make(map[string]models.EncryptedNote)}
}

func (r *fakeNoteRepo) Save(_ context.Context, note models.EncryptedNote) error {
	r.notes[note.ID] = note
	return nil
}

func (r *fakeNoteRepo) GetByID(_ context.Context, id string) (models.EncryptedNote, error) {
	note, ok := r.notes[id]
	if !ok {
		return models.EncryptedNote{}, store.ErrNoteNotFound
	}
	return note, nil
}

func (r *fakeNoteRepo) ListActive(_ context.Context) ([]models.EncryptedNote, error) {
	var out []models.EncryptedNote
	for _, n := range r.notes {
		if !n.IsDeleted {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNoteRepo) ListAll(_ context.Context) ([]models.EncryptedNote, error) {
	var out []models.EncryptedNote
	for _, n := range r.notes {
		out = append(out, n)
	}
	return out, nil
}

func (r *fakeNoteRepo) SoftDelete(_ context.Context, id string, deletedAt int64) error {
	note, ok := r.notes[id]
	if !ok {
		return store.ErrNoteNotFound
	}
	note.IsDeleted = true
	note.DeletedAt = &deletedAt
	r.notes[id] = note
	return nil
}

func (r *fakeNoteRepo) Restore(_ context.Context, id string) error {
	note, ok := r.notes[id]
	if !ok {
		return store.ErrNoteNotFound
	}
	note.IsDeleted = false
	note.DeletedAt = nil
	r.notes[id] = note
	return nil
}

func (r *fakeNoteRepo) SetFavorite(_ context.Context, id string, favorite bool) error {
	note, ok := r.notes[id]
	if !ok {
		return store.ErrNoteNotFound
	}
	note.IsFavorite = favorite
	r.notes[id] = note
	return nil
}

func (r *fakeNoteRepo) SetColorTag(_ context.Context, id, tag string) error {
	note, ok := r.notes[id]
	if !ok {
		return store.ErrNoteNotFound
	}
	note.ColorTag = tag
	r.notes[id] = note
	return nil
}

func (r *fakeNoteRepo) PurgeDeleted(_ context.Context) (int64, error) {
	var purged int64
	for id, n := range r.notes {
		if n.IsDeleted {
			delete(r.notes, id)
			purged++
		}
	}
	return purged, nil
}

func newNoteService(t *testing.T) (*service.NoteService, *fakeNoteRepo, *keystore.KeyVault) {
	t.Helper()
	keyStore := keystore.NewMemoryKeyStore()
	vault := keystore.NewKeyVault(keyStore, logger.Nop())
	cipher := crypto.NewFieldCipher(vault, logger.Nop())
	gateway := service.NewNoteCryptoGateway(cipher, logger.Nop())
	repo := newFakeNoteRepo()
	runner := tasks.NewRunner(logger.Nop())
	return service.NewNoteService(repo, gateway, runner, logger.Nop()), repo, vault
}

func TestSaveNote_AssignsIDAndEncrypts(t *testing.T) {
	svc, repo, _ := newNoteService(t)
	ctx := context.Background()

	saved, err := svc.SaveNote(ctx, models.Note{Title: "Plans", Content: "secret agenda"})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.NotZero(t, saved.CreatedAt)
	assert.NotZero(t, saved.UpdatedAt)

	stored := repo.notes[saved.ID]
	assert.NotContains(t, string(stored.Title), "Plans")
	assert.NotContains(t, string(stored.Content), "secret agenda")

	got, err := svc.GetNote(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Plans", got.Title)
	assert.Equal(t, "secret agenda", got.Content)
}

func TestSearchNotes_CaseInsensitiveAndSkipsBroken(t *testing.T) {
	svc, repo, _ := newNoteService(t)
	ctx := context.Background()

	_, err := svc.SaveNote(ctx, models.Note{Title: "Shopping List", Content: "apples"})
	require.NoError(t, err)
	saved2, err := svc.SaveNote(ctx, models.Note{Title: "Work", Content: "quarterly SHOPPING budget"})
	require.NoError(t, err)
	_, err = svc.SaveNote(ctx, models.Note{Title: "Unrelated", Content: "nothing here"})
	require.NoError(t, err)

	// Break one matching note; search must skip it instead of failing.
	broken := repo.notes[saved2.ID]
	broken.Content = "!!!not-a-blob!!!"
	repo.notes[saved2.ID] = broken

	matched, err := svc.SearchNotes(ctx, "shopping")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "Shopping List", matched[0].Title)
}

func TestListNotes_CorruptedNoteDoesNotAbortListing(t *testing.T) {
	svc, repo, _ := newNoteService(t)
	ctx := context.Background()

	saved, err := svc.SaveNote(ctx, models.Note{Title: "ok", Content: "fine"})
	require.NoError(t, err)
	saved2, err := svc.SaveNote(ctx, models.Note{Title: "bad", Content: "soon broken"})
	require.NoError(t, err)

	broken := repo.notes[saved2.ID]
	broken.Title = "!!!not-a-blob!!!"
	repo.notes[saved2.ID] = broken

	listed, err := svc.ListNotes(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)

	byID := map[string]service.NoteWithStatus{}
	for _, item := range listed {
		byID[item.Note.ID] = item
	}
	assert.True(t, byID[saved.ID].Status.OK())
	assert.Equal(t, crypto.FailureDataCorrupted, byID[saved2.ID].Status.Kind)
	assert.Equal(t, "soon broken", byID[saved2.ID].Note.Content, "intact field still recovered")
}

func TestSaveNoteDetached_CompletesIndependently(t *testing.T) {
	svc, repo, _ := newNoteService(t)

	handle := svc.SaveNoteDetached(models.Note{Title: "detached", Content: "survives"})
	require.NoError(t, handle.Wait(context.Background()))
	assert.Len(t, repo.notes, 1)
}

func TestExportImport_RoundTrip(t *testing.T) {
	svc, _, _ := newNoteService(t)
	ctx := context.Background()

	_, err := svc.SaveNote(ctx, models.Note{Title: "one", Content: "1"})
	require.NoError(t, err)
	saved2, err := svc.SaveNote(ctx, models.Note{Title: "two", Content: "2"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteNote(ctx, saved2.ID))

	// Export includes soft-deleted notes.
	exported, err := svc.ExportAll(ctx)
	require.NoError(t, err)
	require.Len(t, exported, 2)

	// Importing into a fresh service re-encrypts under that vault's key.
	svc2, repo2, _ := newNoteService(t)
	require.NoError(t, svc2.ImportNotes(ctx, exported))
	assert.Len(t, repo2.notes, 2)

	for _, note := range exported {
		got, err := svc2.GetNote(ctx, note.ID)
		require.NoError(t, err)
		assert.Equal(t, note.Title, got.Title)
		assert.Equal(t, note.Content, got.Content)
	}
}

func TestGetNote_AfterWipeFailsDeterministically(t *testing.T) {
	svc, _, vault := newNoteService(t)
	ctx := context.Background()

	saved, err := svc.SaveNote(ctx, models.Note{Title: "gone", Content: "soon"})
	require.NoError(t, err)

	require.NoError(t, vault.DeleteAll())

	_, err = svc.GetNote(ctx, saved.ID)
	assert.ErrorIs(t, err, crypto.ErrKeyInvalidated)
}
