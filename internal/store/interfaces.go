package store

import (
	"context"

	"github.com/noteguard/noteguard/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// NoteRepository persists encrypted notes. Implementations never see
// plaintext: title and content arrive already encrypted by the service
// layer. Concurrent writes to the same note are resolved last-write-wins.
type NoteRepository interface {
	// Save inserts the note or replaces an existing row with the same ID.
	Save(ctx context.Context, note models.EncryptedNote) error

	// GetByID returns a single note or ErrNoteNotFound.
	GetByID(ctx context.Context, id string) (models.EncryptedNote, error)

	// ListActive returns all notes that are not soft-deleted.
	ListActive(ctx context.Context) ([]models.EncryptedNote, error)

	// ListAll returns every note including soft-deleted ones, for backup
	// export.
	ListAll(ctx context.Context) ([]models.EncryptedNote, error)

	// SoftDelete marks a note deleted at the given timestamp.
	SoftDelete(ctx context.Context, id string, deletedAt int64) error

	// Restore clears the deleted mark on a note.
	Restore(ctx context.Context, id string) error

	// SetFavorite toggles the favorite flag.
	SetFavorite(ctx context.Context, id string, favorite bool) error

	// SetColorTag updates the color tag.
	SetColorTag(ctx context.Context, id string, tag string) error

	// PurgeDeleted permanently removes soft-deleted rows and reports how
	// many were removed.
	PurgeDeleted(ctx context.Context) (int64, error)
}
