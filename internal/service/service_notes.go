package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/noteguard/noteguard/internal/logger"
	"github.com/noteguard/noteguard/internal/store"
	"github.com/noteguard/noteguard/internal/tasks"
	"github.com/noteguard/noteguard/models"
)

// NoteService is the application-facing note API: persistence through the
// crypto gateway, in-memory search, and detached critical saves.
type NoteService struct {
	repo    store.NoteRepository
	gateway *NoteCryptoGateway
	runner  *tasks.Runner
	logger  *logger.Logger
}

// NewNoteService constructs a NoteService.
func NewNoteService(repo store.NoteRepository, gateway *NoteCryptoGateway, runner *tasks.Runner, log *logger.Logger) *NoteService {
	return &NoteService{repo: repo, gateway: gateway, runner: runner, logger: log}
}

// SaveNote encrypts and persists a note, assigning an ID and timestamps
// where missing. Concurrent saves of the same note resolve last-write-wins
// at the storage layer.
func (s *NoteService) SaveNote(ctx context.Context, note models.Note) (models.Note, error) {
	now := time.Now().UnixMilli()
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	if note.CreatedAt == 0 {
		note.CreatedAt = now
	}
	note.UpdatedAt = now

	enc, err := s.gateway.EncryptNote(note)
	if err != nil {
		return models.Note{}, err
	}
	if err := s.repo.Save(ctx, enc); err != nil {
		return models.Note{}, err
	}
	return note, nil
}

// SaveNoteDetached runs SaveNote as a detached critical task so the write
// completes even if the caller is torn down mid-navigation. The caller may
// await the returned handle when it must block on a successful save.
func (s *NoteService) SaveNoteDetached(note models.Note) *tasks.Handle {
	return s.runner.Submit("save_note", func(ctx context.Context) error {
		_, err := s.SaveNote(ctx, note)
		return err
	})
}

// GetNote loads and fully decrypts one note.
func (s *NoteService) GetNote(ctx context.Context, id string) (models.Note, error) {
	enc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.Note{}, err
	}
	return s.gateway.DecryptNote(enc)
}

// ListNotes returns every active note with its per-note decryption status.
// One corrupted note never aborts the listing.
func (s *NoteService) ListNotes(ctx context.Context) ([]NoteWithStatus, error) {
	encrypted, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]NoteWithStatus, 0, len(encrypted))
	for _, enc := range encrypted {
		out = append(out, s.gateway.DecryptNoteWithStatus(enc))
	}
	return out, nil
}

// SearchNotes decrypts the full active note set and filters it in memory
// with a case-insensitive substring match over title and content. This is
// an explicit O(n) tradeoff: field-level encryption rules out database-side
// search, and personal-scale note counts keep the scan cheap. Notes whose
// decryption failed are skipped.
func (s *NoteService) SearchNotes(ctx context.Context, query string) ([]models.Note, error) {
	listed, err := s.ListNotes(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	var matched []models.Note
	for _, item := range listed {
		if !item.Status.OK() {
			continue
		}
		if strings.Contains(strings.ToLower(item.Note.Title), needle) ||
			strings.Contains(strings.ToLower(item.Note.Content), needle) {
			matched = append(matched, item.Note)
		}
	}
	return matched, nil
}

// DeleteNote soft-deletes a note.
func (s *NoteService) DeleteNote(ctx context.Context, id string) error {
	return s.repo.SoftDelete(ctx, id, time.Now().UnixMilli())
}

// RestoreNote clears the deleted mark on a note.
func (s *NoteService) RestoreNote(ctx context.Context, id string) error {
	return s.repo.Restore(ctx, id)
}

// SetFavorite toggles the favorite flag.
func (s *NoteService) SetFavorite(ctx context.Context, id string, favorite bool) error {
	return s.repo.SetFavorite(ctx, id, favorite)
}

// SetColorTag updates the color tag.
func (s *NoteService) SetColorTag(ctx context.Context, id, tag string) error {
	return s.repo.SetColorTag(ctx, id, tag)
}

// PurgeDeleted permanently removes soft-deleted notes.
func (s *NoteService) PurgeDeleted(ctx context.Context) (int64, error) {
	return s.repo.PurgeDeleted(ctx)
}

// ExportAll decrypts every note, including soft-deleted ones, for backup
// export. Notes that cannot be decrypted are skipped with a warning: a
// backup must contain only data that can actually be restored.
func (s *NoteService) ExportAll(ctx context.Context) ([]models.Note, error) {
	encrypted, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	notes := make([]models.Note, 0, len(encrypted))
	for _, enc := range encrypted {
		note, err := s.gateway.DecryptNote(enc)
		if err != nil {
			s.logger.Warn().Err(err).Str("note_id", enc.ID).
				Msg("skipping undecryptable note in export")
			continue
		}
		notes = append(notes, note)
	}
	return notes, nil
}

// ImportNotes re-encrypts and persists restored notes under the current
// content key. Notes without an ID get a fresh one.
func (s *NoteService) ImportNotes(ctx context.Context, notes []models.Note) error {
	for _, note := range notes {
		if note.ID == "" {
			note.ID = uuid.NewString()
		}
		enc, err := s.gateway.EncryptNote(note)
		if err != nil {
			return err
		}
		if err := s.repo.Save(ctx, enc); err != nil {
			return err
		}
	}
	return nil
}
