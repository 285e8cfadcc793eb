package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/noteguard/noteguard/internal/logger"
	"github.com/noteguard/noteguard/models"
)

const notesTable = "notes"

var noteColumns = []string{
	"id", "title", "content", "created_at", "updated_at",
	"is_favorite", "color_tag", "is_deleted", "deleted_at", "is_locked",
}

type noteRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewNoteRepository constructs the sqlite-backed NoteRepository.
func NewNoteRepository(db *DB, log *logger.Logger) NoteRepository {
	return &noteRepository{db: db, logger: log}
}

func (r *noteRepository) Save(ctx context.Context, note models.EncryptedNote) error {
	query, args, err := sq.Replace(notesTable).
		Columns(noteColumns...).
		Values(
			note.ID, string(note.Title), string(note.Content),
			note.CreatedAt, note.UpdatedAt,
			note.IsFavorite, note.ColorTag,
			note.IsDeleted, note.DeletedAt, note.IsLocked,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNoteNotSaved
	}
	return nil
}

func (r *noteRepository) GetByID(ctx context.Context, id string) (models.EncryptedNote, error) {
	query, args, err := sq.Select(noteColumns...).
		From(notesTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.EncryptedNote{}, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	note, err := scanNote(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.EncryptedNote{}, ErrNoteNotFound
		}
		return models.EncryptedNote{}, err
	}
	return note, nil
}

func (r *noteRepository) ListActive(ctx context.Context) ([]models.EncryptedNote, error) {
	return r.list(ctx, sq.Eq{"is_deleted": false})
}

func (r *noteRepository) ListAll(ctx context.Context) ([]models.EncryptedNote, error) {
	return r.list(ctx, nil)
}

func (r *noteRepository) SoftDelete(ctx context.Context, id string, deletedAt int64) error {
	return r.update(ctx, id, map[string]any{
		"is_deleted": true,
		"deleted_at": deletedAt,
		"updated_at": deletedAt,
	})
}

func (r *noteRepository) Restore(ctx context.Context, id string) error {
	return r.update(ctx, id, map[string]any{
		"is_deleted": false,
		"deleted_at": nil,
	})
}

func (r *noteRepository) SetFavorite(ctx context.Context, id string, favorite bool) error {
	return r.update(ctx, id, map[string]any{"is_favorite": favorite})
}

func (r *noteRepository) SetColorTag(ctx context.Context, id string, tag string) error {
	return r.update(ctx, id, map[string]any{"color_tag": tag})
}

func (r *noteRepository) PurgeDeleted(ctx context.Context) (int64, error) {
	query, args, err := sq.Delete(notesTable).
		Where(sq.Eq{"is_deleted": true}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}
	return n, nil
}

func (r *noteRepository) list(ctx context.Context, where any) ([]models.EncryptedNote, error) {
	builder := sq.Select(noteColumns...).From(notesTable).OrderBy("updated_at DESC")
	if where != nil {
		builder = builder.Where(where)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var notes []models.EncryptedNote
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}
	return notes, nil
}

func (r *noteRepository) update(ctx context.Context, id string, values map[string]any) error {
	query, args, err := sq.Update(notesTable).
		SetMap(values).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanNote(s scanner) (models.EncryptedNote, error) {
	var (
		note    models.EncryptedNote
		title   string
		content string
	)
	err := s.Scan(
		&note.ID, &title, &content, &note.CreatedAt, &note.UpdatedAt,
		&note.IsFavorite, &note.ColorTag, &note.IsDeleted, &note.DeletedAt, &note.IsLocked,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.EncryptedNote{}, err
		}
		return models.EncryptedNote{}, fmt.Errorf("%w: %v", ErrScanningRow, err)
	}
	note.Title = models.CipheredField(title)
	note.Content = models.CipheredField(content)
	return note, nil
}
