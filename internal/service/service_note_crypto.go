// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Noteguard Authors

// Package service composes the crypto primitives and the persistence layer
// into the operations the application layer calls.
package service

import (
	"github.com/noteguard/noteguard/internal/crypto"
	"github.com/noteguard/noteguard/internal/logger"
	"github.com/noteguard/noteguard/models"
)

// Placeholder strings substituted for a field that could not be decrypted.
// Each failure kind maps to a distinct, user-facing recovery hint.
const (
	placeholderKeyInvalidated = "[Key Invalidated - Restore from Backup]"
	placeholderAuthRequired   = "[Locked - Authentication Required]"
	placeholderCorrupted      = "[Data Corrupted]"
	placeholderUnknown        = "[Unable to Decrypt]"
)

// NoteWithStatus pairs a best-effort decrypted note with the classification
// of its decryption, letting list rendering distinguish healthy notes from
// ones needing recovery action without crashing.
type NoteWithStatus struct {
	Note   models.Note
	Status crypto.Outcome
}

// NoteCryptoGateway encrypts and decrypts individual note records. Title
// and content are processed independently: a corrupted or unrecoverable
// title never blocks recovery of the content, and vice versa.
type NoteCryptoGateway struct {
	cipher *crypto.FieldCipher
	logger *logger.Logger
}

// NewNoteCryptoGateway constructs a NoteCryptoGateway.
func NewNoteCryptoGateway(cipher *crypto.FieldCipher, log *logger.Logger) *NoteCryptoGateway {
	return &NoteCryptoGateway{cipher: cipher, logger: log}
}

// EncryptNote produces the persisted form of a note. Each field is sealed
// under its own fresh IV.
func (g *NoteCryptoGateway) EncryptNote(note models.Note) (models.EncryptedNote, error) {
	title, err := g.cipher.EncryptString(note.Title)
	if err != nil {
		return models.EncryptedNote{}, err
	}
	content, err := g.cipher.EncryptString(note.Content)
	if err != nil {
		return models.EncryptedNote{}, err
	}

	return models.EncryptedNote{
		ID:         note.ID,
		Title:      models.CipheredField(title),
		Content:    models.CipheredField(content),
		CreatedAt:  note.CreatedAt,
		UpdatedAt:  note.UpdatedAt,
		IsFavorite: note.IsFavorite,
		ColorTag:   note.ColorTag,
		IsDeleted:  note.IsDeleted,
		DeletedAt:  note.DeletedAt,
		IsLocked:   note.IsLocked,
	}, nil
}

// DecryptNote returns the fully decrypted note, or the classified error of
// the first failed field alongside the best-effort result.
func (g *NoteCryptoGateway) DecryptNote(enc models.EncryptedNote) (models.Note, error) {
	note, titleErr, contentErr := g.decryptFields(enc)
	if titleErr != nil {
		return note, titleErr
	}
	if contentErr != nil {
		return note, contentErr
	}
	return note, nil
}

// DecryptNoteWithStatus decrypts both fields independently and returns the
// best-effort note together with a per-note outcome. A failed field is
// replaced with a descriptive placeholder; the outcome carries the
// classification of the first failure (title before content).
func (g *NoteCryptoGateway) DecryptNoteWithStatus(enc models.EncryptedNote) NoteWithStatus {
	note, titleErr, contentErr := g.decryptFields(enc)

	firstErr := titleErr
	if firstErr == nil {
		firstErr = contentErr
	}
	kind := crypto.Classify(firstErr)
	if kind != crypto.FailureNone {
		g.logger.Warn().Str("note_id", enc.ID).Str("kind", kind.String()).
			Msg("note field decryption failed")
	}

	return NoteWithStatus{Note: note, Status: crypto.Outcome{Kind: kind}}
}

// decryptFields decrypts title and content independently, substituting a
// placeholder for each failed field.
func (g *NoteCryptoGateway) decryptFields(enc models.EncryptedNote) (note models.Note, titleErr, contentErr error) {
	note = models.Note{
		ID:         enc.ID,
		CreatedAt:  enc.CreatedAt,
		UpdatedAt:  enc.UpdatedAt,
		IsFavorite: enc.IsFavorite,
		ColorTag:   enc.ColorTag,
		IsDeleted:  enc.IsDeleted,
		DeletedAt:  enc.DeletedAt,
		IsLocked:   enc.IsLocked,
	}

	note.Title, titleErr = g.cipher.DecryptString(string(enc.Title))
	if titleErr != nil {
		note.Title = placeholderFor(crypto.Classify(titleErr))
	}
	note.Content, contentErr = g.cipher.DecryptString(string(enc.Content))
	if contentErr != nil {
		note.Content = placeholderFor(crypto.Classify(contentErr))
	}
	return note, titleErr, contentErr
}

// placeholderFor maps every failure kind to its user-facing placeholder.
// The switch is exhaustive over the closed set; FailureNone cannot reach it.
func placeholderFor(kind crypto.FailureKind) string {
	switch kind {
	case crypto.FailureKeyInvalidated:
		return placeholderKeyInvalidated
	case crypto.FailureAuthenticationRequired:
		return placeholderAuthRequired
	case crypto.FailureDataCorrupted:
		return placeholderCorrupted
	case crypto.FailureUnknown, crypto.FailureNone:
		return placeholderUnknown
	}
	return placeholderUnknown
}
