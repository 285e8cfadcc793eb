package models

// BackupBundleVersion identifies the current backup payload layout.
// Bump only on incompatible changes; restore accepts any version it can parse.
const BackupBundleVersion = 1

// BackupNote carries every persisted note field in plaintext. The whole
// bundle is encrypted as a single unit before it leaves the backup codec,
// so individual fields need no protection of their own.
type BackupNote struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	CreatedAt  int64  `json:"createdAt"`
	UpdatedAt  int64  `json:"updatedAt"`
	IsFavorite bool   `json:"isFavorite"`
	ColorTag   string `json:"colorTag"`
	IsDeleted  bool   `json:"isDeleted"`
	DeletedAt  *int64 `json:"deletedAt,omitempty"`
	IsLocked   bool   `json:"isLocked"`
}

// BackupBundle is the plaintext payload of an exported backup file.
type BackupBundle struct {
	Version   int          `json:"version"`
	Timestamp int64        `json:"timestamp"`
	Notes     []BackupNote `json:"notes"`
}

// ToBackupNote converts a decrypted Note into its backup representation.
func (n Note) ToBackupNote() BackupNote {
	return BackupNote{
		ID:         n.ID,
		Title:      n.Title,
		Content:    n.Content,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
		IsFavorite: n.IsFavorite,
		ColorTag:   n.ColorTag,
		IsDeleted:  n.IsDeleted,
		DeletedAt:  n.DeletedAt,
		IsLocked:   n.IsLocked,
	}
}

// ToNote converts a restored BackupNote back into a domain Note.
func (b BackupNote) ToNote() Note {
	return Note{
		ID:         b.ID,
		Title:      b.Title,
		Content:    b.Content,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
		IsFavorite: b.IsFavorite,
		ColorTag:   b.ColorTag,
		IsDeleted:  b.IsDeleted,
		DeletedAt:  b.DeletedAt,
		IsLocked:   b.IsLocked,
	}
}
