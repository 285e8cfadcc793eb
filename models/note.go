package models

// CipheredField is a string alias representing an encrypted note field in
// its storage form: base64([1-byte iv-length][iv][ciphertext||tag]).
// The actual content is opaque to the database.
type CipheredField string

// Note is a decrypted note as seen by the application layer.
// Timestamps are Unix epoch milliseconds, matching the persisted columns and
// the backup wire format.
type Note struct {
	ID         string
	Title      string
	Content    string
	CreatedAt  int64
	UpdatedAt  int64
	IsFavorite bool
	ColorTag   string
	IsDeleted  bool
	DeletedAt  *int64
	IsLocked   bool
}

// EncryptedNote is the persisted form of a Note. Title and Content are
// encrypted independently so that corruption of one field never blocks
// recovery of the other. All remaining columns are stored in plaintext;
// the outer storage engine encrypts the database file as a whole.
type EncryptedNote struct {
	ID         string
	Title      CipheredField
	Content    CipheredField
	CreatedAt  int64
	UpdatedAt  int64
	IsFavorite bool
	ColorTag   string
	IsDeleted  bool
	DeletedAt  *int64
	IsLocked   bool
}
