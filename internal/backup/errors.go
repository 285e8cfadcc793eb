package backup

import "errors"

var (
	// ErrBackupTooShort is returned when the input cannot even contain the
	// salt and IV headers. This is a format error, reported distinctly from
	// decryption failure.
	ErrBackupTooShort = errors.New("backup file too short")

	// ErrWrongPasswordOrCorrupted is the single deliberately ambiguous
	// decryption failure. The codec never reveals whether the password was
	// wrong or the data corrupted: distinguishing the two would give an
	// attacker probing passwords an oracle.
	ErrWrongPasswordOrCorrupted = errors.New("incorrect password or corrupted backup")
)
