package crypto

import "errors"

// FailureKind enumerates the closed set of field-decryption failure
// classes. The zero value FailureNone marks a successful outcome.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureKeyInvalidated
	FailureAuthenticationRequired
	FailureDataCorrupted
	FailureUnknown
)

// String implements fmt.Stringer for logging and diagnostics.
func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureKeyInvalidated:
		return "key_invalidated"
	case FailureAuthenticationRequired:
		return "authentication_required"
	case FailureDataCorrupted:
		return "data_corrupted"
	case FailureUnknown:
		return "unknown"
	}
	return "invalid"
}

// Outcome is the tagged result of a decryption attempt: either success or a
// classified failure. It lets list rendering distinguish "note is fine"
// from "note needs recovery action" without crashing.
type Outcome struct {
	Kind FailureKind
}

// Success returns the successful Outcome.
func Success() Outcome { return Outcome{Kind: FailureNone} }

// Failure returns a failed Outcome of the given kind.
func Failure(kind FailureKind) Outcome { return Outcome{Kind: kind} }

// OK reports whether the decryption succeeded.
func (o Outcome) OK() bool { return o.Kind == FailureNone }

// Classify maps an error returned by FieldCipher into its FailureKind.
// A nil error maps to FailureNone.
func Classify(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrKeyInvalidated):
		return FailureKeyInvalidated
	case errors.Is(err, ErrAuthenticationRequired):
		return FailureAuthenticationRequired
	case errors.Is(err, ErrDataCorrupted):
		return FailureDataCorrupted
	default:
		return FailureUnknown
	}
}
