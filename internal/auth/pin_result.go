package auth

// PinResult is the closed set of PIN verification outcomes. Verification
// never returns an error: every possible condition maps onto one of these
// values.
type PinResult int

const (
	// PinSuccess means the supplied PIN matched the user record.
	PinSuccess PinResult = iota

	// PinDuressTriggered means the supplied PIN matched the duress record.
	// The caller must behave exactly as on success towards the user while
	// silently signalling the coercion condition.
	PinDuressTriggered

	// PinInvalid means PIN auth is enabled and the supplied PIN matched
	// neither record.
	PinInvalid

	// PinNotSet means PIN auth is disabled.
	PinNotSet
)

// String implements fmt.Stringer for logging and diagnostics.
func (r PinResult) String() string {
	switch r {
	case PinSuccess:
		return "success"
	case PinDuressTriggered:
		return "duress_triggered"
	case PinInvalid:
		return "invalid_pin"
	case PinNotSet:
		return "pin_not_set"
	}
	return "invalid"
}
