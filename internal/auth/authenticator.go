// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Noteguard Authors

// Package auth implements PIN-based authentication with a covert duress
// mode and transparent upgrade of legacy hash records.
package auth

import (
	"github.com/noteguard/noteguard/internal/logger"
)

//go:generate mockgen -source=authenticator.go -destination=../mock/pin_store_mock.go -package=mock

// PinStore persists the authenticator's entire externally held state: the
// two hash records and the enabled flag. The preference store implements
// it.
type PinStore interface {
	UserPinHash() string
	DuressPinHash() string
	PinEnabled() bool
	SetUserPinHash(hash string) error
	SetDuressPinHash(hash string) error
	SetPinEnabled(enabled bool) error
	ClearPins() error
}

// PinAuthenticator verifies user-supplied PINs against salted hash records.
// It holds no state of its own: everything lives in the PinStore.
type PinAuthenticator struct {
	store  PinStore
	logger *logger.Logger
}

// NewPinAuthenticator constructs a PinAuthenticator over the given store.
func NewPinAuthenticator(store PinStore, log *logger.Logger) *PinAuthenticator {
	return &PinAuthenticator{store: store, logger: log}
}

// SetUserPin validates the PIN shape (4-8 digits), stores a versioned hash
// and enables PIN auth. Returns false without persisting anything if the
// shape is invalid, the new PIN would collide with the configured duress
// PIN, or persistence fails.
func (a *PinAuthenticator) SetUserPin(pin string) bool {
	if !validPinShape(pin) {
		return false
	}

	// Duress must stay distinguishable from the user PIN, enforced at
	// write time on whichever record is being set.
	if duress := a.store.DuressPinHash(); duress != "" {
		if match, _ := verifyHash(pin, duress); match {
			return false
		}
	}

	hash, err := hashPinVersioned(pin)
	if err != nil {
		a.logger.Error().Err(err).Msg("hash user pin")
		return false
	}
	if err := a.store.SetUserPinHash(hash); err != nil {
		a.logger.Error().Err(err).Msg("persist user pin")
		return false
	}
	if err := a.store.SetPinEnabled(true); err != nil {
		a.logger.Error().Err(err).Msg("enable pin auth")
		return false
	}
	return true
}

// SetDuressPin validates the PIN shape and stores a versioned duress hash.
// Returns false without persisting if the shape is invalid or the PIN
// matches the current user PIN.
func (a *PinAuthenticator) SetDuressPin(pin string) bool {
	if !validPinShape(pin) {
		return false
	}

	if user := a.store.UserPinHash(); user != "" {
		if match, _ := verifyHash(pin, user); match {
			return false
		}
	}

	hash, err := hashPinVersioned(pin)
	if err != nil {
		a.logger.Error().Err(err).Msg("hash duress pin")
		return false
	}
	if err := a.store.SetDuressPinHash(hash); err != nil {
		a.logger.Error().Err(err).Msg("persist duress pin")
		return false
	}
	return true
}

// VerifyPin checks pin against the duress record first, then the user
// record. A successful match against a legacy record rewrites that record
// in versioned form exactly once; a versioned match never writes. No path
// returns an error: failures inside migration are logged and do not affect
// the result.
func (a *PinAuthenticator) VerifyPin(pin string) PinResult {
	if !a.store.PinEnabled() {
		return PinNotSet
	}

	if duress := a.store.DuressPinHash(); duress != "" {
		if match, legacy := verifyHash(pin, duress); match {
			if legacy {
				a.migrate(pin, a.store.SetDuressPinHash)
			}
			return PinDuressTriggered
		}
	}

	if user := a.store.UserPinHash(); user != "" {
		if match, legacy := verifyHash(pin, user); match {
			if legacy {
				a.migrate(pin, a.store.SetUserPinHash)
			}
			return PinSuccess
		}
	}

	return PinInvalid
}

// DisablePin clears both records and the enabled flag.
func (a *PinAuthenticator) DisablePin() error {
	return a.store.ClearPins()
}

// migrate rewrites a legacy record in versioned form after a successful
// match. Verification already succeeded, so a failure here is logged and
// swallowed; the record stays legacy and will be retried next time.
func (a *PinAuthenticator) migrate(pin string, write func(string) error) {
	hash, err := hashPinVersioned(pin)
	if err != nil {
		a.logger.Warn().Err(err).Msg("legacy pin migration: hash")
		return
	}
	if err := write(hash); err != nil {
		a.logger.Warn().Err(err).Msg("legacy pin migration: persist")
		return
	}
	a.logger.Info().Msg("migrated legacy pin record to versioned format")
}

// validPinShape reports whether pin is 4-8 ASCII digits.
func validPinShape(pin string) bool {
	if len(pin) < 4 || len(pin) > 8 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
