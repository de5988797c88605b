package domain

import "errors"

// Error kinds. Every error returned by the store and the services wraps
// exactly one of these, so callers branch with errors.Is.
var (
	// ErrConfiguration reports a bad keystore path or format, or missing
	// passwords or key material.
	ErrConfiguration = errors.New("configuration error")

	// ErrAuthentication reports a wrong container or entry password.
	ErrAuthentication = errors.New("authentication failed")

	// ErrNotFound reports an unknown alias, or an alias holding the wrong
	// kind of entry.
	ErrNotFound = errors.New("entry not found")

	// ErrCryptographic reports malformed key bytes or a failing primitive.
	// The underlying cause is wrapped alongside it.
	ErrCryptographic = errors.New("cryptographic failure")
)
