package types

import "time"

// Fingerprint is a short identifier for certificates presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// EntryKind tells what an alias holds.
type EntryKind uint8

const (
	// EntryUnknown is the zero value and never stored.
	EntryUnknown EntryKind = iota
	// EntrySecret is an opaque symmetric secret.
	EntrySecret
	// EntryKeyPair is a private key with its certificate chain.
	EntryKeyPair
)

// String returns the string form of the kind.
func (k EntryKind) String() string {
	switch k {
	case EntrySecret:
		return "secret"
	case EntryKeyPair:
		return "keypair"
	default:
		return "unknown"
	}
}

// EntryInfo describes a stored entry without opening it.
type EntryInfo struct {
	Alias   string
	Kind    EntryKind
	Created time.Time
}
