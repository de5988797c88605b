package interfaces

import (
	"crypto"
	"crypto/x509"

	domaintypes "keystash/internal/domain/types"
)

// Keystore is one bound, password-protected container of aliased entries.
// Every mutating call persists the whole container before returning.
type Keystore interface {
	// Path returns the container file location.
	Path() string

	// Aliases lists the stored aliases in sorted order.
	Aliases() []string
	Contains(alias string) bool
	// Entry reports the kind and creation time of alias.
	Entry(alias string) (domaintypes.EntryInfo, error)

	// Symmetric secrets
	SetSecret(alias string, secret []byte, entryPassword string) error
	Secret(alias, entryPassword string) ([]byte, error)

	// Private keys with certificate chains
	SetKeyPair(alias string, key crypto.PrivateKey, chain []*x509.Certificate, entryPassword string) error
	KeyPair(alias, entryPassword string) (crypto.PrivateKey, []*x509.Certificate, error)
	// CertificateChain reads the chain without the entry password.
	CertificateChain(alias string) ([]*x509.Certificate, error)

	DeleteEntry(alias string) error

	// Reload replaces the in-memory entries with the file contents.
	Reload() error
}

// KeystoreSource yields the keystore services operate on. Services call
// Active on every operation so that a rebinding is picked up.
type KeystoreSource interface {
	Active() (Keystore, error)
}
