package store

import (
	stdcrypto "crypto"
	"crypto/x509"
	"errors"
	"fmt"
	"time"

	"software.sslmate.com/src/go-pkcs12"

	"keystash/internal/crypto"
	"keystash/internal/domain"
)

// ---------- Secrets ----------

// SetSecret seals secret under entryPassword and stores it as alias,
// replacing any existing entry.
func (k *Keystore) SetSecret(alias string, secret []byte, entryPassword string) error {
	if err := validateEntry(alias, entryPassword); err != nil {
		return err
	}
	if len(secret) == 0 {
		return fmt.Errorf("%w: secret for alias %q is empty", domain.ErrConfiguration, alias)
	}

	salt, err := crypto.NewSalt()
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrCryptographic, err)
	}
	nonce, ct, err := crypto.EncryptSecret(entryPassword, secret, salt, []byte(alias))
	if err != nil {
		return fmt.Errorf("%w: seal secret %q: %w", domain.ErrCryptographic, alias, err)
	}

	rec := entryRecord{
		Kind:    domain.EntrySecret,
		Salt:    salt,
		Nonce:   nonce,
		Sealed:  ct,
		Created: time.Now().Unix(),
	}
	if err := k.mutate(func(entries map[string]entryRecord) error {
		entries[alias] = rec
		return nil
	}); err != nil {
		return err
	}
	k.logger.Printf("keystore: stored %s entry %q", rec.Kind, alias)
	return nil
}

// Secret opens the secret stored as alias.
func (k *Keystore) Secret(alias, entryPassword string) ([]byte, error) {
	rec, err := k.lookup(alias)
	if err != nil {
		return nil, err
	}
	if rec.Kind != domain.EntrySecret {
		return nil, fmt.Errorf("%w: alias %q holds a %s, not a secret", domain.ErrNotFound, alias, rec.Kind)
	}
	pt, err := crypto.DecryptSecret(entryPassword, rec.Salt, rec.Nonce, rec.Sealed, []byte(alias))
	if err != nil {
		if errors.Is(err, crypto.ErrSecretAuth) {
			return nil, fmt.Errorf("%w: alias %q", domain.ErrAuthentication, alias)
		}
		return nil, fmt.Errorf("%w: open secret %q: %w", domain.ErrCryptographic, alias, err)
	}
	return pt, nil
}

// ---------- Key pairs ----------

// SetKeyPair stores key with its certificate chain as alias, replacing any
// existing entry. chain[0] must be the certificate for key.
func (k *Keystore) SetKeyPair(alias string, key stdcrypto.PrivateKey, chain []*x509.Certificate, entryPassword string) error {
	if err := validateEntry(alias, entryPassword); err != nil {
		return err
	}
	if key == nil {
		return fmt.Errorf("%w: private key for alias %q is missing", domain.ErrConfiguration, alias)
	}
	if len(chain) == 0 || chain[0] == nil {
		return fmt.Errorf("%w: certificate chain for alias %q is empty", domain.ErrConfiguration, alias)
	}

	pfx, err := pkcs12.Modern.Encode(key, chain[0], chain[1:], entryPassword)
	if err != nil {
		return fmt.Errorf("%w: encode key pair %q: %w", domain.ErrCryptographic, alias, err)
	}
	ders := make([][]byte, len(chain))
	for i, c := range chain {
		ders[i] = c.Raw
	}

	rec := entryRecord{
		Kind:    domain.EntryKeyPair,
		Sealed:  pfx,
		Chain:   ders,
		Created: time.Now().Unix(),
	}
	if err := k.mutate(func(entries map[string]entryRecord) error {
		entries[alias] = rec
		return nil
	}); err != nil {
		return err
	}
	k.logger.Printf("keystore: stored %s entry %q", rec.Kind, alias)
	return nil
}

// KeyPair recovers the private key and certificate chain stored as alias.
func (k *Keystore) KeyPair(alias, entryPassword string) (stdcrypto.PrivateKey, []*x509.Certificate, error) {
	rec, err := k.lookup(alias)
	if err != nil {
		return nil, nil, err
	}
	if rec.Kind != domain.EntryKeyPair {
		return nil, nil, fmt.Errorf("%w: alias %q holds a %s, not a key pair", domain.ErrNotFound, alias, rec.Kind)
	}
	key, cert, caCerts, err := pkcs12.DecodeChain(rec.Sealed, entryPassword)
	if err != nil {
		if errors.Is(err, pkcs12.ErrIncorrectPassword) {
			return nil, nil, fmt.Errorf("%w: alias %q", domain.ErrAuthentication, alias)
		}
		return nil, nil, fmt.Errorf("%w: decode key pair %q: %w", domain.ErrCryptographic, alias, err)
	}
	return key, append([]*x509.Certificate{cert}, caCerts...), nil
}

// CertificateChain returns the certificate chain stored as alias. No entry
// password is needed.
func (k *Keystore) CertificateChain(alias string) ([]*x509.Certificate, error) {
	rec, err := k.lookup(alias)
	if err != nil {
		return nil, err
	}
	if rec.Kind != domain.EntryKeyPair || len(rec.Chain) == 0 {
		return nil, fmt.Errorf("%w: alias %q has no certificate", domain.ErrNotFound, alias)
	}
	chain := make([]*x509.Certificate, len(rec.Chain))
	for i, der := range rec.Chain {
		c, err := x509.ParseCertificate(der)
		if err != nil {
			return nil, fmt.Errorf("%w: parse certificate %d of %q: %w", domain.ErrCryptographic, i, alias, err)
		}
		chain[i] = c
	}
	return chain, nil
}

func validateEntry(alias, entryPassword string) error {
	if alias == "" {
		return fmt.Errorf("%w: alias is required", domain.ErrConfiguration)
	}
	if entryPassword == "" {
		return fmt.Errorf("%w: entry password for alias %q is required", domain.ErrConfiguration, alias)
	}
	return nil
}
