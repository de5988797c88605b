package signature

import (
	"crypto/rsa"
	"crypto/x509"
	"fmt"

	"keystash/internal/crypto"
	"keystash/internal/domain"
)

// Service signs and verifies with stored key pairs.
type Service struct {
	src domain.KeystoreSource
}

// New returns a signature service operating on the keystore yielded by src.
func New(src domain.KeystoreSource) *Service { return &Service{src: src} }

// Sign signs message with the private key stored as alias.
//
// The signature is verified with the public key of the entry's certificate
// before it is returned. If that check fails the result carries
// SignOutcomeVerificationFailed and no signature, with a nil error.
func (s *Service) Sign(alias, entryPassword string, message []byte) (domain.SignResult, error) {
	ks, err := s.src.Active()
	if err != nil {
		return domain.SignResult{}, err
	}
	key, chain, err := ks.KeyPair(alias, entryPassword)
	if err != nil {
		return domain.SignResult{}, err
	}
	priv, ok := key.(*rsa.PrivateKey)
	if !ok {
		return domain.SignResult{}, fmt.Errorf("%w: alias %q: %w", domain.ErrCryptographic, alias, crypto.ErrNotRSA)
	}
	pub, err := certificateKey(alias, chain)
	if err != nil {
		return domain.SignResult{}, err
	}

	sig, err := crypto.SignPKCS1v15(priv, message)
	if err != nil {
		return domain.SignResult{}, fmt.Errorf("%w: sign with %q: %w", domain.ErrCryptographic, alias, err)
	}
	if !crypto.VerifyPKCS1v15(pub, message, sig) {
		return domain.SignResult{Outcome: domain.SignOutcomeVerificationFailed}, nil
	}
	return domain.SignResult{Outcome: domain.SignOutcomeSigned, Signature: sig}, nil
}

// Verify reports whether signature is valid for message under the public
// key of the certificate stored as alias. Only the stored certificate is
// consulted; no entry password is needed.
func (s *Service) Verify(alias string, signature, message []byte) (bool, error) {
	ks, err := s.src.Active()
	if err != nil {
		return false, err
	}
	chain, err := ks.CertificateChain(alias)
	if err != nil {
		return false, err
	}
	pub, err := certificateKey(alias, chain)
	if err != nil {
		return false, err
	}
	return crypto.VerifyPKCS1v15(pub, message, signature), nil
}

func certificateKey(alias string, chain []*x509.Certificate) (*rsa.PublicKey, error) {
	if len(chain) == 0 || chain[0] == nil {
		return nil, fmt.Errorf("%w: alias %q has no certificate", domain.ErrNotFound, alias)
	}
	pub, ok := chain[0].PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: certificate of %q: %w", domain.ErrCryptographic, alias, crypto.ErrNotRSA)
	}
	return pub, nil
}

// Compile-time assertion that Service implements domain.SignatureService.
var _ domain.SignatureService = (*Service)(nil)
