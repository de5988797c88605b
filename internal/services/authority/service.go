package authority

import (
	"crypto/rsa"
	"crypto/x509"
	"fmt"
	"math/big"
	"sync/atomic"
	"time"

	"keystash/internal/crypto"
	"keystash/internal/domain"
)

// DefaultValidityMonths applies when IssueCertificate is given a
// non-positive validity.
const DefaultValidityMonths = 12

// lastSerial is the highest serial handed out by this process.
var lastSerial atomic.Int64

// Option configures a Service.
type Option func(*Service)

// WithKeyBits sets the RSA key strength; it must lie in [2048, 4096].
func WithKeyBits(bits int) Option {
	return func(s *Service) { s.bits = bits }
}

// WithClock overrides the issuance clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Service issues self-signed certificates.
type Service struct {
	src  domain.KeystoreSource
	bits int
	now  func() time.Time
}

// New returns a certificate authority storing into the keystore yielded by src.
func New(src domain.KeystoreSource, opts ...Option) *Service {
	s := &Service{
		src:  src,
		bits: crypto.DefaultRSABits,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateKeyPair returns a fresh RSA key at the configured strength.
func (s *Service) GenerateKeyPair() (*rsa.PrivateKey, error) {
	if err := crypto.ValidateRSABits(s.bits); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
	}
	key, err := crypto.GenerateRSA(s.bits)
	if err != nil {
		return nil, fmt.Errorf("%w: generate key pair: %w", domain.ErrCryptographic, err)
	}
	return key, nil
}

// IssueCertificate generates a key pair, self-signs a CA certificate for
// identity valid for validityMonths calendar months, and stores both under
// alias protected by entryPassword. Only the certificate is returned.
func (s *Service) IssueCertificate(
	alias string,
	entryPassword string,
	validityMonths int,
	identity domain.CertIdentity,
) (*x509.Certificate, error) {
	if alias == "" {
		return nil, fmt.Errorf("%w: alias is required", domain.ErrConfiguration)
	}
	if entryPassword == "" {
		return nil, fmt.Errorf("%w: entry password is required", domain.ErrConfiguration)
	}
	ks, err := s.src.Active()
	if err != nil {
		return nil, err
	}

	key, err := s.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	subject, err := crypto.EncodeDistinguishedName(identity)
	if err != nil {
		return nil, fmt.Errorf("%w: encode subject: %w", domain.ErrCryptographic, err)
	}

	if validityMonths <= 0 {
		validityMonths = DefaultValidityMonths
	}
	now := s.now().UTC()
	// Certificate times carry whole seconds only.
	notBefore := now.Truncate(time.Second)
	notAfter := crypto.AddMonths(notBefore, validityMonths)

	cert, err := crypto.SelfSignedCertificate(key, subject, nextSerial(now), notBefore, notAfter)
	if err != nil {
		return nil, fmt.Errorf("%w: create certificate: %w", domain.ErrCryptographic, err)
	}

	if err := ks.SetKeyPair(alias, key, []*x509.Certificate{cert}, entryPassword); err != nil {
		return nil, err
	}
	return cert, nil
}

// Credentials returns the encoded key pair and certificate stored as alias.
func (s *Service) Credentials(alias, entryPassword string) (domain.Credentials, error) {
	ks, err := s.src.Active()
	if err != nil {
		return domain.Credentials{}, err
	}
	key, chain, err := ks.KeyPair(alias, entryPassword)
	if err != nil {
		return domain.Credentials{}, err
	}
	if len(chain) == 0 {
		return domain.Credentials{}, fmt.Errorf("%w: alias %q has no certificate", domain.ErrNotFound, alias)
	}

	priv, err := crypto.MarshalPrivateKey(key)
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("%w: encode private key: %w", domain.ErrCryptographic, err)
	}
	pub, err := crypto.MarshalPublicKey(chain[0].PublicKey)
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("%w: encode public key: %w", domain.ErrCryptographic, err)
	}
	return domain.Credentials{
		PrivateKey:  priv,
		PublicKey:   pub,
		Certificate: chain[0],
	}, nil
}

// nextSerial derives a serial from t, bumped past any serial this process
// has already issued.
func nextSerial(t time.Time) *big.Int {
	ms := crypto.SerialFromTime(t).Int64()
	for {
		last := lastSerial.Load()
		next := ms
		if next <= last {
			next = last + 1
		}
		if lastSerial.CompareAndSwap(last, next) {
			return big.NewInt(next)
		}
	}
}

// Compile-time assertion that Service implements domain.CertificateAuthority.
var _ domain.CertificateAuthority = (*Service)(nil)
