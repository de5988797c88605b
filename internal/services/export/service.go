package export

import (
	"bytes"
	"crypto/x509"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pavlo-v-chernykh/keystore-go/v4"
	"software.sslmate.com/src/go-pkcs12"

	"keystash/internal/crypto"
	"keystash/internal/domain"
	"keystash/internal/util/atomicfile"
)

// MinStorePassword is the shortest password a Java keystore accepts.
const MinStorePassword = 6

const (
	certFileMode = 0o644
	keyFileMode  = 0o600
)

// Service writes certificates and key material to files.
type Service struct {
	src domain.KeystoreSource
	sep string
}

// Option configures a Service.
type Option func(*Service)

// WithLineSeparator overrides the platform line separator used in
// certificate text files.
func WithLineSeparator(sep string) Option {
	return func(s *Service) { s.sep = sep }
}

// New returns an exporter reading key material from the keystore yielded
// by src. src may be nil when only certificates are exported.
func New(src domain.KeystoreSource, opts ...Option) *Service {
	s := &Service{src: src, sep: crypto.LineSeparator()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WriteCertificateToFile writes cert as certificate text to fileName,
// replacing any existing file, and returns the absolute path written.
func (s *Service) WriteCertificateToFile(cert *x509.Certificate, fileName string) (string, error) {
	if cert == nil {
		return "", fmt.Errorf("%w: no certificate to write", domain.ErrConfiguration)
	}
	text := crypto.EncodeCertificateText(cert.Raw, s.sep)
	return writeFile(fileName, []byte(text), certFileMode)
}

// ParseCertificateFile reads a certificate written by WriteCertificateToFile.
func (s *Service) ParseCertificateFile(fileName string) (*x509.Certificate, error) {
	b, err := os.ReadFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("read certificate %s: %w", fileName, err)
	}
	cert, err := crypto.ParseCertificateText(b)
	if err != nil {
		return nil, fmt.Errorf("%w: parse certificate %s: %w", domain.ErrCryptographic, fileName, err)
	}
	return cert, nil
}

// WritePKCS12 writes the key pair stored as alias to fileName as a
// standalone PKCS#12 file protected by exportPassword.
func (s *Service) WritePKCS12(alias, entryPassword, exportPassword, fileName string) (string, error) {
	if exportPassword == "" {
		return "", fmt.Errorf("%w: export password is required", domain.ErrConfiguration)
	}
	key, chain, err := s.keyPair(alias, entryPassword)
	if err != nil {
		return "", err
	}
	pfx, err := pkcs12.Modern.Encode(key, chain[0], chain[1:], exportPassword)
	if err != nil {
		return "", fmt.Errorf("%w: encode %q: %w", domain.ErrCryptographic, alias, err)
	}
	return writeFile(fileName, pfx, keyFileMode)
}

// WriteJavaKeyStore writes the key pair stored as alias to fileName as a
// JKS keystore. The store password also protects the key entry.
func (s *Service) WriteJavaKeyStore(alias, entryPassword, storePassword, fileName string) (string, error) {
	if err := checkStorePassword(storePassword); err != nil {
		return "", err
	}
	key, chain, err := s.keyPair(alias, entryPassword)
	if err != nil {
		return "", err
	}
	der, err := crypto.MarshalPrivateKey(key)
	if err != nil {
		return "", fmt.Errorf("%w: encode key %q: %w", domain.ErrCryptographic, alias, err)
	}
	certs := make([]keystore.Certificate, len(chain))
	for i, c := range chain {
		certs[i] = keystore.Certificate{Type: "X.509", Content: c.Raw}
	}

	ks := keystore.New()
	if err := ks.SetPrivateKeyEntry(alias, keystore.PrivateKeyEntry{
		CreationTime:     time.Now(),
		PrivateKey:       der,
		CertificateChain: certs,
	}, []byte(storePassword)); err != nil {
		return "", fmt.Errorf("%w: keystore entry %q: %w", domain.ErrCryptographic, alias, err)
	}
	return storeJKS(ks, storePassword, fileName)
}

// WriteTrustStore writes cert to fileName as a JKS trust store holding a
// single trusted certificate entry. The entry alias is the certificate's
// common name, or its fingerprint when the name is empty.
func (s *Service) WriteTrustStore(cert *x509.Certificate, fileName, storePassword string) (string, error) {
	if cert == nil {
		return "", fmt.Errorf("%w: no certificate to write", domain.ErrConfiguration)
	}
	if err := checkStorePassword(storePassword); err != nil {
		return "", err
	}

	ks := keystore.New()
	if err := ks.SetTrustedCertificateEntry(trustAlias(cert), keystore.TrustedCertificateEntry{
		CreationTime: time.Now(),
		Certificate:  keystore.Certificate{Type: "X.509", Content: cert.Raw},
	}); err != nil {
		return "", fmt.Errorf("%w: trusted entry: %w", domain.ErrCryptographic, err)
	}
	return storeJKS(ks, storePassword, fileName)
}

func (s *Service) keyPair(alias, entryPassword string) (any, []*x509.Certificate, error) {
	if s.src == nil {
		return nil, nil, fmt.Errorf("%w: no keystore bound", domain.ErrConfiguration)
	}
	ks, err := s.src.Active()
	if err != nil {
		return nil, nil, err
	}
	key, chain, err := ks.KeyPair(alias, entryPassword)
	if err != nil {
		return nil, nil, err
	}
	if len(chain) == 0 {
		return nil, nil, fmt.Errorf("%w: alias %q has no certificate", domain.ErrNotFound, alias)
	}
	return key, chain, nil
}

func storeJKS(ks keystore.KeyStore, storePassword, fileName string) (string, error) {
	var buf bytes.Buffer
	if err := ks.Store(&buf, []byte(storePassword)); err != nil {
		return "", fmt.Errorf("%w: encode keystore: %w", domain.ErrCryptographic, err)
	}
	return writeFile(fileName, buf.Bytes(), keyFileMode)
}

func checkStorePassword(pw string) error {
	if len(pw) < MinStorePassword {
		return fmt.Errorf("%w: store password must be at least %d characters", domain.ErrConfiguration, MinStorePassword)
	}
	return nil
}

func trustAlias(cert *x509.Certificate) string {
	if cn := strings.TrimSpace(cert.Subject.CommonName); cn != "" {
		return strings.ToLower(cn)
	}
	return crypto.Fingerprint(cert).String()
}

// writeFile atomically replaces fileName and returns its absolute path.
func writeFile(fileName string, b []byte, mode os.FileMode) (string, error) {
	if fileName == "" {
		return "", fmt.Errorf("%w: file name is required", domain.ErrConfiguration)
	}
	abs, err := filepath.Abs(fileName)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", fileName, err)
	}
	if err := atomicfile.Write(abs, b, mode); err != nil {
		return "", fmt.Errorf("write %s: %w", fileName, err)
	}
	return abs, nil
}

// Compile-time assertion that Service implements domain.CertificateExporter.
var _ domain.CertificateExporter = (*Service)(nil)
