package interfaces

import (
	"crypto/rsa"
	"crypto/x509"

	domaintypes "keystash/internal/domain/types"
)

// SecretService stores and retrieves opaque symmetric secrets.
type SecretService interface {
	Store(alias string, secret []byte, entryPassword string) error
	Retrieve(alias, entryPassword string) ([]byte, error)
}

// CertificateAuthority generates RSA key pairs and issues self-signed
// certificates for them.
type CertificateAuthority interface {
	GenerateKeyPair() (*rsa.PrivateKey, error)
	IssueCertificate(
		alias string,
		entryPassword string,
		validityMonths int,
		identity domaintypes.CertIdentity,
	) (*x509.Certificate, error)
	Credentials(alias, entryPassword string) (domaintypes.Credentials, error)
}

// SignatureService signs with stored keys and verifies with stored certificates.
type SignatureService interface {
	Sign(alias, entryPassword string, message []byte) (domaintypes.SignResult, error)
	Verify(alias string, signature, message []byte) (bool, error)
}

// CipherService encrypts and decrypts with raw DER key bytes.
type CipherService interface {
	Encrypt(publicKeyDER, plaintext []byte) ([]byte, error)
	Decrypt(privateKeyDER, ciphertext []byte) ([]byte, error)
}

// CertificateExporter writes certificates and key material to files.
type CertificateExporter interface {
	WriteCertificateToFile(cert *x509.Certificate, fileName string) (string, error)
	ParseCertificateFile(fileName string) (*x509.Certificate, error)
	WritePKCS12(alias, entryPassword, exportPassword, fileName string) (string, error)
	WriteJavaKeyStore(alias, entryPassword, storePassword, fileName string) (string, error)
	WriteTrustStore(cert *x509.Certificate, fileName, storePassword string) (string, error)
}
