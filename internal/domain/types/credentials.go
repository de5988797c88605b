package types

import (
	"crypto/x509"
	"encoding/base64"
)

// Credentials is the exportable view of a stored key pair.
type Credentials struct {
	// PrivateKey is the PKCS#8 DER encoding of the private key.
	PrivateKey []byte
	// PublicKey is the PKIX DER encoding of the certificate's public key.
	PublicKey   []byte
	Certificate *x509.Certificate
}

// Base64PrivateKey returns the private key as standard base64.
func (c Credentials) Base64PrivateKey() string {
	return base64.StdEncoding.EncodeToString(c.PrivateKey)
}

// Base64PublicKey returns the public key as standard base64.
func (c Credentials) Base64PublicKey() string {
	return base64.StdEncoding.EncodeToString(c.PublicKey)
}
