package crypto

import (
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"

	"keystash/internal/domain"
)

// Fingerprint returns a short hex fingerprint of a certificate.
//
// It hashes the DER encoding with SHA-256 and truncates to 10 bytes (20 hex chars).
func Fingerprint(cert *x509.Certificate) domain.Fingerprint {
	sum := sha256.Sum256(cert.Raw)
	return domain.Fingerprint(hex.EncodeToString(sum[:10]))
}
