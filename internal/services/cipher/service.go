package cipher

import (
	"fmt"

	"keystash/internal/crypto"
	"keystash/internal/domain"
)

// Service performs RSA PKCS#1 v1.5 encryption with caller-supplied keys.
type Service struct{}

// New returns a cipher service.
func New() *Service { return &Service{} }

// Encrypt encrypts plaintext to the PKIX (or PKCS#1) DER public key.
// The plaintext may be at most the modulus size minus 11 bytes.
func (s *Service) Encrypt(publicKeyDER, plaintext []byte) ([]byte, error) {
	pub, err := crypto.ParsePublicKey(publicKeyDER)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCryptographic, err)
	}
	ct, err := crypto.EncryptPKCS1v15(pub, plaintext)
	if err != nil {
		return nil, fmt.Errorf("%w: encrypt: %w", domain.ErrCryptographic, err)
	}
	return ct, nil
}

// Decrypt decrypts ciphertext with the PKCS#8 (or PKCS#1) DER private key.
func (s *Service) Decrypt(privateKeyDER, ciphertext []byte) ([]byte, error) {
	priv, err := crypto.ParsePrivateKey(privateKeyDER)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCryptographic, err)
	}
	pt, err := crypto.DecryptPKCS1v15(priv, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: decrypt: %w", domain.ErrCryptographic, err)
	}
	return pt, nil
}

// Compile-time assertion that Service implements domain.CipherService.
var _ domain.CipherService = (*Service)(nil)
