package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
)

// Accepted RSA strengths.
const (
	MinRSABits     = 2048
	MaxRSABits     = 4096
	DefaultRSABits = 2048
)

// ValidateRSABits reports whether bits is an accepted key strength.
func ValidateRSABits(bits int) error {
	if bits < MinRSABits || bits > MaxRSABits || bits%8 != 0 {
		return fmt.Errorf("rsa key size %d outside [%d, %d]", bits, MinRSABits, MaxRSABits)
	}
	return nil
}

// GenerateRSA returns a new RSA key of the given strength.
func GenerateRSA(bits int) (*rsa.PrivateKey, error) {
	if err := ValidateRSABits(bits); err != nil {
		return nil, err
	}
	return rsa.GenerateKey(rand.Reader, bits)
}
