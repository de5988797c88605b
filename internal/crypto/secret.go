package crypto

import (
	"crypto/rand"
	"errors"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"keystash/internal/util/memzero"
)

const (
	KeyBytes   = chacha20poly1305.KeySize
	SaltBytes  = 16
	NonceBytes = chacha20poly1305.NonceSize
)

// Argon2id cost for entry passwords (OWASP minimum profile).
const (
	argonTime    = 2
	argonMemory  = 19 * 1024
	argonThreads = 1
)

var (
	// ErrSecretAuth is returned when the passphrase is wrong or the sealed
	// secret was modified.
	ErrSecretAuth = errors.New("wrong passphrase or corrupted secret")

	errSaltSize = errors.New("invalid salt size")
)

// DeriveKEK derives a key-encryption key from a passphrase and salt using Argon2id.
func DeriveKEK(passphrase string, salt []byte) []byte {
	return argon2.IDKey([]byte(passphrase), salt, argonTime, argonMemory, argonThreads, KeyBytes)
}

// NewSalt returns SaltBytes random bytes.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltBytes)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// EncryptSecret encrypts plaintext with a KEK derived from the passphrase and
// salt. ad is authenticated but not encrypted. plaintext is left untouched.
func EncryptSecret(passphrase string, plaintext, salt, ad []byte) (nonce, ciphertext []byte, err error) {
	if len(salt) != SaltBytes {
		return nil, nil, errSaltSize
	}
	kek := DeriveKEK(passphrase, salt)
	defer memzero.Zero(kek)

	aead, err := chacha20poly1305.New(kek)
	if err != nil {
		return nil, nil, err
	}
	nonce = make([]byte, NonceBytes)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, err
	}
	return nonce, aead.Seal(nil, nonce, plaintext, ad), nil
}

// DecryptSecret decrypts a ciphertext with a KEK derived from the passphrase and salt.
func DecryptSecret(passphrase string, salt, nonce, ciphertext, ad []byte) ([]byte, error) {
	if len(salt) != SaltBytes {
		return nil, errSaltSize
	}
	kek := DeriveKEK(passphrase, salt)
	defer memzero.Zero(kek)

	aead, err := chacha20poly1305.New(kek)
	if err != nil {
		return nil, err
	}
	if len(nonce) != aead.NonceSize() {
		return nil, ErrSecretAuth
	}
	pt, err := aead.Open(nil, nonce, ciphertext, ad)
	if err != nil {
		return nil, ErrSecretAuth
	}
	return pt, nil
}
