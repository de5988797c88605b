package crypto

import (
	"crypto/rand"
	"crypto/rsa"
)

// EncryptPKCS1v15 encrypts plaintext to pub. The plaintext may be at most
// the modulus size minus 11 bytes.
func EncryptPKCS1v15(pub *rsa.PublicKey, plaintext []byte) ([]byte, error) {
	return rsa.EncryptPKCS1v15(rand.Reader, pub, plaintext)
}

// DecryptPKCS1v15 decrypts ciphertext with priv.
func DecryptPKCS1v15(priv *rsa.PrivateKey, ciphertext []byte) ([]byte, error) {
	return rsa.DecryptPKCS1v15(rand.Reader, priv, ciphertext)
}
