package crypto

import (
	stdcrypto "crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
)

// SignPKCS1v15 hashes msg with SHA-256 and signs the digest with priv.
func SignPKCS1v15(priv *rsa.PrivateKey, msg []byte) ([]byte, error) {
	digest := sha256.Sum256(msg)
	return rsa.SignPKCS1v15(rand.Reader, priv, stdcrypto.SHA256, digest[:])
}

// VerifyPKCS1v15 reports whether sig is a valid SHA-256 PKCS#1 v1.5
// signature of msg under pub.
func VerifyPKCS1v15(pub *rsa.PublicKey, msg, sig []byte) bool {
	digest := sha256.Sum256(msg)
	return rsa.VerifyPKCS1v15(pub, stdcrypto.SHA256, digest[:], sig) == nil
}
