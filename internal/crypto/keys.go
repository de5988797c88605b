package crypto

import (
	"crypto/rsa"
	"crypto/x509"
	"errors"
	"fmt"
)

// ErrNotRSA is returned when DER key bytes decode to a non-RSA key.
var ErrNotRSA = errors.New("key is not an RSA key")

// MarshalPrivateKey encodes key as PKCS#8 DER.
func MarshalPrivateKey(key any) ([]byte, error) {
	return x509.MarshalPKCS8PrivateKey(key)
}

// ParsePrivateKey decodes a PKCS#8 (or, failing that, PKCS#1) RSA private key.
func ParsePrivateKey(der []byte) (*rsa.PrivateKey, error) {
	if len(der) == 0 {
		return nil, errors.New("empty private key")
	}
	if k, err := x509.ParsePKCS8PrivateKey(der); err == nil {
		rk, ok := k.(*rsa.PrivateKey)
		if !ok {
			return nil, ErrNotRSA
		}
		return rk, nil
	}
	k, err := x509.ParsePKCS1PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return k, nil
}

// MarshalPublicKey encodes pub as PKIX DER.
func MarshalPublicKey(pub any) ([]byte, error) {
	return x509.MarshalPKIXPublicKey(pub)
}

// ParsePublicKey decodes a PKIX (or, failing that, PKCS#1) RSA public key.
func ParsePublicKey(der []byte) (*rsa.PublicKey, error) {
	if len(der) == 0 {
		return nil, errors.New("empty public key")
	}
	if k, err := x509.ParsePKIXPublicKey(der); err == nil {
		rk, ok := k.(*rsa.PublicKey)
		if !ok {
			return nil, ErrNotRSA
		}
		return rk, nil
	}
	k, err := x509.ParsePKCS1PublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	return k, nil
}
