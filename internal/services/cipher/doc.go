// Package cipher encrypts and decrypts with raw DER-encoded RSA keys.
// It is stateless and does not touch the keystore.
package cipher
