// Package store persists keystash's key material in a single sealed file.
//
// A Keystore is an explicitly owned handle on one container file, bound by
// (path, password). The file is a JSON envelope whose ciphertext is the
// CBOR-encoded entry table sealed with ChaCha20-Poly1305 under an scrypt key
// derived from the keystore password. Each entry is protected again by its
// own entry password:
//   - secrets with Argon2id + ChaCha20-Poly1305, bound to the alias
//   - key pairs as standard PKCS#12 (PFX) blobs, with the certificate chain
//     also kept in clear so certificates read without the entry password
//
// Every mutation rewrites the whole container through a temp file and
// rename, and only then becomes visible to readers. Context layers the
// bind/rebind state machine over handles for callers that follow one
// "current" keystore.
package store
