// Package signature signs messages with keys held in the bound keystore
// and verifies signatures against the stored certificates.
//
// Signatures are SHA-256 digests signed with RSA PKCS#1 v1.5. Every
// signature is checked against the entry's own certificate before it is
// handed out; a mismatch is reported as a tagged outcome, not an error.
package signature
