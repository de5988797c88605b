// Package crypto exposes the primitives the keystore is built on.
//
// Contents
//
//   - RSA key generation at a bounded strength (GenerateRSA)
//   - DER codecs for private and public keys (MarshalPrivateKey,
//     ParsePrivateKey, MarshalPublicKey, ParsePublicKey)
//   - Distinguished-name encoding in a fixed attribute order
//     (EncodeDistinguishedName) and self-signed CA certificates
//     (SelfSignedCertificate, AddMonths)
//   - SHA-256 with RSA PKCS#1 v1.5 signatures (SignPKCS1v15, VerifyPKCS1v15)
//   - Raw RSA PKCS#1 v1.5 encryption (EncryptPKCS1v15, DecryptPKCS1v15)
//   - Passphrase sealing of small secrets with Argon2id and
//     ChaCha20-Poly1305 (EncryptSecret, DecryptSecret)
//   - Certificate text framing and short fingerprints
//     (EncodeCertificateText, DecodeCertificateText, Fingerprint)
//
// # Notes
//
// Randomness always comes from crypto/rand. Functions return plain errors;
// the store and services map them onto the domain error kinds.
package crypto
