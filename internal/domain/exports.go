package domain

import (
	interfaces "keystash/internal/domain/interfaces"
	types "keystash/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Fingerprint  = types.Fingerprint
	EntryKind    = types.EntryKind
	EntryInfo    = types.EntryInfo
	CertIdentity = types.CertIdentity
	Credentials  = types.Credentials
	SignOutcome  = types.SignOutcome
	SignResult   = types.SignResult
)

// Constants re-exported from the types subpackage.
const (
	EntryUnknown = types.EntryUnknown
	EntrySecret  = types.EntrySecret
	EntryKeyPair = types.EntryKeyPair

	SignOutcomeSigned             = types.SignOutcomeSigned
	SignOutcomeVerificationFailed = types.SignOutcomeVerificationFailed
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	Keystore             = interfaces.Keystore
	KeystoreSource       = interfaces.KeystoreSource
	SecretService        = interfaces.SecretService
	CertificateAuthority = interfaces.CertificateAuthority
	SignatureService     = interfaces.SignatureService
	CipherService        = interfaces.CipherService
	CertificateExporter  = interfaces.CertificateExporter
)
