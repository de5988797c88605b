package app

import (
	"keystash/internal/domain"
	"keystash/internal/services/authority"
	"keystash/internal/services/cipher"
	"keystash/internal/services/export"
	"keystash/internal/services/secret"
	"keystash/internal/services/signature"
)

// App groups the high-level services.
type App struct {
	Secrets    domain.SecretService
	Authority  domain.CertificateAuthority
	Signatures domain.SignatureService
	Cipher     domain.CipherService
	Export     domain.CertificateExporter
}

// New builds every service over src.
func New(src domain.KeystoreSource, cfg Config) *App {
	return &App{
		Secrets:    secret.New(src),
		Authority:  authority.New(src, authority.WithKeyBits(cfg.KeyBits)),
		Signatures: signature.New(src),
		Cipher:     cipher.New(),
		Export:     export.New(src),
	}
}
