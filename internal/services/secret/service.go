package secret

import (
	"fmt"

	"keystash/internal/domain"
)

// Service stores symmetric secrets under an alias, each protected by its
// own entry password.
type Service struct {
	src domain.KeystoreSource
}

// New returns a secret service operating on the keystore yielded by src.
func New(src domain.KeystoreSource) *Service { return &Service{src: src} }

// Store seals secret under entryPassword and persists it as alias,
// replacing any existing entry.
func (s *Service) Store(alias string, secret []byte, entryPassword string) error {
	if len(secret) == 0 {
		return fmt.Errorf("%w: secret is empty", domain.ErrConfiguration)
	}
	if entryPassword == "" {
		return fmt.Errorf("%w: entry password is required", domain.ErrConfiguration)
	}
	ks, err := s.src.Active()
	if err != nil {
		return err
	}
	return ks.SetSecret(alias, secret, entryPassword)
}

// Retrieve returns the secret stored as alias.
func (s *Service) Retrieve(alias, entryPassword string) ([]byte, error) {
	ks, err := s.src.Active()
	if err != nil {
		return nil, err
	}
	return ks.Secret(alias, entryPassword)
}

// Compile-time assertion that Service implements domain.SecretService.
var _ domain.SecretService = (*Service)(nil)
