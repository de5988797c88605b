package app

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"keystash/internal/crypto"
	"keystash/internal/domain"
	"keystash/internal/services/authority"
)

// Environment variables read by LoadConfig. They override the file.
const (
	EnvKeystore = "KEYSTASH_KEYSTORE"
	EnvPassword = "KEYSTASH_PASSWORD"
	EnvKeyBits  = "KEYSTASH_KEY_BITS"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Keystore       string `yaml:"keystore"`        // container file, e.g. $HOME/.keystash/keystore.p12
	KeyBits        int    `yaml:"key_bits"`        // RSA strength for issued certificates
	ValidityMonths int    `yaml:"validity_months"` // default certificate validity
	Verbose        bool   `yaml:"verbose"`

	// Password is never read from the file.
	Password string      `yaml:"-"`
	Logger   *log.Logger `yaml:"-"` // optional; store events are discarded when nil
}

// DefaultHome returns $HOME/.keystash.
func DefaultHome() (string, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".keystash"), nil
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	cfg := Config{
		KeyBits:        crypto.DefaultRSABits,
		ValidityMonths: authority.DefaultValidityMonths,
	}
	if home, err := DefaultHome(); err == nil {
		cfg.Keystore = filepath.Join(home, "keystore.p12")
	}
	return cfg
}

// LoadConfig reads the YAML file at path over the defaults and applies
// environment overrides. A missing file, or an empty path, yields the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("%w: yaml %s: %w", domain.ErrConfiguration, path, err)
			}
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvKeystore); v != "" {
		c.Keystore = v
	}
	if v := os.Getenv(EnvPassword); v != "" {
		c.Password = v
	}
	if v := os.Getenv(EnvKeyBits); v != "" {
		bits, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", domain.ErrConfiguration, EnvKeyBits, err)
		}
		c.KeyBits = bits
	}
	return nil
}

// Validate checks the settings that can be checked before a keystore is bound.
func (c Config) Validate() error {
	if err := crypto.ValidateRSABits(c.KeyBits); err != nil {
		return fmt.Errorf("%w: key_bits: %v", domain.ErrConfiguration, err)
	}
	if c.ValidityMonths < 0 {
		return fmt.Errorf("%w: validity_months must not be negative", domain.ErrConfiguration)
	}
	return nil
}
