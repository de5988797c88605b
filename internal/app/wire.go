package app

import (
	"fmt"

	"keystash/internal/domain"
	"keystash/internal/store"
)

// Wire bundles the keystore context and all services for the CLI.
type Wire struct {
	*App
	Config    Config
	Keystores *store.Context
}

// NewWire constructs the dependency graph from cfg. No keystore is bound
// until Bind is called.
func NewWire(cfg Config) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var opts []store.Option
	if cfg.Logger != nil {
		opts = append(opts, store.WithLogger(cfg.Logger))
	}
	ctx := store.NewContext(opts...)

	return &Wire{
		App:       New(ctx, cfg),
		Config:    cfg,
		Keystores: ctx,
	}, nil
}

// Bind opens (or creates) the configured keystore.
func (w *Wire) Bind() (*store.Keystore, error) {
	if w.Config.Keystore == "" {
		return nil, fmt.Errorf("%w: keystore path is required", domain.ErrConfiguration)
	}
	if w.Config.Password == "" {
		return nil, fmt.Errorf("%w: keystore password is required", domain.ErrConfiguration)
	}
	return w.Keystores.Bind(w.Config.Keystore, w.Config.Password)
}
