package store

import (
	"fmt"
	"sync"

	"keystash/internal/domain"
)

// Context tracks which keystore is currently bound.
//
// States: Unbound until the first successful Bind, then Bound. Binding the
// same (path, password) again reloads the bound handle from disk; binding a
// different identity replaces it with a fresh handle. A failed Bind leaves
// the previous binding in place.
type Context struct {
	opts []Option

	mu     sync.RWMutex
	active *Keystore
}

var _ domain.KeystoreSource = (*Context)(nil)

// NewContext returns an unbound context. opts are applied to every handle it opens.
func NewContext(opts ...Option) *Context {
	return &Context{opts: opts}
}

// Bind binds the context to the keystore at path.
func (c *Context) Bind(path, password string) (*Keystore, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active != nil && c.active.identifies(path, password) {
		if err := c.active.Reload(); err != nil {
			return nil, err
		}
		return c.active, nil
	}

	k, err := Open(path, password, c.opts...)
	if err != nil {
		return nil, err
	}
	c.active = k
	return k, nil
}

// Active returns the bound keystore, or ErrConfiguration while unbound.
func (c *Context) Active() (domain.Keystore, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.active == nil {
		return nil, fmt.Errorf("%w: no keystore bound", domain.ErrConfiguration)
	}
	return c.active, nil
}

// Bound reports whether a keystore is bound.
func (c *Context) Bound() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active != nil
}
