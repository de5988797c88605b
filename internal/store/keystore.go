package store

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"keystash/internal/domain"
	"keystash/internal/util/atomicfile"
)

// Extensions accepted for a keystore file, compared case-insensitively.
var keystoreExtensions = []string{"pkcs12", "p12", "pfx"}

// Option configures a Keystore.
type Option func(*Keystore)

// WithLogger sets the logger used for lifecycle and write events.
func WithLogger(l *log.Logger) Option {
	return func(k *Keystore) {
		if l != nil {
			k.logger = l
		}
	}
}

// Keystore is a handle on one password-protected container file.
//
// Mutations are serialized by writeMu and become visible only after the
// container has been written to disk. Reads work on an immutable snapshot
// and never block on writers.
type Keystore struct {
	path     string
	password string
	logger   *log.Logger

	writeMu sync.Mutex
	sealer  *sealer // guarded by writeMu
	snap    atomic.Pointer[container]
}

var (
	_ domain.Keystore       = (*Keystore)(nil)
	_ domain.KeystoreSource = (*Keystore)(nil)
)

// Open binds a handle to the keystore at path, creating an empty container
// sealed under password if no file exists yet.
func Open(path, password string, opts ...Option) (*Keystore, error) {
	if err := validateLocation(path, password); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: keystore path %q: %v", domain.ErrConfiguration, path, err)
	}

	k := &Keystore{
		path:     abs,
		password: password,
		logger:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(k)
	}

	k.writeMu.Lock()
	defer k.writeMu.Unlock()
	if err := k.loadLocked(); err != nil {
		return nil, err
	}
	return k, nil
}

func validateLocation(path, password string) error {
	if path == "" {
		return fmt.Errorf("%w: keystore path is required", domain.ErrConfiguration)
	}
	if password == "" {
		return fmt.Errorf("%w: keystore password is required", domain.ErrConfiguration)
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	for _, want := range keystoreExtensions {
		if ext == want {
			return nil
		}
	}
	return fmt.Errorf("%w: keystore file %q must be a PKCS12 container (.pkcs12, .p12 or .pfx)",
		domain.ErrConfiguration, path)
}

// loadLocked reads the file into a fresh snapshot, creating it first if
// absent. The caller holds writeMu.
func (k *Keystore) loadLocked() error {
	data, err := atomicfile.Read(k.path)
	if err != nil {
		return fmt.Errorf("keystore: read %s: %w", k.path, err)
	}

	if data == nil {
		if err := os.MkdirAll(filepath.Dir(k.path), 0o700); err != nil {
			return fmt.Errorf("keystore: create directory: %w", err)
		}
		s, err := newSealer(k.password)
		if err != nil {
			return fmt.Errorf("%w: derive container key: %w", domain.ErrCryptographic, err)
		}
		k.sealer = s
		c := newContainer()
		if err := k.persistLocked(c); err != nil {
			return err
		}
		k.snap.Store(c)
		k.logger.Printf("keystore: created %s", k.path)
		return nil
	}

	s, raw, err := openBlob(k.password, data)
	switch {
	case errors.Is(err, errWrongPassphrase):
		return fmt.Errorf("%w: %s: %v", domain.ErrAuthentication, k.path, err)
	case err != nil:
		return fmt.Errorf("%w: %s: %v", domain.ErrConfiguration, k.path, err)
	}
	c, err := decodeContainer(raw)
	if err != nil {
		return fmt.Errorf("%w: %s: decode entries: %v", domain.ErrConfiguration, k.path, err)
	}
	k.sealer = s
	k.snap.Store(c)
	k.logger.Printf("keystore: loaded %s (%d entries)", k.path, len(c.Entries))
	return nil
}

// persistLocked seals c and atomically replaces the file. The caller holds writeMu.
func (k *Keystore) persistLocked(c *container) error {
	raw, err := encodeContainer(c)
	if err != nil {
		return fmt.Errorf("keystore: encode entries: %w", err)
	}
	sealed, err := k.sealer.seal(raw)
	if err != nil {
		return fmt.Errorf("%w: seal container: %w", domain.ErrCryptographic, err)
	}
	if err := atomicfile.Write(k.path, sealed, 0o600); err != nil {
		return fmt.Errorf("keystore: persist %s: %w", k.path, err)
	}
	return nil
}

// mutate applies fn to a copy of the current table, persists the copy and
// publishes it. On any error the published snapshot is unchanged.
func (k *Keystore) mutate(fn func(entries map[string]entryRecord) error) error {
	k.writeMu.Lock()
	defer k.writeMu.Unlock()

	next := k.snap.Load().clone()
	if err := fn(next.Entries); err != nil {
		return err
	}
	if err := k.persistLocked(next); err != nil {
		return err
	}
	k.snap.Store(next)
	return nil
}

// lookup returns the record for alias in the current snapshot.
func (k *Keystore) lookup(alias string) (entryRecord, error) {
	rec, ok := k.snap.Load().Entries[alias]
	if !ok {
		return entryRecord{}, fmt.Errorf("%w: alias %q", domain.ErrNotFound, alias)
	}
	return rec, nil
}

// Path returns the absolute container file location.
func (k *Keystore) Path() string { return k.path }

// Active returns k itself, so a handle can be passed wherever a
// domain.KeystoreSource is expected.
func (k *Keystore) Active() (domain.Keystore, error) { return k, nil }

// Aliases lists the stored aliases in sorted order.
func (k *Keystore) Aliases() []string { return k.snap.Load().aliases() }

// Contains reports whether alias is stored.
func (k *Keystore) Contains(alias string) bool {
	_, ok := k.snap.Load().Entries[alias]
	return ok
}

// Entry reports the kind and creation time of alias.
func (k *Keystore) Entry(alias string) (domain.EntryInfo, error) {
	rec, err := k.lookup(alias)
	if err != nil {
		return domain.EntryInfo{}, err
	}
	return domain.EntryInfo{
		Alias:   alias,
		Kind:    rec.Kind,
		Created: time.Unix(rec.Created, 0).UTC(),
	}, nil
}

// DeleteEntry removes alias and persists the container.
func (k *Keystore) DeleteEntry(alias string) error {
	err := k.mutate(func(entries map[string]entryRecord) error {
		if _, ok := entries[alias]; !ok {
			return fmt.Errorf("%w: alias %q", domain.ErrNotFound, alias)
		}
		delete(entries, alias)
		return nil
	})
	if err != nil {
		return err
	}
	k.logger.Printf("keystore: deleted entry %q", alias)
	return nil
}

// Reload discards the in-memory entries and reads the file again. If the
// file has disappeared an empty container is created in its place.
func (k *Keystore) Reload() error {
	k.writeMu.Lock()
	defer k.writeMu.Unlock()
	return k.loadLocked()
}

// identifies reports whether the handle is bound to (path, password).
func (k *Keystore) identifies(path, password string) bool {
	abs, err := filepath.Abs(path)
	if err != nil || abs != k.path {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(k.password)) == 1
}
