package store

import (
	"fmt"
	"maps"
	"sort"

	"github.com/fxamacker/cbor/v2"

	"keystash/internal/domain"
)

const containerVersion = 1

// entryRecord is one aliased entry as stored inside the sealed container.
//
// Secrets: Sealed is the ChaCha20-Poly1305 ciphertext under the entry
// password's Argon2id KEK (Salt, Nonce), bound to the alias.
// Key pairs: Sealed is a PKCS#12 PFX under the entry password; Chain holds
// the certificate DERs in clear.
type entryRecord struct {
	Kind    domain.EntryKind `cbor:"kind"`
	Salt    []byte           `cbor:"salt,omitempty"`
	Nonce   []byte           `cbor:"nonce,omitempty"`
	Sealed  []byte           `cbor:"sealed"`
	Chain   [][]byte         `cbor:"chain,omitempty"`
	Created int64            `cbor:"created"`
}

// container is the plaintext entry table.
type container struct {
	Version int                    `cbor:"version"`
	Entries map[string]entryRecord `cbor:"entries"`
}

func newContainer() *container {
	return &container{Version: containerVersion, Entries: map[string]entryRecord{}}
}

// clone copies the table; records are treated as immutable and shared.
func (c *container) clone() *container {
	return &container{Version: c.Version, Entries: maps.Clone(c.Entries)}
}

func (c *container) aliases() []string {
	out := make([]string, 0, len(c.Entries))
	for alias := range c.Entries {
		out = append(out, alias)
	}
	sort.Strings(out)
	return out
}

// Core deterministic encoding keeps identical tables byte-identical.
var encMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

func encodeContainer(c *container) ([]byte, error) {
	return encMode.Marshal(c)
}

func decodeContainer(raw []byte) (*container, error) {
	var c container
	if err := cbor.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if c.Version > containerVersion {
		return nil, fmt.Errorf("unsupported container version %d", c.Version)
	}
	if c.Entries == nil {
		c.Entries = map[string]entryRecord{}
	}
	return &c, nil
}
