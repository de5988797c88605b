package store

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

const (
	// The current supported version of the encrypted blob format stored on disk.
	keystoreFormatVersion = 1
)

var (
	// Returned when the passphrase is incorrect or the ciphertext has been modified / corrupted.
	errWrongPassphrase = errors.New("wrong keystore password or corrupted keystore")

	// Returned when the file is not a sealed keystore at all.
	errMalformedBlob = errors.New("not a keystore file")
)

// blob is the on‑disk JSON structure holding the ciphertext and KDF parameters.
type blob struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Nonce  []byte `json:"nonce"`
	Cipher []byte `json:"cipher"`
}

// sealer holds the container key derived from the keystore password so that
// each persist costs one AEAD pass instead of a fresh scrypt derivation.
// Nonces are random per seal; the salt is the associated data.
type sealer struct {
	salt    []byte
	n, r, p int
	key     []byte
}

// newSealer derives a container key from password under a fresh salt.
func newSealer(password string) (*sealer, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt /* #nosec G404 */); err != nil {
		return nil, err
	}
	n, r, p := scryptParamsDefault()
	return deriveSealer(password, salt, n, r, p)
}

func deriveSealer(password string, salt []byte, n, r, p int) (*sealer, error) {
	key, err := scrypt.Key([]byte(password), salt, n, r, p, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	return &sealer{salt: salt, n: n, r: r, p: p, key: key}, nil
}

// seal encrypts raw into a JSON blob.
func (s *sealer) seal(raw []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(s.key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return json.Marshal(blob{
		V:      keystoreFormatVersion,
		Salt:   s.salt,
		N:      s.n,
		R:      s.r,
		P:      s.p,
		Nonce:  nonce,
		Cipher: aead.Seal(nil, nonce, raw, s.salt),
	})
}

// openBlob decrypts b with a key derived from password and returns the
// plaintext together with a sealer bound to the same salt.
func openBlob(password string, b []byte) (*sealer, []byte, error) {
	var bl blob
	if err := json.Unmarshal(b, &bl); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errMalformedBlob, err)
	}
	if bl.V == 0 || len(bl.Salt) == 0 {
		return nil, nil, errMalformedBlob
	}
	if bl.V > keystoreFormatVersion {
		return nil, nil, fmt.Errorf("%w: unsupported keystore version %d", errMalformedBlob, bl.V)
	}

	if err := checkScryptParams(bl.N, bl.R, bl.P); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errMalformedBlob, err)
	}
	s, err := deriveSealer(password, bl.Salt, bl.N, bl.R, bl.P)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errMalformedBlob, err)
	}
	aead, err := chacha20poly1305.New(s.key)
	if err != nil {
		return nil, nil, err
	}
	if len(bl.Nonce) != aead.NonceSize() {
		return nil, nil, errMalformedBlob
	}
	pt, err := aead.Open(nil, bl.Nonce, bl.Cipher, bl.Salt)
	if err != nil {
		return nil, nil, errWrongPassphrase
	}
	return s, pt, nil
}

// Upper bounds on scrypt parameters read from disk.
const (
	maxScryptN = 1 << 20
	maxScryptR = 32
	maxScryptP = 16
)

// checkScryptParams rejects parameters that scrypt would refuse or that
// would need an unreasonable amount of memory.
func checkScryptParams(n, r, p int) error {
	if n < 2 || n > maxScryptN || n&(n-1) != 0 {
		return fmt.Errorf("scrypt N %d must be a power of two in [2, %d]", n, maxScryptN)
	}
	if r < 1 || r > maxScryptR {
		return fmt.Errorf("scrypt r %d outside [1, %d]", r, maxScryptR)
	}
	if p < 1 || p > maxScryptP {
		return fmt.Errorf("scrypt p %d outside [1, %d]", p, maxScryptP)
	}
	return nil
}

// Tunables for scrypt key derivation.
func scryptParamsDefault() (N, r, p int) { return 1 << 15, 8, 1 }
