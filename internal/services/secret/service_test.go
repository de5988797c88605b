package secret_test

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"keystash/internal/domain"
	"keystash/internal/services/secret"
	"keystash/internal/store"
)

func TestStoreRetrieve(t *testing.T) {
	ctx := store.NewContext()
	if _, err := ctx.Bind(filepath.Join(t.TempDir(), "keystore.PKCS12"), "keystore_pass"); err != nil {
		t.Fatalf("bind: %v", err)
	}
	svc := secret.New(ctx)

	cases := []struct {
		alias, password string
		value           []byte
	}{
		{"secret_key_alias", "secret_key_password", []byte("secret_key")},
		{"binary", "p", []byte{0x00, 0xff, 0x10, 0x80}},
		{"unicode", "pässwörd", []byte("κλειδί")},
	}
	for _, c := range cases {
		if err := svc.Store(c.alias, c.value, c.password); err != nil {
			t.Fatalf("store %s: %v", c.alias, err)
		}
	}
	for _, c := range cases {
		got, err := svc.Retrieve(c.alias, c.password)
		if err != nil {
			t.Fatalf("retrieve %s: %v", c.alias, err)
		}
		if !bytes.Equal(got, c.value) {
			t.Fatalf("%s: got %x, want %x", c.alias, got, c.value)
		}
		if _, err := svc.Retrieve(c.alias, c.password+"x"); !errors.Is(err, domain.ErrAuthentication) {
			t.Fatalf("%s wrong password: want ErrAuthentication, got %v", c.alias, err)
		}
	}
}

func TestStore_Validation(t *testing.T) {
	ks, err := store.Open(filepath.Join(t.TempDir(), "ks.p12"), "keystore_pass")
	if err != nil {
		t.Fatal(err)
	}
	svc := secret.New(ks)

	if err := svc.Store("a", nil, "pw"); !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("empty secret: want ErrConfiguration, got %v", err)
	}
	if err := svc.Store("a", []byte("v"), ""); !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("empty password: want ErrConfiguration, got %v", err)
	}
	if _, err := svc.Retrieve("missing", "pw"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing: want ErrNotFound, got %v", err)
	}
}

func TestUnboundContext(t *testing.T) {
	svc := secret.New(store.NewContext())
	if err := svc.Store("a", []byte("v"), "pw"); !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("want ErrConfiguration, got %v", err)
	}
}
