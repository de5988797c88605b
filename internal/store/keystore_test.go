package store_test

import (
	"bytes"
	"crypto/rsa"
	"crypto/x509"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"keystash/internal/crypto"
	"keystash/internal/domain"
	"keystash/internal/store"
)

const ksPass = "keystore_pass"

func openTemp(t *testing.T, opts ...store.Option) (*store.Keystore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keystore.PKCS12")
	ks, err := store.Open(path, ksPass, opts...)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return ks, path
}

func makeKeyPair(t *testing.T) (*rsa.PrivateKey, *x509.Certificate) {
	t.Helper()
	key, err := crypto.GenerateRSA(crypto.DefaultRSABits)
	if err != nil {
		t.Fatalf("GenerateRSA: %v", err)
	}
	subject, err := crypto.EncodeDistinguishedName(domain.CertIdentity{CommonName: "store-test"})
	if err != nil {
		t.Fatalf("EncodeDistinguishedName: %v", err)
	}
	now := time.Now().UTC().Truncate(time.Second)
	cert, err := crypto.SelfSignedCertificate(key, subject, crypto.SerialFromTime(now), now, crypto.AddMonths(now, 12))
	if err != nil {
		t.Fatalf("SelfSignedCertificate: %v", err)
	}
	return key, cert
}

func TestOpen_CreatesFile(t *testing.T) {
	ks, path := openTemp(t)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("keystore file not created: %v", err)
	}
	if len(ks.Aliases()) != 0 {
		t.Fatalf("new keystore has entries: %v", ks.Aliases())
	}
	if ks.Path() != path {
		t.Fatalf("path %q, want %q", ks.Path(), path)
	}
}

func TestOpen_InvalidLocation(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name, path, pass string
	}{
		{"missing path", "", ksPass},
		{"missing password", filepath.Join(dir, "a.pkcs12"), ""},
		{"wrong extension", filepath.Join(dir, "a.jks"), ksPass},
		{"no extension", filepath.Join(dir, "keystore"), ksPass},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.Open(tt.path, tt.pass); !errors.Is(err, domain.ErrConfiguration) {
				t.Fatalf("want ErrConfiguration, got %v", err)
			}
		})
	}
}

func TestOpen_AcceptedExtensions(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.pkcs12", "b.P12", "c.pfx"} {
		if _, err := store.Open(filepath.Join(dir, name), ksPass); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
}

func TestOpen_WrongPassword(t *testing.T) {
	_, path := openTemp(t)
	if _, err := store.Open(path, "not-the-password"); !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("want ErrAuthentication, got %v", err)
	}
}

func TestOpen_GarbageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.p12")
	if err := os.WriteFile(path, []byte("definitely not a keystore"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Open(path, ksPass); !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("want ErrConfiguration, got %v", err)
	}
}

func TestOpen_HostileKDFParams(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		n, r, p int64
	}{
		{"huge N", 1 << 40, 8, 1},
		{"N above limit", 1 << 21, 8, 1},
		{"N not a power of two", 1000, 8, 1},
		{"zero N", 0, 8, 1},
		{"huge r", 1 << 15, 1 << 30, 1},
		{"huge p", 1 << 15, 8, 1 << 30},
		{"zero r", 1 << 15, 0, 1},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, fmt.Sprintf("hostile-%d.p12", i))
			blob := fmt.Sprintf(
				`{"v":1,"salt":"AAAAAAAAAAAAAAAAAAAAAA==","scrypt_N":%d,"scrypt_r":%d,"scrypt_p":%d,"nonce":"AAAAAAAAAAAAAAAA","cipher":"AAAA"}`,
				tt.n, tt.r, tt.p)
			if err := os.WriteFile(path, []byte(blob), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := store.Open(path, ksPass); !errors.Is(err, domain.ErrConfiguration) {
				t.Fatalf("want ErrConfiguration, got %v", err)
			}
		})
	}
}

func TestSecret_StoreRetrieve(t *testing.T) {
	ks, path := openTemp(t)

	if err := ks.SetSecret("secret_key_alias", []byte("secret_key"), "secret_key_password"); err != nil {
		t.Fatalf("set secret: %v", err)
	}
	got, err := ks.Secret("secret_key_alias", "secret_key_password")
	if err != nil {
		t.Fatalf("secret: %v", err)
	}
	if string(got) != "secret_key" {
		t.Fatalf("got %q", got)
	}

	// Survives a fresh handle.
	again, err := store.Open(path, ksPass)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err = again.Secret("secret_key_alias", "secret_key_password")
	if err != nil || string(got) != "secret_key" {
		t.Fatalf("after reopen: %q, %v", got, err)
	}
}

func TestSecret_Errors(t *testing.T) {
	ks, _ := openTemp(t)
	if err := ks.SetSecret("a", []byte("v"), "pw"); err != nil {
		t.Fatalf("set secret: %v", err)
	}

	if _, err := ks.Secret("a", "wrong"); !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("wrong password: want ErrAuthentication, got %v", err)
	}
	if _, err := ks.Secret("missing", "pw"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing alias: want ErrNotFound, got %v", err)
	}
	if err := ks.SetSecret("b", nil, "pw"); !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("empty secret: want ErrConfiguration, got %v", err)
	}
	if err := ks.SetSecret("b", []byte("v"), ""); !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("empty password: want ErrConfiguration, got %v", err)
	}
	if err := ks.SetSecret("", []byte("v"), "pw"); !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("empty alias: want ErrConfiguration, got %v", err)
	}
}

func TestSecret_Overwrite(t *testing.T) {
	ks, _ := openTemp(t)
	if err := ks.SetSecret("a", []byte("one"), "pw1"); err != nil {
		t.Fatal(err)
	}
	if err := ks.SetSecret("a", []byte("two"), "pw2"); err != nil {
		t.Fatal(err)
	}
	if _, err := ks.Secret("a", "pw1"); !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("old password still works: %v", err)
	}
	got, err := ks.Secret("a", "pw2")
	if err != nil || string(got) != "two" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestKeyPair_RoundTrip(t *testing.T) {
	ks, path := openTemp(t)
	key, cert := makeKeyPair(t)

	if err := ks.SetKeyPair("xyz_credentials", key, []*x509.Certificate{cert}, "xyz_credential_password"); err != nil {
		t.Fatalf("set key pair: %v", err)
	}

	again, err := store.Open(path, ksPass)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	gotKey, chain, err := again.KeyPair("xyz_credentials", "xyz_credential_password")
	if err != nil {
		t.Fatalf("key pair: %v", err)
	}
	rk, ok := gotKey.(*rsa.PrivateKey)
	if !ok || !rk.Equal(key) {
		t.Fatal("private key mismatch")
	}
	if len(chain) != 1 || !chain[0].Equal(cert) {
		t.Fatal("certificate chain mismatch")
	}

	if _, _, err := again.KeyPair("xyz_credentials", "wrong"); !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("wrong password: want ErrAuthentication, got %v", err)
	}

	// Certificates are readable without the entry password.
	pub, err := again.CertificateChain("xyz_credentials")
	if err != nil || !pub[0].Equal(cert) {
		t.Fatalf("certificate chain: %v", err)
	}
}

func TestEntryKindMismatch(t *testing.T) {
	ks, _ := openTemp(t)
	key, cert := makeKeyPair(t)
	if err := ks.SetKeyPair("pair", key, []*x509.Certificate{cert}, "pw"); err != nil {
		t.Fatal(err)
	}
	if err := ks.SetSecret("secret", []byte("v"), "pw"); err != nil {
		t.Fatal(err)
	}

	if _, err := ks.Secret("pair", "pw"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("secret from key pair: want ErrNotFound, got %v", err)
	}
	if _, _, err := ks.KeyPair("secret", "pw"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("key pair from secret: want ErrNotFound, got %v", err)
	}
	if _, err := ks.CertificateChain("secret"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("chain from secret: want ErrNotFound, got %v", err)
	}
	if err := ks.SetKeyPair("x", key, nil, "pw"); !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("empty chain: want ErrConfiguration, got %v", err)
	}
}

func TestEntry_KindAndCreated(t *testing.T) {
	ks, path := openTemp(t)
	before := time.Now().Add(-time.Second)
	key, cert := makeKeyPair(t)
	if err := ks.SetSecret("sym", []byte("v"), "pw"); err != nil {
		t.Fatal(err)
	}
	if err := ks.SetKeyPair("pair", key, []*x509.Certificate{cert}, "pw"); err != nil {
		t.Fatal(err)
	}
	after := time.Now().Add(time.Second)

	again, err := store.Open(path, ksPass)
	if err != nil {
		t.Fatal(err)
	}
	for alias, kind := range map[string]domain.EntryKind{"sym": domain.EntrySecret, "pair": domain.EntryKeyPair} {
		e, err := again.Entry(alias)
		if err != nil {
			t.Fatalf("%s: %v", alias, err)
		}
		if e.Alias != alias || e.Kind != kind {
			t.Fatalf("%s: got %+v", alias, e)
		}
		if e.Created.Before(before.Truncate(time.Second)) || e.Created.After(after) {
			t.Fatalf("%s: created %v outside [%v, %v]", alias, e.Created, before, after)
		}
	}
	if _, err := again.Entry("missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing alias: want ErrNotFound, got %v", err)
	}
}

func TestDeleteEntry(t *testing.T) {
	ks, path := openTemp(t)
	if err := ks.SetSecret("a", []byte("v"), "pw"); err != nil {
		t.Fatal(err)
	}
	if err := ks.DeleteEntry("a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ks.Contains("a") {
		t.Fatal("alias still present")
	}
	if err := ks.DeleteEntry("a"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete: want ErrNotFound, got %v", err)
	}
	again, err := store.Open(path, ksPass)
	if err != nil {
		t.Fatal(err)
	}
	if again.Contains("a") {
		t.Fatal("delete not persisted")
	}
}

func TestReload_Idempotent(t *testing.T) {
	ks, path := openTemp(t)
	for i := 0; i < 3; i++ {
		if err := ks.SetSecret(fmt.Sprintf("alias-%d", i), []byte("v"), "pw"); err != nil {
			t.Fatal(err)
		}
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	aliases := ks.Aliases()

	if err := ks.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Fatal("reload rewrote the file")
	}
	if fmt.Sprint(ks.Aliases()) != fmt.Sprint(aliases) {
		t.Fatalf("aliases changed: %v -> %v", aliases, ks.Aliases())
	}
}

func TestFailedPersist_KeepsMemoryConsistent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "keystore.p12")
	ks, err := store.Open(path, ksPass)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.RemoveAll(filepath.Join(dir, "sub")); err != nil {
		t.Fatal(err)
	}

	if err := ks.SetSecret("a", []byte("v"), "pw"); err == nil {
		t.Fatal("expected persist error")
	}
	if ks.Contains("a") {
		t.Fatal("entry visible in memory although persist failed")
	}
}

func TestConcurrentWriters_NoLostEntries(t *testing.T) {
	ks, path := openTemp(t)

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			alias := fmt.Sprintf("alias-%d", i)
			if err := ks.SetSecret(alias, []byte(alias), "pw"); err != nil {
				errs <- err
				return
			}
			// Readers run alongside writers.
			_ = ks.Aliases()
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("writer: %v", err)
	}

	again, err := store.Open(path, ksPass)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(again.Aliases()); n != writers {
		t.Fatalf("want %d entries on disk, got %d", writers, n)
	}
	for i := 0; i < writers; i++ {
		alias := fmt.Sprintf("alias-%d", i)
		got, err := again.Secret(alias, "pw")
		if err != nil || string(got) != alias {
			t.Fatalf("%s: %q, %v", alias, got, err)
		}
	}
}

func TestLogger_NeverLogsSecrets(t *testing.T) {
	var buf bytes.Buffer
	ks, _ := openTemp(t, store.WithLogger(log.New(&buf, "", 0)))
	if err := ks.SetSecret("a", []byte("super-secret-value"), "entry-password"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !bytes.Contains(buf.Bytes(), []byte("created")) {
		t.Fatalf("creation not logged: %q", out)
	}
	if bytes.Contains(buf.Bytes(), []byte("super-secret-value")) || bytes.Contains(buf.Bytes(), []byte("entry-password")) {
		t.Fatalf("secret material in log: %q", out)
	}
}
