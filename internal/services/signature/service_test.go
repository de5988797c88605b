package signature_test

import (
	stdcrypto "crypto"
	"crypto/x509"
	"errors"
	"math/big"
	"path/filepath"
	"testing"
	"time"

	"keystash/internal/crypto"
	"keystash/internal/domain"
	"keystash/internal/services/authority"
	"keystash/internal/services/signature"
	"keystash/internal/store"
)

func setup(t *testing.T) *signature.Service {
	t.Helper()
	ctx := store.NewContext()
	if _, err := ctx.Bind(filepath.Join(t.TempDir(), "keystore.PKCS12"), "keystore_pass"); err != nil {
		t.Fatalf("bind: %v", err)
	}
	ca := authority.New(ctx)
	if _, err := ca.IssueCertificate("signer", "signer_pass", 12, domain.CertIdentity{CommonName: "signer"}); err != nil {
		t.Fatalf("issue: %v", err)
	}
	return signature.New(ctx)
}

func TestSignVerify(t *testing.T) {
	svc := setup(t)
	msg := []byte("message to be signed")

	res, err := svc.Sign("signer", "signer_pass", msg)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if !res.Signed() || len(res.Signature) == 0 {
		t.Fatalf("unexpected result %v", res.Outcome)
	}

	ok, err := svc.Verify("signer", res.Signature, msg)
	if err != nil || !ok {
		t.Fatalf("verify: ok=%v err=%v", ok, err)
	}

	altered := append([]byte{}, msg...)
	altered[0] ^= 0x01
	ok, err = svc.Verify("signer", res.Signature, altered)
	if err != nil || ok {
		t.Fatalf("altered message: ok=%v err=%v", ok, err)
	}

	badSig := append([]byte{}, res.Signature...)
	badSig[len(badSig)-1] ^= 0x01
	if ok, _ := svc.Verify("signer", badSig, msg); ok {
		t.Fatal("altered signature verified")
	}
}

func TestSign_EmptyMessage(t *testing.T) {
	svc := setup(t)
	res, err := svc.Sign("signer", "signer_pass", nil)
	if err != nil || !res.Signed() {
		t.Fatalf("sign: %v %v", res.Outcome, err)
	}
	if ok, _ := svc.Verify("signer", res.Signature, []byte{}); !ok {
		t.Fatal("empty message signature did not verify")
	}
}

func TestSign_Errors(t *testing.T) {
	svc := setup(t)
	if _, err := svc.Sign("signer", "wrong", []byte("m")); !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("wrong password: want ErrAuthentication, got %v", err)
	}
	if _, err := svc.Sign("missing", "pw", []byte("m")); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing alias: want ErrNotFound, got %v", err)
	}
	if _, err := svc.Verify("missing", []byte("sig"), []byte("m")); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("verify missing alias: want ErrNotFound, got %v", err)
	}
}

func TestVerify_SecretAlias(t *testing.T) {
	ks, err := store.Open(filepath.Join(t.TempDir(), "ks.p12"), "keystore_pass")
	if err != nil {
		t.Fatal(err)
	}
	if err := ks.SetSecret("sym", []byte("k"), "pw"); err != nil {
		t.Fatal(err)
	}
	svc := signature.New(ks)
	if _, err := svc.Verify("sym", []byte("sig"), []byte("m")); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

// mismatched hands out a private key whose certificate belongs to another key.
type mismatched struct {
	domain.Keystore
	key  stdcrypto.PrivateKey
	cert *x509.Certificate
}

func (m *mismatched) Active() (domain.Keystore, error) { return m, nil }

func (m *mismatched) KeyPair(string, string) (stdcrypto.PrivateKey, []*x509.Certificate, error) {
	return m.key, []*x509.Certificate{m.cert}, nil
}

func (m *mismatched) CertificateChain(string) ([]*x509.Certificate, error) {
	return []*x509.Certificate{m.cert}, nil
}

func TestSign_VerificationFailed(t *testing.T) {
	signer, err := crypto.GenerateRSA(crypto.DefaultRSABits)
	if err != nil {
		t.Fatal(err)
	}
	other, err := crypto.GenerateRSA(crypto.DefaultRSABits)
	if err != nil {
		t.Fatal(err)
	}
	subject, err := crypto.EncodeDistinguishedName(domain.CertIdentity{CommonName: "other"})
	if err != nil {
		t.Fatal(err)
	}
	now := time.Now().UTC().Truncate(time.Second)
	cert, err := crypto.SelfSignedCertificate(other, subject, big.NewInt(1), now, crypto.AddMonths(now, 1))
	if err != nil {
		t.Fatal(err)
	}

	svc := signature.New(&mismatched{key: signer, cert: cert})
	res, err := svc.Sign("any", "pw", []byte("m"))
	if err != nil {
		t.Fatalf("verification failure must not be an error: %v", err)
	}
	if res.Outcome != domain.SignOutcomeVerificationFailed {
		t.Fatalf("outcome %v, want verification failed", res.Outcome)
	}
	if res.Signature != nil {
		t.Fatal("signature returned with failed verification")
	}
}
