package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"errors"
	"math/big"
	"time"
)

// SelfSignedCertificate issues a CA certificate whose issuer and subject are
// both rawSubject, signed by key with SHA256WithRSA. The only critical
// extension is basic constraints with CA set.
func SelfSignedCertificate(
	key *rsa.PrivateKey,
	rawSubject []byte,
	serial *big.Int,
	notBefore, notAfter time.Time,
) (*x509.Certificate, error) {
	if key == nil {
		return nil, errors.New("nil signing key")
	}
	template := &x509.Certificate{
		SerialNumber:          serial,
		RawSubject:            rawSubject,
		NotBefore:             notBefore,
		NotAfter:              notAfter,
		SignatureAlgorithm:    x509.SHA256WithRSA,
		IsCA:                  true,
		BasicConstraintsValid: true,
	}

	// RawSubject on the parent doubles as the issuer.
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	if err != nil {
		return nil, err
	}
	return x509.ParseCertificate(der)
}

// AddMonths advances t by n calendar months. When the day of month does not
// exist in the target month it is clamped to that month's last day, so
// Jan 31 + 1 month is Feb 28 (or 29).
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	target := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(target.Year(), target.Month(), t.Location()); d > last {
		d = last
	}
	return time.Date(
		target.Year(), target.Month(), d,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(),
		t.Location(),
	)
}

func daysIn(y int, m time.Month, loc *time.Location) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, loc).Day()
}

// SerialFromTime derives a certificate serial number from t in Unix milliseconds.
func SerialFromTime(t time.Time) *big.Int {
	return big.NewInt(t.UnixMilli())
}
