package crypto

import (
	"bytes"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"runtime"
	"strings"
)

const (
	BeginCertificate = "-----BEGIN CERTIFICATE-----"
	EndCertificate   = "-----END CERTIFICATE-----"

	certLineWidth = 64
)

// B64 returns standard base64 encoding without newlines.
func B64(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

// LineSeparator is the platform line separator.
func LineSeparator() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// EncodeCertificateText frames der as base64 wrapped at 64 columns between
// the BEGIN/END CERTIFICATE markers, joined by sep. There is no trailing
// separator.
//
// encoding/pem is not used because it always emits "\n" and a trailing newline.
func EncodeCertificateText(der []byte, sep string) string {
	enc := base64.StdEncoding.EncodeToString(der)

	var b strings.Builder
	b.WriteString(BeginCertificate)
	b.WriteString(sep)
	for len(enc) > certLineWidth {
		b.WriteString(enc[:certLineWidth])
		b.WriteString(sep)
		enc = enc[certLineWidth:]
	}
	b.WriteString(enc)
	b.WriteString(sep)
	b.WriteString(EndCertificate)
	return b.String()
}

// DecodeCertificateText strips the markers and line breaks written by
// EncodeCertificateText and returns the DER bytes.
func DecodeCertificateText(text []byte) ([]byte, error) {
	begin := bytes.Index(text, []byte(BeginCertificate))
	end := bytes.Index(text, []byte(EndCertificate))
	if begin < 0 || end < begin {
		return nil, errors.New("certificate markers not found")
	}
	body := text[begin+len(BeginCertificate) : end]
	body = bytes.Map(func(r rune) rune {
		if r == '\r' || r == '\n' || r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, body)
	return base64.StdEncoding.DecodeString(string(body))
}

// ParseCertificateText is DecodeCertificateText followed by x509 parsing.
func ParseCertificateText(text []byte) (*x509.Certificate, error) {
	der, err := DecodeCertificateText(text)
	if err != nil {
		return nil, err
	}
	return x509.ParseCertificate(der)
}
