// Package export writes certificates and stored key material to files.
//
// Certificates are written as base64 DER text between BEGIN/END
// CERTIFICATE markers, using the platform line separator. Key pairs can
// be exported as standalone PKCS#12 files or Java keystores, and
// certificates as JKS trust stores for Java consumers.
package export
