// Package authority generates RSA key pairs and issues self-signed CA
// certificates for them, storing key and certificate in the bound keystore.
//
// Serial numbers are the issuance time in Unix milliseconds. A process-wide
// guard bumps the serial when two issuances fall in the same millisecond;
// separate processes issuing at the same instant can still collide.
package authority
