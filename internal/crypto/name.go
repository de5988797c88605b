package crypto

import (
	"crypto/x509/pkix"
	"encoding/asn1"

	"keystash/internal/domain"
)

var (
	oidCommonName         = asn1.ObjectIdentifier{2, 5, 4, 3}
	oidOrganization       = asn1.ObjectIdentifier{2, 5, 4, 10}
	oidOrganizationalUnit = asn1.ObjectIdentifier{2, 5, 4, 11}
	oidStreetAddress      = asn1.ObjectIdentifier{2, 5, 4, 9}
	oidLocality           = asn1.ObjectIdentifier{2, 5, 4, 7}
	oidProvince           = asn1.ObjectIdentifier{2, 5, 4, 8}
	oidCountry            = asn1.ObjectIdentifier{2, 5, 4, 6}
	// OIDUserID is the LDAP uid attribute (RFC 4519).
	OIDUserID = asn1.ObjectIdentifier{0, 9, 2342, 19200300, 100, 1, 1}
)

// DistinguishedName builds the subject RDN sequence in the order
// CN, O, OU, STREET, L, ST, C, UID. Empty fields are skipped.
//
// pkix.Name is not used because its ToRDNSequence imposes its own order.
func DistinguishedName(id domain.CertIdentity) pkix.RDNSequence {
	attrs := []struct {
		oid   asn1.ObjectIdentifier
		value string
	}{
		{oidCommonName, id.CommonName},
		{oidOrganization, id.Organization},
		{oidOrganizationalUnit, id.OrganizationalUnit},
		{oidStreetAddress, id.Street},
		{oidLocality, id.City},
		{oidProvince, id.State},
		{oidCountry, id.Country},
		{OIDUserID, id.UserID},
	}
	seq := make(pkix.RDNSequence, 0, len(attrs))
	for _, a := range attrs {
		if a.value == "" {
			continue
		}
		seq = append(seq, pkix.RelativeDistinguishedNameSET{
			{Type: a.oid, Value: a.value},
		})
	}
	return seq
}

// EncodeDistinguishedName returns the DER form of DistinguishedName(id).
func EncodeDistinguishedName(id domain.CertIdentity) ([]byte, error) {
	return asn1.Marshal(DistinguishedName(id))
}
