package types

// CertIdentity carries the subject attributes of a self-signed certificate.
// All fields are free-form; empty fields are left out of the distinguished name.
type CertIdentity struct {
	CommonName         string `yaml:"common_name"`
	Organization       string `yaml:"organization"`
	OrganizationalUnit string `yaml:"organizational_unit"`
	Street             string `yaml:"street"`
	City               string `yaml:"city"`
	State              string `yaml:"state"`
	Country            string `yaml:"country"`
	UserID             string `yaml:"user_id"`
}
