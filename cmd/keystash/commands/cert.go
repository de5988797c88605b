package commands

import (
	"crypto/x509"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"keystash/internal/crypto"
	"keystash/internal/domain"
)

func certCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cert",
		Short: "Issue, inspect and export certificates",
	}
	cmd.AddCommand(
		certIssueCmd(),
		certShowCmd(),
		certKeysCmd(),
		certExportCmd(),
		certP12Cmd(),
		certJKSCmd(),
		certTrustStoreCmd(),
	)
	return cmd
}

// cert issue <alias>: generate a key pair and a self-signed certificate.
func certIssueCmd() *cobra.Command {
	var (
		entryPassword string
		months        int
		identityFile  string
		id            domain.CertIdentity
	)
	cmd := &cobra.Command{
		Use:   "issue <alias>",
		Short: "Generate a key pair and a self-signed certificate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireEntryPassword(entryPassword); err != nil {
				return err
			}
			if identityFile != "" {
				raw, err := os.ReadFile(identityFile)
				if err != nil {
					return err
				}
				// Flags given on the command line win over the file.
				fromFile := domain.CertIdentity{}
				if err := yaml.Unmarshal(raw, &fromFile); err != nil {
					return fmt.Errorf("identity %s: %w", identityFile, err)
				}
				id = mergeIdentity(fromFile, id)
			}
			if !cmd.Flags().Changed("months") {
				months = wire.Config.ValidityMonths
			}
			if _, err := bind(); err != nil {
				return err
			}
			cert, err := wire.Authority.IssueCertificate(args[0], entryPassword, months, id)
			if err != nil {
				return err
			}
			printCertificate(cert)
			return nil
		},
	}
	cmd.Flags().StringVarP(&entryPassword, "entry-password", "e", "", "password protecting the key entry")
	cmd.Flags().IntVar(&months, "months", 0, "validity in calendar months (default from config, 12)")
	cmd.Flags().StringVar(&identityFile, "identity", "", "YAML file with subject fields")
	cmd.Flags().StringVar(&id.CommonName, "cn", "", "common name")
	cmd.Flags().StringVar(&id.Organization, "org", "", "organization")
	cmd.Flags().StringVar(&id.OrganizationalUnit, "ou", "", "organizational unit")
	cmd.Flags().StringVar(&id.Street, "street", "", "street address")
	cmd.Flags().StringVar(&id.City, "city", "", "locality")
	cmd.Flags().StringVar(&id.State, "state", "", "state or province")
	cmd.Flags().StringVar(&id.Country, "country", "", "country code")
	cmd.Flags().StringVar(&id.UserID, "uid", "", "user id")
	return cmd
}

func mergeIdentity(base, over domain.CertIdentity) domain.CertIdentity {
	pick := func(b, o string) string {
		if o != "" {
			return o
		}
		return b
	}
	return domain.CertIdentity{
		CommonName:         pick(base.CommonName, over.CommonName),
		Organization:       pick(base.Organization, over.Organization),
		OrganizationalUnit: pick(base.OrganizationalUnit, over.OrganizationalUnit),
		Street:             pick(base.Street, over.Street),
		City:               pick(base.City, over.City),
		State:              pick(base.State, over.State),
		Country:            pick(base.Country, over.Country),
		UserID:             pick(base.UserID, over.UserID),
	}
}

// cert show <alias> | --file <path>
func certShowCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "show [alias]",
		Short: "Print certificate details",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cert *x509.Certificate
			switch {
			case file != "":
				c, err := wire.Export.ParseCertificateFile(file)
				if err != nil {
					return err
				}
				cert = c
			case len(args) == 1:
				c, err := storedCertificate(args[0])
				if err != nil {
					return err
				}
				cert = c
			default:
				return fmt.Errorf("alias or --file required")
			}
			printCertificate(cert)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "certificate text file to read instead of the keystore")
	return cmd
}

func certKeysCmd() *cobra.Command {
	var entryPassword string
	var private bool
	cmd := &cobra.Command{
		Use:   "keys <alias>",
		Short: "Print the base64 DER public key (and optionally private key)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireEntryPassword(entryPassword); err != nil {
				return err
			}
			if _, err := bind(); err != nil {
				return err
			}
			creds, err := wire.Authority.Credentials(args[0], entryPassword)
			if err != nil {
				return err
			}
			fmt.Printf("Public key:  %s\n", creds.Base64PublicKey())
			if private {
				fmt.Printf("Private key: %s\n", creds.Base64PrivateKey())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&entryPassword, "entry-password", "e", "", "password protecting the key entry")
	cmd.Flags().BoolVar(&private, "private", false, "also print the PKCS#8 private key")
	return cmd
}

func certExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <alias> <file>",
		Short: "Write a certificate to a text file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cert, err := storedCertificate(args[0])
			if err != nil {
				return err
			}
			path, err := wire.Export.WriteCertificateToFile(cert, args[1])
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
}

func certP12Cmd() *cobra.Command {
	var entryPassword, exportPassword string
	cmd := &cobra.Command{
		Use:   "p12 <alias> <file>",
		Short: "Export a stored key pair as a PKCS#12 file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireEntryPassword(entryPassword); err != nil {
				return err
			}
			if _, err := bind(); err != nil {
				return err
			}
			path, err := wire.Export.WritePKCS12(args[0], entryPassword, exportPassword, args[1])
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&entryPassword, "entry-password", "e", "", "password protecting the key entry")
	cmd.Flags().StringVar(&exportPassword, "export-password", "", "password for the exported file")
	_ = cmd.MarkFlagRequired("export-password")
	return cmd
}

func certJKSCmd() *cobra.Command {
	var entryPassword, storePassword string
	cmd := &cobra.Command{
		Use:   "jks <alias> <file>",
		Short: "Export a stored key pair as a Java keystore",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireEntryPassword(entryPassword); err != nil {
				return err
			}
			if _, err := bind(); err != nil {
				return err
			}
			path, err := wire.Export.WriteJavaKeyStore(args[0], entryPassword, storePassword, args[1])
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&entryPassword, "entry-password", "e", "", "password protecting the key entry")
	cmd.Flags().StringVar(&storePassword, "store-password", "", "password for the Java keystore (min 6 characters)")
	_ = cmd.MarkFlagRequired("store-password")
	return cmd
}

func certTrustStoreCmd() *cobra.Command {
	var storePassword string
	cmd := &cobra.Command{
		Use:   "truststore <alias> <file>",
		Short: "Write a JKS trust store holding a stored certificate",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cert, err := storedCertificate(args[0])
			if err != nil {
				return err
			}
			path, err := wire.Export.WriteTrustStore(cert, args[1], storePassword)
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
	cmd.Flags().StringVar(&storePassword, "store-password", "changeit", "trust store password (min 6 characters)")
	return cmd
}

func storedCertificate(alias string) (*x509.Certificate, error) {
	ks, err := bind()
	if err != nil {
		return nil, err
	}
	chain, err := ks.CertificateChain(alias)
	if err != nil {
		return nil, err
	}
	return chain[0], nil
}

func printCertificate(cert *x509.Certificate) {
	fmt.Printf("Subject:     %s\n", cert.Subject)
	fmt.Printf("Serial:      %s\n", cert.SerialNumber)
	fmt.Printf("Not before:  %s\n", cert.NotBefore.Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("Not after:   %s\n", cert.NotAfter.Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("CA:          %t\n", cert.IsCA)
	fmt.Printf("Fingerprint: %s\n", crypto.Fingerprint(cert))
}
