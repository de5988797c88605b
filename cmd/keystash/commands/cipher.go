package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"keystash/internal/crypto"
)

// encrypt <public-key> <plaintext>: the key is base64 DER, or taken from
// a stored certificate with --alias.
func encryptCmd() *cobra.Command {
	var alias string
	cmd := &cobra.Command{
		Use:   "encrypt [public-key-base64] <plaintext>",
		Short: "Encrypt a short message to an RSA public key",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var pub []byte
			switch {
			case alias != "" && len(args) == 1:
				cert, err := storedCertificate(alias)
				if err != nil {
					return err
				}
				if pub, err = crypto.MarshalPublicKey(cert.PublicKey); err != nil {
					return err
				}
			case alias == "" && len(args) == 2:
				var err error
				if pub, err = decodeB64("public key", args[0]); err != nil {
					return err
				}
			default:
				return fmt.Errorf("give either --alias or a public key, plus the plaintext")
			}
			ct, err := wire.Cipher.Encrypt(pub, []byte(args[len(args)-1]))
			if err != nil {
				return err
			}
			fmt.Println(crypto.B64(ct))
			return nil
		},
	}
	cmd.Flags().StringVar(&alias, "alias", "", "use the public key of a stored certificate")
	return cmd
}

// decrypt <private-key> <ciphertext>: the key is base64 DER, or taken
// from a stored key pair with --alias and -e.
func decryptCmd() *cobra.Command {
	var alias, entryPassword string
	cmd := &cobra.Command{
		Use:   "decrypt [private-key-base64] <ciphertext-base64>",
		Short: "Decrypt a message with an RSA private key",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var priv []byte
			switch {
			case alias != "" && len(args) == 1:
				if err := requireEntryPassword(entryPassword); err != nil {
					return err
				}
				if _, err := bind(); err != nil {
					return err
				}
				creds, err := wire.Authority.Credentials(alias, entryPassword)
				if err != nil {
					return err
				}
				priv = creds.PrivateKey
			case alias == "" && len(args) == 2:
				var err error
				if priv, err = decodeB64("private key", args[0]); err != nil {
					return err
				}
			default:
				return fmt.Errorf("give either --alias or a private key, plus the ciphertext")
			}
			ct, err := decodeB64("ciphertext", args[len(args)-1])
			if err != nil {
				return err
			}
			pt, err := wire.Cipher.Decrypt(priv, ct)
			if err != nil {
				return err
			}
			fmt.Println(string(pt))
			return nil
		},
	}
	cmd.Flags().StringVar(&alias, "alias", "", "use the private key of a stored key pair")
	cmd.Flags().StringVarP(&entryPassword, "entry-password", "e", "", "password protecting the key entry")
	return cmd
}
