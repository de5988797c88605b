package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"keystash/internal/crypto"
)

// sign <alias> <message>: prints the base64 signature.
func signCmd() *cobra.Command {
	var entryPassword string
	cmd := &cobra.Command{
		Use:   "sign <alias> <message>",
		Short: "Sign a message with a stored key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireEntryPassword(entryPassword); err != nil {
				return err
			}
			if _, err := bind(); err != nil {
				return err
			}
			res, err := wire.Signatures.Sign(args[0], entryPassword, []byte(args[1]))
			if err != nil {
				return err
			}
			if !res.Signed() {
				return fmt.Errorf("signature of %q did not verify against its certificate", args[0])
			}
			fmt.Println(crypto.B64(res.Signature))
			return nil
		},
	}
	cmd.Flags().StringVarP(&entryPassword, "entry-password", "e", "", "password protecting the key entry")
	return cmd
}

// verify <alias> <signature> <message>: exit status reflects validity.
func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <alias> <signature-base64> <message>",
		Short: "Verify a signature with a stored certificate",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			sig, err := decodeB64("signature", args[1])
			if err != nil {
				return err
			}
			if _, err := bind(); err != nil {
				return err
			}
			ok, err := wire.Signatures.Verify(args[0], sig, []byte(args[2]))
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("signature invalid")
			}
			fmt.Println("signature valid")
			return nil
		},
	}
}
