package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"keystash/internal/crypto"
)

func secretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Store and read symmetric secrets",
	}
	cmd.AddCommand(secretPutCmd(), secretGetCmd())
	return cmd
}

// secret put <alias> <value>: seal value under the entry password.
func secretPutCmd() *cobra.Command {
	var entryPassword string
	var isB64 bool
	cmd := &cobra.Command{
		Use:   "put <alias> <value>",
		Short: "Store a secret",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireEntryPassword(entryPassword); err != nil {
				return err
			}
			value := []byte(args[1])
			if isB64 {
				var err error
				if value, err = decodeB64("value", args[1]); err != nil {
					return err
				}
			}
			if _, err := bind(); err != nil {
				return err
			}
			if err := wire.Secrets.Store(args[0], value, entryPassword); err != nil {
				return err
			}
			fmt.Println("stored")
			return nil
		},
	}
	cmd.Flags().StringVarP(&entryPassword, "entry-password", "e", "", "password protecting this entry")
	cmd.Flags().BoolVar(&isB64, "base64", false, "value is base64 encoded")
	return cmd
}

func secretGetCmd() *cobra.Command {
	var entryPassword string
	var asB64 bool
	cmd := &cobra.Command{
		Use:   "get <alias>",
		Short: "Print a secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireEntryPassword(entryPassword); err != nil {
				return err
			}
			if _, err := bind(); err != nil {
				return err
			}
			value, err := wire.Secrets.Retrieve(args[0], entryPassword)
			if err != nil {
				return err
			}
			if asB64 {
				fmt.Println(crypto.B64(value))
				return nil
			}
			fmt.Println(string(value))
			return nil
		},
	}
	cmd.Flags().StringVarP(&entryPassword, "entry-password", "e", "", "password protecting this entry")
	cmd.Flags().BoolVar(&asB64, "base64", false, "print the value as base64")
	return cmd
}
