package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"keystash/internal/crypto"
	"keystash/internal/domain"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored aliases",
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := bind()
			if err != nil {
				return err
			}
			for _, alias := range ks.Aliases() {
				e, err := ks.Entry(alias)
				if err != nil {
					return err
				}
				created := e.Created.Format("2006-01-02 15:04:05")
				if e.Kind != domain.EntryKeyPair {
					fmt.Printf("%s\t%s\t%s\n", alias, e.Kind, created)
					continue
				}
				chain, err := ks.CertificateChain(alias)
				if err != nil {
					return err
				}
				fmt.Printf("%s\t%s\t%s\t%s\t%s\n", alias, e.Kind, created, crypto.Fingerprint(chain[0]), chain[0].Subject)
			}
			return nil
		},
	}
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <alias>",
		Short: "Remove an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := bind()
			if err != nil {
				return err
			}
			if err := ks.DeleteEntry(args[0]); err != nil {
				return err
			}
			fmt.Println("deleted")
			return nil
		},
	}
}
