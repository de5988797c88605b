package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the keystore if missing and check its password",
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := bind()
			if err != nil {
				return err
			}
			fmt.Printf("Keystore ready: %s (%d entries)\n", ks.Path(), len(ks.Aliases()))
			return nil
		},
	}
}
