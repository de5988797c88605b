package commands

import (
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"keystash/internal/app"
	"keystash/internal/store"
)

var (
	configPath   string
	keystorePath string
	password     string
	verbose      bool

	wire *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:          "keystash",
		Short:        "Keystore-backed secrets, certificates and signatures",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				if home, err := app.DefaultHome(); err == nil {
					configPath = filepath.Join(home, "config.yaml")
				}
			}
			cfg, err := app.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if keystorePath != "" {
				cfg.Keystore = keystorePath
			}
			if password != "" {
				cfg.Password = password
			}
			if verbose {
				cfg.Verbose = true
			}
			if cfg.Verbose {
				cfg.Logger = log.New(os.Stderr, "keystash: ", log.LstdFlags)
			}

			wire, err = app.NewWire(cfg)
			return err
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.keystash/config.yaml)")
	root.PersistentFlags().StringVarP(&keystorePath, "keystore", "k", "", "keystore file (.p12, .pfx or .pkcs12)")
	root.PersistentFlags().StringVarP(&password, "password", "p", "", "keystore password (or $"+app.EnvPassword+")")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log keystore activity to stderr")

	root.AddCommand(
		initCmd(),
		listCmd(),
		deleteCmd(),
		secretCmd(),
		certCmd(),
		signCmd(),
		verifyCmd(),
		encryptCmd(),
		decryptCmd(),
	)
	return root.Execute()
}

// bind opens the configured keystore for commands that need it.
func bind() (*store.Keystore, error) {
	return wire.Bind()
}

func requireEntryPassword(pw string) error {
	if pw == "" {
		return fmt.Errorf("entry password required (-e)")
	}
	return nil
}

func decodeB64(name, s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%s is not valid base64: %w", name, err)
	}
	return b, nil
}
