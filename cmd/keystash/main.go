package main

import (
	"os"

	"keystash/cmd/keystash/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
