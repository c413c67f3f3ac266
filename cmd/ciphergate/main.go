package main

import (
	"os"

	"ciphergate/cmd/ciphergate/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
