package main

import (
	"os"

	"ephemera/cmd/ephemera/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
