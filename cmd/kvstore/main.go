package main

import (
	"os"

	"kvstore/cmd/kvstore/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
