package main

import (
	"os"

	"github.com/checklight/checklight/internal/adapters/inbound/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
