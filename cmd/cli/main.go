package main

import (
	"os"

	"github.com/kisansetu/kisanctl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
