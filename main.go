package main

import (
	"os"

	"github.com/pu10c88/bank-statement-extractor/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
