package main

import (
	"os"

	"github.com/billwatch/billwatch/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
