package main

import (
	"os"

	"github.com/rmoreno/cadet/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
