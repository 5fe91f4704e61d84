package main

import (
	"os"

	"github.com/stablescout/stablescout/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
