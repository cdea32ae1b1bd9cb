package main

import (
	"os"

	"github.com/isdelr/pixelgram/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
