// Package main is the entry point for the frames CLI binary.
package main

import (
	"os"

	"github.com/go-sif/frames/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
