// Package main is the entry point for the histdem CLI tool.
package main

import (
	"os"

	"github.com/dhcraft/histdem/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
