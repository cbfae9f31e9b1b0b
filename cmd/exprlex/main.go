// Package main provides the exprlex command-line tool.
package main

import (
	"os"

	"github.com/leapstack-labs/exprlex/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
