// Package main is the entry point for the dbtsync CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/dbtsync/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
