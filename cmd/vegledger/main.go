// Package main is the entry point for vegledger CLI.
package main

import (
	"os"

	"github.com/pigeonworks-llc/vegledger/cmd/vegledger/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
