// Package main is the entry point for the storage-planner CLI.
package main

import (
	"os"

	"storage-planner/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
