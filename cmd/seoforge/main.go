// Package main is the entry point for the seoforge CLI.
package main

import (
	"os"

	"seoforge/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
