// Package main is the entry point for the deptrack-sync CLI binary.
package main

import (
	"os"

	cli "deptrack-sync/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
