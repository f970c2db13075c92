// Package main is the entry point for the smartqueue CLI.
package main

import (
	"os"

	"smart-queue-service/internal/cli"
)

var version = "dev"

func main() {
	os.Exit(cli.Execute(version))
}
