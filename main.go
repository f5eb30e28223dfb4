// Package main is the entry point for devc-publish CLI application.
package main

import (
	"os"

	"github.com/airnub-labs/devc-publish/cmd"
	"github.com/airnub-labs/devc-publish/internal/errors"
	"github.com/airnub-labs/devc-publish/internal/ui"
)

var version = "dev"

func main() {
	cmd.SetVersion(version)
	if err := cmd.Execute(); err != nil {
		// Pending changes were already listed by the command.
		if !errors.IsPolicy(err) {
			ui.NewPrinter(os.Stdout, os.Stderr).Error("Error: %v", err)
		}
		os.Exit(errors.GetExitCode(err))
	}
}
