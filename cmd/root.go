// Package cmd defines command-line interface commands for devc-publish.
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	version string
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "devc-publish",
	Short: "Prepare devcontainer templates and prebuilds for GHCR",
	Long: `devc-publish prepares devcontainer templates for publication to GHCR.

prepare-features rewrites local feature references in template manifests
into registry references pinned to a release version.

sync-prebuilds generates the Codespaces prebuild manifest for a stack.

Paths are resolved from the enclosing git repository unless --root is set.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root CLI command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI.
func SetVersion(v string) {
	version = v
	rootCmd.Version = version
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Repository root (default: enclosing git repository)")

	rootCmd.AddCommand(prepareFeaturesCmd)
	rootCmd.AddCommand(syncPrebuildsCmd)
}
