package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/airnub-labs/devc-publish/internal/config"
	"github.com/airnub-labs/devc-publish/internal/errors"
	"github.com/airnub-labs/devc-publish/internal/prebuild"
	"github.com/airnub-labs/devc-publish/internal/ui"
)

var (
	syncStack     string
	syncOutput    string
	syncNamespace string
	syncDryRun    bool
)

var syncPrebuildsCmd = &cobra.Command{
	Use:   "sync-prebuilds [flags]",
	Short: "Generate the Codespaces prebuild manifest for a stack",
	Long: `Generate the Codespaces prebuild manifest for a stack of templates.

The command reads devcontainers/stacks/<stack>/stack.json, resolves every
template it lists and writes .github/codespaces/prebuilds/<stack>.json with
the GHCR reference of each template. Templates without a version are
referenced as :latest.

The namespace defaults to $DEVCONTAINERS_NAMESPACE (also read from a .env
file at the repository root), then to airnub-labs/devcontainers.`,
	Example: `  # Regenerate the classroom prebuild manifest
  devc-publish sync-prebuilds

  # Print the manifest for another stack without writing it
  devc-publish sync-prebuilds --stack data-science --dry-run

  # Write to a custom location under a fork's namespace
  devc-publish sync-prebuilds --namespace acme/devcontainers --output out/prebuild.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSyncPrebuilds(cmd)
	},
}

func runSyncPrebuilds(cmd *cobra.Command) error {
	out := ui.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())

	cfg, err := config.LoadConfig(rootDir)
	if err != nil {
		return errors.NewRuntimeError("failed to load configuration", err)
	}

	// An explicit --namespace "" is kept so that it is rejected below.
	namespace := syncNamespace
	if !cmd.Flags().Changed("namespace") {
		namespace, err = cfg.ResolveNamespace()
		if err != nil {
			return errors.NewRuntimeError("failed to resolve namespace", err)
		}
	}

	outputPath := syncOutput
	if outputPath != "" {
		outputPath, err = filepath.Abs(outputPath)
		if err != nil {
			return errors.NewValidationError("invalid --output", err)
		}
	}

	written, err := prebuild.Sync(cmd.Context(), prebuild.Options{
		Layout:     cfg,
		StackID:    syncStack,
		OutputPath: outputPath,
		Namespace:  namespace,
		DryRun:     syncDryRun,
	}, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if !syncDryRun {
		out.Success("Wrote %s", written)
	}
	return nil
}

func init() {
	syncPrebuildsCmd.Flags().StringVar(&syncStack, "stack", config.DefaultStack, "Stack id under devcontainers/stacks")
	syncPrebuildsCmd.Flags().StringVar(&syncOutput, "output", "", "Output path (default: .github/codespaces/prebuilds/<stack>.json)")
	syncPrebuildsCmd.Flags().StringVar(&syncNamespace, "namespace", "", "Registry namespace (default: $"+config.NamespaceEnv+" or "+config.DefaultNamespace+")")
	syncPrebuildsCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Print the manifest to stdout instead of writing it")
}
