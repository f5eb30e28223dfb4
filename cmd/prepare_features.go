package cmd

import (
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/airnub-labs/devc-publish/internal/config"
	"github.com/airnub-labs/devc-publish/internal/errors"
	"github.com/airnub-labs/devc-publish/internal/rewrite"
	"github.com/airnub-labs/devc-publish/internal/ui"
	"github.com/airnub-labs/devc-publish/pkg/registry"
)

var (
	prepareDryRun    bool
	prepareNamespace string
	prepareVersion   string
)

var prepareFeaturesCmd = &cobra.Command{
	Use:   "prepare-features [flags]",
	Short: "Pin template feature references to published registry versions",
	Long: `Rewrite feature references in devcontainer templates before publishing.

The command scans devcontainers/templates for devcontainer-template.json files
and for devcontainer.json files inside .devcontainer directories, then:
1. Replaces local references (file:../features/<id>) with
   ghcr.io/<namespace>/features/<id>:<version>
2. Re-tags existing ghcr.io/<namespace>/features/<id> references to <version>

With --dry-run nothing is written; the command fails if any template still
references local features.`,
	Example: `  # Check that no template references local features
  devc-publish prepare-features --dry-run

  # Pin every feature reference to 1.2.0
  devc-publish prepare-features --namespace airnub-labs/devcontainers --version 1.2.0`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return prepareOptions().Validate()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPrepareFeatures(cmd)
	},
}

func prepareOptions() rewrite.Options {
	return rewrite.Options{
		Namespace: prepareNamespace,
		Version:   prepareVersion,
		DryRun:    prepareDryRun,
	}
}

func runPrepareFeatures(cmd *cobra.Command) error {
	out := ui.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())

	cfg, err := config.LoadConfig(rootDir)
	if err != nil {
		return errors.NewRuntimeError("failed to load configuration", err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return errors.NewRuntimeError("failed to get working directory", err)
	}

	if !prepareDryRun {
		warnUnversionedTag(out, prepareVersion)
	}

	opts := prepareOptions()
	opts.TemplatesDir = cfg.TemplatesDir
	opts.BaseDir = cwd

	report, err := rewrite.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}

	switch {
	case report.DryRun && len(report.Files) > 0:
		out.Error("The following template files reference local features and must be updated:")
		out.List(report.Files, true)
		return errors.NewPendingChangesError(report.Files)
	case report.DryRun:
		out.Success("No template files contain local feature references.")
	case len(report.Files) > 0:
		out.Info("Updated feature references in:")
		out.List(report.Files, false)
	}
	return nil
}

// warnUnversionedTag flags tags that are neither "latest" nor a semantic
// version. Such tags are still published.
func warnUnversionedTag(out *ui.Printer, tag string) {
	if tag == registry.DefaultTag {
		return
	}
	if _, err := semver.NewVersion(tag); err != nil {
		out.Warning("Warning: --version %q is not a semantic version", tag)
	}
}

func init() {
	prepareFeaturesCmd.Flags().BoolVar(&prepareDryRun, "dry-run", false, "Report templates that still reference local features without writing")
	prepareFeaturesCmd.Flags().StringVar(&prepareNamespace, "namespace", "", "Registry namespace, e.g. airnub-labs/devcontainers (required unless --dry-run)")
	prepareFeaturesCmd.Flags().StringVar(&prepareVersion, "version", "", "Feature version tag to pin (required unless --dry-run)")
}
