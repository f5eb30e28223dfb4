package rewrite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/airnub-labs/devc-publish/internal/errors"
)

// Options configures a rewrite run over a templates tree.
type Options struct {
	// TemplatesDir is the tree scanned for manifests.
	TemplatesDir string
	// BaseDir is the directory reported paths are relative to.
	BaseDir   string
	Namespace string
	Version   string
	DryRun    bool
}

// Report lists the files a run changed, or would change in dry-run mode.
type Report struct {
	DryRun bool
	Files  []string
}

// Validate checks the flag combination before any file is touched.
func (o Options) Validate() error {
	if !o.DryRun && (o.Namespace == "" || o.Version == "") {
		return errors.NewValidationError("--namespace and --version are required unless --dry-run is specified.", nil)
	}
	return nil
}

// Run rewrites every target file under opts.TemplatesDir. Files are written
// one at a time; a failure stops the run but keeps earlier writes.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	var targets []string
	for path, err := range Walk(opts.TemplatesDir) {
		if err != nil {
			return nil, errors.NewRuntimeError("failed to scan templates", err)
		}
		if IsTargetFile(path) {
			targets = append(targets, path)
		}
	}

	rw := New(opts.Namespace, opts.Version)
	report := &Report{DryRun: opts.DryRun}

	for _, path := range targets {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		original, err := os.ReadFile(path)
		if err != nil {
			return report, errors.NewRuntimeError(fmt.Sprintf("failed to read %s", path), err)
		}

		result := rw.Apply(string(original), opts.DryRun)
		if !result.Changed {
			continue
		}

		if !opts.DryRun {
			if err := os.WriteFile(path, []byte(result.Updated), 0644); err != nil {
				return report, errors.NewRuntimeError(fmt.Sprintf("failed to write %s", path), err)
			}
		}
		report.Files = append(report.Files, relativeTo(opts.BaseDir, path))
	}

	return report, nil
}

func relativeTo(base, path string) string {
	if base == "" {
		return path
	}
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return rel
}
