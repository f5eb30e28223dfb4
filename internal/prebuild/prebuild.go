// Package prebuild generates the Codespaces prebuild manifest for a stack of
// devcontainer templates.
package prebuild

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/airnub-labs/devc-publish/internal/config"
	"github.com/airnub-labs/devc-publish/internal/errors"
	"github.com/airnub-labs/devc-publish/internal/pathutil"
	"github.com/airnub-labs/devc-publish/pkg/devcontainer"
	"github.com/airnub-labs/devc-publish/pkg/registry"
)

// SchemaURL identifies the document format. It is informational only.
const SchemaURL = "https://schemas.github.com/codespaces/prebuild-configuration"

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Document is the generated prebuild configuration. Field order is the
// serialized key order.
type Document struct {
	Schema      string          `json:"$schema"`
	Stack       StackSummary    `json:"stack"`
	GeneratedAt string          `json:"generatedAt"`
	Namespace   string          `json:"namespace"`
	Templates   []TemplateEntry `json:"templates"`
}

// StackSummary echoes the identity fields of stack.json. A missing
// documentationURL is written as null.
type StackSummary struct {
	ID               json.RawMessage `json:"id,omitempty"`
	Name             json.RawMessage `json:"name,omitempty"`
	Version          json.RawMessage `json:"version,omitempty"`
	DocumentationURL json.RawMessage `json:"documentationURL"`
}

// TemplateEntry describes one published template.
type TemplateEntry struct {
	ID               string          `json:"id"`
	Name             json.RawMessage `json:"name,omitempty"`
	Version          string          `json:"version"`
	URI              string          `json:"uri"`
	DocumentationURL json.RawMessage `json:"documentationURL"`
}

// Options configures a generator run.
type Options struct {
	Layout  *config.Config
	StackID string
	// OutputPath overrides Layout.PrebuildPath(StackID).
	OutputPath string
	Namespace  string
	DryRun     bool
	// Now defaults to time.Now.
	Now func() time.Time
}

// Validate checks options that would otherwise turn into odd paths.
func (o Options) Validate() error {
	if o.Layout == nil {
		return errors.NewValidationError("repository layout is not configured", nil)
	}
	if err := pathutil.ValidateSegment(o.StackID); err != nil {
		return errors.NewValidationError("invalid --stack", err)
	}
	if o.Namespace == "" {
		return errors.NewValidationError("--namespace must not be empty", nil)
	}
	return nil
}

// Build loads the stack manifest and every template it lists. Any template
// that cannot be resolved fails the whole build.
func Build(opts Options) (*Document, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	stackDir := opts.Layout.StackDir(opts.StackID)
	stack, err := devcontainer.LoadStack(opts.Layout.StackManifestPath(opts.StackID))
	if err != nil {
		return nil, errors.NewRuntimeError(fmt.Sprintf("failed to load stack %q", opts.StackID), err)
	}

	entries := make([]TemplateEntry, 0, len(stack.Templates))
	for _, ref := range stack.Templates {
		manifestPath := ref.ManifestPath(stackDir)
		if err := pathutil.ValidatePath(manifestPath, opts.Layout.RepoRoot); err != nil {
			return nil, errors.NewValidationError(fmt.Sprintf("template path %q", ref.Path), err)
		}

		manifest, err := devcontainer.LoadTemplate(manifestPath)
		if err != nil {
			return nil, errors.NewRuntimeError("failed to load template", err)
		}

		version := manifest.ResolvedVersion()
		entries = append(entries, TemplateEntry{
			ID:               manifest.ID,
			Name:             manifest.Name,
			Version:          version,
			URI:              registry.TemplateRef(opts.Namespace, manifest.ID, version),
			DocumentationURL: manifest.DocumentationURL,
		})
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	return &Document{
		Schema: SchemaURL,
		Stack: StackSummary{
			ID:               stack.ID,
			Name:             stack.Name,
			Version:          stack.Version,
			DocumentationURL: stack.DocumentationURL,
		},
		GeneratedAt: now().UTC().Format(TimestampLayout),
		Namespace:   registry.TemplatesBase(opts.Namespace),
		Templates:   entries,
	}, nil
}

// Encode writes doc as two-space indented JSON followed by a newline.
func Encode(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Sync builds the document and either prints it to stdout (dry-run) or
// writes it to the output path, which is returned. Dry-run returns "".
func Sync(ctx context.Context, opts Options, stdout io.Writer) (string, error) {
	doc, err := Build(opts)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if opts.DryRun {
		if err := Encode(stdout, doc); err != nil {
			return "", errors.NewRuntimeError("failed to print prebuild configuration", err)
		}
		return "", nil
	}

	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = opts.Layout.PrebuildPath(opts.StackID)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return "", errors.NewRuntimeError("failed to encode prebuild configuration", err)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return "", errors.NewRuntimeError("failed to create output directory", err)
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return "", errors.NewRuntimeError(fmt.Sprintf("failed to write %s", outputPath), err)
	}
	return outputPath, nil
}
