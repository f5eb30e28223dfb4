// Package config provides configuration management for devc-publish.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/airnub-labs/devc-publish/internal/workspace"
	"github.com/airnub-labs/devc-publish/pkg/devcontainer"
)

const (
	// NamespaceEnv names the environment variable holding the default registry namespace.
	NamespaceEnv = "DEVCONTAINERS_NAMESPACE"
	// DefaultNamespace is used when neither a flag nor the environment sets one.
	DefaultNamespace = "airnub-labs/devcontainers"
	// DefaultStack is the stack synced when --stack is not given.
	DefaultStack = "classroom"
)

type Config struct {
	RepoRoot     string
	TemplatesDir string
	StacksDir    string
	PrebuildsDir string
}

// LoadConfig resolves the repository layout. An empty rootOverride means the
// git repository enclosing the working directory (or the working directory
// itself outside a repository).
func LoadConfig(rootOverride string) (*Config, error) {
	root := rootOverride
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		root, err = workspace.RootOrDir(cwd)
		if err != nil {
			return nil, fmt.Errorf("find repository root: %w", err)
		}
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve repository root: %w", err)
	}

	devcontainers := filepath.Join(root, "devcontainers")
	return &Config{
		RepoRoot:     root,
		TemplatesDir: filepath.Join(devcontainers, "templates"),
		StacksDir:    filepath.Join(devcontainers, "stacks"),
		PrebuildsDir: filepath.Join(root, ".github", "codespaces", "prebuilds"),
	}, nil
}

// StackDir returns devcontainers/stacks/<stackID>.
func (c *Config) StackDir(stackID string) string {
	return filepath.Join(c.StacksDir, stackID)
}

// StackManifestPath returns devcontainers/stacks/<stackID>/stack.json.
func (c *Config) StackManifestPath(stackID string) string {
	return filepath.Join(c.StackDir(stackID), devcontainer.StackManifestName)
}

// PrebuildPath returns the default generator output for stackID.
func (c *Config) PrebuildPath(stackID string) string {
	return filepath.Join(c.PrebuildsDir, stackID+".json")
}

// ResolveNamespace prefers the process environment, then <root>/.env, then
// DefaultNamespace. The .env file is read without touching os.Environ.
func (c *Config) ResolveNamespace() (string, error) {
	if ns := os.Getenv(NamespaceEnv); ns != "" {
		return ns, nil
	}

	envFile := filepath.Join(c.RepoRoot, ".env")
	if _, err := os.Stat(envFile); err == nil {
		values, err := godotenv.Read(envFile)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", envFile, err)
		}
		if ns := strings.TrimSpace(values[NamespaceEnv]); ns != "" {
			return ns, nil
		}
	}

	return DefaultNamespace, nil
}
