// Package workspace provides utilities for finding the workspace root directory.
package workspace

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// ErrNotRepository is returned when no git repository encloses the start directory.
var ErrNotRepository = git.ErrRepositoryNotExists

// FindRoot returns the top-level directory of the git repository that
// contains start, searching parent directories the way `git rev-parse
// --show-toplevel` does.
func FindRoot(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", start, err)
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("open worktree: %w", err)
	}
	return wt.Filesystem.Root(), nil
}

// RootOrDir returns the repository root enclosing dir, or dir itself when it
// is not inside a git repository.
func RootOrDir(dir string) (string, error) {
	root, err := FindRoot(dir)
	if err == nil {
		return root, nil
	}
	if errors.Is(err, ErrNotRepository) {
		return filepath.Abs(dir)
	}
	return "", err
}
