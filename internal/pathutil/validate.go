// Package pathutil keeps manifest-supplied paths inside the repository.
// Stack manifests name their templates by relative path and stack ids become
// directory names; both are checked here before any file is opened.
package pathutil

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrPathTraversal is returned when a path attempts to escape the designated boundary directory
var ErrPathTraversal = errors.New("path escapes repository root")

// ErrInvalidSegment is returned when a name cannot be used as a single directory segment.
var ErrInvalidSegment = errors.New("invalid path segment")

// ValidatePath validates that path is contained within baseDir (CWE-22).
// Relative paths are joined to baseDir. Containment is checked lexically and,
// when both sides resolve, again after following symbolic links.
func ValidatePath(path, baseDir string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}
	if baseDir == "" {
		return fmt.Errorf("baseDir cannot be empty")
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return fmt.Errorf("cannot resolve baseDir to absolute path: %w", err)
	}

	absPath := filepath.Clean(path)
	if !filepath.IsAbs(absPath) {
		absPath = filepath.Join(absBaseDir, absPath)
	}

	if !within(absPath, absBaseDir) {
		return fmt.Errorf("%w: %s is not within %s", ErrPathTraversal, path, baseDir)
	}

	resolvedBase, err := filepath.EvalSymlinks(absBaseDir)
	if err != nil {
		return nil
	}
	resolvedPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil
	}
	if !within(resolvedPath, resolvedBase) {
		return fmt.Errorf("%w: %s resolves outside %s", ErrPathTraversal, path, baseDir)
	}
	return nil
}

// ValidateSegment checks that name can be used as one directory name:
// non-empty, no separators, and not "." or "..".
func ValidateSegment(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidSegment)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidSegment, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidSegment, name)
	}
	return nil
}

func within(path, base string) bool {
	path = filepath.Clean(path)
	base = filepath.Clean(base)
	if path == base {
		return true
	}
	return strings.HasPrefix(path, strings.TrimSuffix(base, string(filepath.Separator))+string(filepath.Separator))
}
