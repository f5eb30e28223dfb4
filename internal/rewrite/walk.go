package rewrite

import (
	"io/fs"
	"iter"
	"path/filepath"
	"slices"
	"strings"

	"github.com/airnub-labs/devc-publish/pkg/devcontainer"
)

// Walk yields every regular file under root in lexical depth-first order.
// Symlinks and other non-regular entries are skipped. The sequence is lazy
// and single-pass; an error is yielded once and ends the walk.
func Walk(root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil {
			yield("", err)
		}
	}
}

// IsTargetFile reports whether path is a template manifest or a
// devcontainer.json inside a .devcontainer directory.
func IsTargetFile(path string) bool {
	switch filepath.Base(path) {
	case devcontainer.TemplateManifestName:
		return true
	case devcontainer.ConfigName:
		segments := strings.Split(filepath.ToSlash(filepath.Dir(path)), "/")
		return slices.Contains(segments, devcontainer.ConfigDir)
	}
	return false
}
