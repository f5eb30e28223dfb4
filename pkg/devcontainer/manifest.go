package devcontainer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/airnub-labs/devc-publish/pkg/registry"
)

// UnmarshalJSON implements custom JSON unmarshaling so that a missing or
// malformed templates value reads as an empty list instead of failing.
func (s *StackManifest) UnmarshalJSON(data []byte) error {
	type Alias struct {
		ID               json.RawMessage `json:"id,omitempty"`
		Name             json.RawMessage `json:"name,omitempty"`
		Version          json.RawMessage `json:"version,omitempty"`
		DocumentationURL json.RawMessage `json:"documentationURL,omitempty"`
		Templates        json.RawMessage `json:"templates"`
	}

	var aux Alias
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	s.ID = aux.ID
	s.Name = aux.Name
	s.Version = aux.Version
	s.DocumentationURL = aux.DocumentationURL
	s.Templates = nil

	var items []json.RawMessage
	if err := json.Unmarshal(aux.Templates, &items); err != nil {
		// Absent, null or not an array
		return nil
	}

	s.Templates = make([]TemplateRef, 0, len(items))
	for _, item := range items {
		var ref struct {
			Path interface{} `json:"path"`
		}
		if err := json.Unmarshal(item, &ref); err != nil {
			s.Templates = append(s.Templates, TemplateRef{})
			continue
		}
		path, _ := ref.Path.(string)
		s.Templates = append(s.Templates, TemplateRef{Path: path})
	}
	return nil
}

// ResolvedVersion returns the manifest version, or "latest" when it is unset.
func (m *TemplateManifest) ResolvedVersion() string {
	if m.Version == "" {
		return registry.DefaultTag
	}
	return m.Version
}

// ManifestPath resolves the reference against stackDir. A path ending in
// .json names the manifest itself; anything else is a template directory
// holding devcontainer-template.json.
func (r TemplateRef) ManifestPath(stackDir string) string {
	resolved := filepath.Join(stackDir, filepath.FromSlash(r.Path))
	if filepath.IsAbs(r.Path) {
		resolved = filepath.Clean(r.Path)
	}
	if strings.EqualFold(filepath.Ext(resolved), ".json") {
		return resolved
	}
	return filepath.Join(resolved, TemplateManifestName)
}

// LoadTemplate reads and parses a devcontainer-template.json file.
func LoadTemplate(path string) (*TemplateManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var manifest TemplateManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if manifest.ID == "" {
		return nil, fmt.Errorf("%s: template manifest has no id", path)
	}
	return &manifest, nil
}

// LoadStack reads and parses a stack.json file.
func LoadStack(path string) (*StackManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var manifest StackManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &manifest, nil
}
