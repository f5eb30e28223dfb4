// Package devcontainer models the devcontainer template and stack manifests
// that are published to the registry.
package devcontainer

import "encoding/json"

// TemplateManifestName is the file that declares a template.
const TemplateManifestName = "devcontainer-template.json"

// ConfigName is the devcontainer configuration file inside a .devcontainer directory.
const ConfigName = "devcontainer.json"

// ConfigDir is the directory segment that holds ConfigName.
const ConfigDir = ".devcontainer"

// StackManifestName is the file that declares a stack.
const StackManifestName = "stack.json"

// TemplateManifest represents the fields of devcontainer-template.json used for publishing.
// ID and Version form the registry reference and must be strings; Name and
// DocumentationURL are copied into the prebuild document as written.
type TemplateManifest struct {
	ID               string          `json:"id"`
	Version          string          `json:"version,omitempty"`
	Name             json.RawMessage `json:"name,omitempty"`
	DocumentationURL json.RawMessage `json:"documentationURL,omitempty"`
}

// StackManifest represents stack.json, a named bundle of templates. The
// identity fields are only echoed, so any JSON value is kept verbatim.
type StackManifest struct {
	ID               json.RawMessage `json:"id,omitempty"`
	Name             json.RawMessage `json:"name,omitempty"`
	Version          json.RawMessage `json:"version,omitempty"`
	DocumentationURL json.RawMessage `json:"documentationURL,omitempty"`
	Templates        []TemplateRef   `json:"-"` // custom unmarshaling tolerates a missing or non-array value
}

// TemplateRef points from a stack at one template, relative to the stack directory
type TemplateRef struct {
	Path string `json:"path"`
}
