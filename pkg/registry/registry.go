// Package registry builds GHCR references for published features and templates.
package registry

import (
	"fmt"
	"strings"
)

// Host is the container registry every reference points at.
const Host = "ghcr.io"

// DefaultTag is used for templates that do not declare a version.
const DefaultTag = "latest"

// FeatureRef returns ghcr.io/<namespace>/features/<featureID>:<version>.
func FeatureRef(namespace, featureID, version string) string {
	return fmt.Sprintf("%s/%s/features/%s:%s", Host, namespace, featureID, version)
}

// TemplatesBase returns ghcr.io/<namespace>/templates. Trailing slashes on
// namespace are dropped.
func TemplatesBase(namespace string) string {
	return fmt.Sprintf("%s/%s/templates", Host, strings.TrimRight(namespace, "/"))
}

// TemplateRef returns <TemplatesBase(namespace)>/<templateID>:<version>,
// tagging with DefaultTag when version is empty.
func TemplateRef(namespace, templateID, version string) string {
	if version == "" {
		version = DefaultTag
	}
	return fmt.Sprintf("%s/%s:%s", TemplatesBase(namespace), templateID, version)
}
