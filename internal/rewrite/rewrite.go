// Package rewrite turns local feature references in template manifests into
// registry references pinned to a release version.
//
// Manifests are rewritten as text, never decoded and re-encoded, so comments,
// key order and indentation survive a rewrite byte for byte.
package rewrite

import (
	"regexp"

	"github.com/airnub-labs/devc-publish/pkg/registry"
)

// LocalFeaturePattern matches "file:" followed by one or more "../" segments,
// "features/" and a feature id. The only submatch is the feature id.
var LocalFeaturePattern = regexp.MustCompile(`file:(?:\.\./+)+features/([A-Za-z0-9_-]+)`)

// RegistryFeaturePattern matches ghcr.io/<namespace>/features/<id>:<tag> for
// the given namespace. The only submatch is the feature id.
func RegistryFeaturePattern(namespace string) *regexp.Regexp {
	return regexp.MustCompile(`ghcr\.io/` + regexp.QuoteMeta(namespace) + `/features/([A-Za-z0-9_-]+):[A-Za-z0-9._-]+`)
}

// Result is the outcome of rewriting one file's content.
type Result struct {
	Changed   bool
	Updated   string
	LocalRefs int
}

// Rewriter pins feature references to Namespace and Version.
type Rewriter struct {
	Namespace string
	Version   string

	registryPattern *regexp.Regexp
}

// New returns a Rewriter for namespace and version.
func New(namespace, version string) *Rewriter {
	return &Rewriter{
		Namespace:       namespace,
		Version:         version,
		registryPattern: RegistryFeaturePattern(namespace),
	}
}

// Apply rewrites content.
//
// In dry-run mode nothing is substituted: Changed reports whether any local
// reference remains, and registry tags are not inspected. Otherwise local
// references are replaced first, then registry references in the namespace
// are re-tagged with Version, and Changed reports whether the text differs.
func (r *Rewriter) Apply(content string, dryRun bool) Result {
	localRefs := len(LocalFeaturePattern.FindAllStringIndex(content, -1))
	if dryRun {
		return Result{Changed: localRefs > 0, Updated: content, LocalRefs: localRefs}
	}

	updated := replaceSubmatch(LocalFeaturePattern, content, func(_, featureID string) string {
		return registry.FeatureRef(r.Namespace, featureID, r.Version)
	})

	pattern := r.registryPattern
	if pattern == nil {
		pattern = RegistryFeaturePattern(r.Namespace)
	}
	updated = replaceSubmatch(pattern, updated, func(match, featureID string) string {
		replacement := registry.FeatureRef(r.Namespace, featureID, r.Version)
		if match == replacement {
			return match
		}
		return replacement
	})

	return Result{Changed: updated != content, Updated: updated, LocalRefs: localRefs}
}

// replaceSubmatch replaces every match of re with repl(match, submatch1).
// The replacement is inserted literally; "$" has no special meaning.
func replaceSubmatch(re *regexp.Regexp, s string, repl func(match, group string) string) string {
	indexes := re.FindAllStringSubmatchIndex(s, -1)
	if len(indexes) == 0 {
		return s
	}

	out := make([]byte, 0, len(s))
	last := 0
	for _, loc := range indexes {
		out = append(out, s[last:loc[0]]...)
		out = append(out, repl(s[loc[0]:loc[1]], s[loc[2]:loc[3]])...)
		last = loc[1]
	}
	out = append(out, s[last:]...)
	return string(out)
}
