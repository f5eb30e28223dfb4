package rewrite

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const ns = "airnub-labs/devcontainers"

func TestApplyLocalReferences(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "single parent segment",
			content: `{"features": {"file:../features/supabase-cli": {}}}`,
			want:    `{"features": {"ghcr.io/airnub-labs/devcontainers/features/supabase-cli:1.2.0": {}}}`,
		},
		{
			name:    "three parent segments",
			content: `"file:../../../features/node_pnpm": {"version": "20"}`,
			want:    `"ghcr.io/airnub-labs/devcontainers/features/node_pnpm:1.2.0": {"version": "20"}`,
		},
		{
			name:    "repeated slashes",
			content: `"file:..//..//features/agent-tools"`,
			want:    `"ghcr.io/airnub-labs/devcontainers/features/agent-tools:1.2.0"`,
		},
		{
			name:    "several references",
			content: "\"file:../features/a\"\n\"file:../../features/b\"\n",
			want:    "\"ghcr.io/airnub-labs/devcontainers/features/a:1.2.0\"\n\"ghcr.io/airnub-labs/devcontainers/features/b:1.2.0\"\n",
		},
		{
			name:    "dotted suffix is absorbed into the tag",
			content: `"file:../features/docker.in.docker"`,
			want:    `"ghcr.io/airnub-labs/devcontainers/features/docker:1.2.0"`,
		},
		{
			name:    "no parent segment is not local",
			content: `"file:features/x"`,
			want:    `"file:features/x"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := New(ns, "1.2.0").Apply(tt.content, false)
			assert.Equal(t, tt.want, result.Updated)
			assert.Equal(t, tt.want != tt.content, result.Changed)
			assert.False(t, LocalFeaturePattern.MatchString(result.Updated))
		})
	}
}

func TestApplyAnyDepth(t *testing.T) {
	for depth := 1; depth <= 6; depth++ {
		t.Run(fmt.Sprintf("depth %d", depth), func(t *testing.T) {
			content := fmt.Sprintf(`"file:%sfeatures/F"`, strings.Repeat("../", depth))
			result := New(ns, "2.0.0").Apply(content, false)
			assert.Equal(t, `"ghcr.io/airnub-labs/devcontainers/features/F:2.0.0"`, result.Updated)
			assert.Equal(t, 1, result.LocalRefs)
		})
	}
}

func TestApplyRegistryTags(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		want        string
		wantChanged bool
	}{
		{
			name:        "stale tag is bumped",
			content:     `"ghcr.io/airnub-labs/devcontainers/features/supabase-cli:0.9.1": {}`,
			want:        `"ghcr.io/airnub-labs/devcontainers/features/supabase-cli:1.2.0": {}`,
			wantChanged: true,
		},
		{
			name:        "tag already current",
			content:     `"ghcr.io/airnub-labs/devcontainers/features/supabase-cli:1.2.0": {}`,
			want:        `"ghcr.io/airnub-labs/devcontainers/features/supabase-cli:1.2.0": {}`,
			wantChanged: false,
		},
		{
			name:        "other namespace untouched",
			content:     `"ghcr.io/devcontainers/features/node:1": {}`,
			want:        `"ghcr.io/devcontainers/features/node:1": {}`,
			wantChanged: false,
		},
		{
			name:        "prerelease tag",
			content:     `"ghcr.io/airnub-labs/devcontainers/features/x:1.0.0-rc_1": {}`,
			want:        `"ghcr.io/airnub-labs/devcontainers/features/x:1.2.0": {}`,
			wantChanged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := New(ns, "1.2.0").Apply(tt.content, false)
			assert.Equal(t, tt.want, result.Updated)
			assert.Equal(t, tt.wantChanged, result.Changed)
		})
	}
}

func TestApplyNamespaceIsLiteral(t *testing.T) {
	rw := New("acme.io/x+y", "3")

	content := `"ghcr.io/acmeXio/x+y/features/a:1" "ghcr.io/acme.io/x+y/features/b:1"`
	result := rw.Apply(content, false)

	assert.Equal(t, `"ghcr.io/acmeXio/x+y/features/a:1" "ghcr.io/acme.io/x+y/features/b:3"`, result.Updated)
}

func TestApplyDollarInReplacement(t *testing.T) {
	result := New("ns$1", "2").Apply(`"file:../features/a"`, false)
	assert.Equal(t, `"ghcr.io/ns$1/features/a:2"`, result.Updated)
}

func TestApplyDryRun(t *testing.T) {
	rw := New("", "")

	t.Run("local reference reported", func(t *testing.T) {
		content := `"file:../features/a" "file:../../features/b"`
		result := rw.Apply(content, true)
		assert.True(t, result.Changed)
		assert.Equal(t, content, result.Updated)
		assert.Equal(t, 2, result.LocalRefs)
	})

	t.Run("stale registry tag ignored", func(t *testing.T) {
		content := `"ghcr.io/airnub-labs/devcontainers/features/a:0.0.1"`
		result := New(ns, "1.2.0").Apply(content, true)
		assert.False(t, result.Changed)
		assert.Equal(t, content, result.Updated)
	})
}

func TestApplyIdempotent(t *testing.T) {
	content := `{
  "features": {
    "file:../../features/supabase-cli": {},
    "ghcr.io/airnub-labs/devcontainers/features/agent-tools:0.1.0": {}
  }
}
`
	rw := New(ns, "1.2.0")

	first := rw.Apply(content, false)
	assert.True(t, first.Changed)

	second := rw.Apply(first.Updated, false)
	assert.False(t, second.Changed)
	assert.Equal(t, first.Updated, second.Updated)
}

func TestZeroValueRewriter(t *testing.T) {
	rw := &Rewriter{Namespace: ns, Version: "1.2.0"}
	result := rw.Apply(`"ghcr.io/airnub-labs/devcontainers/features/a:0.1.0"`, false)
	assert.Equal(t, `"ghcr.io/airnub-labs/devcontainers/features/a:1.2.0"`, result.Updated)
}
