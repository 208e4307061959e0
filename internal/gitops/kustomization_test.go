// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package gitops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const stagingKustomization = `apiVersion: kustomize.config.k8s.io/v1beta1
kind: Kustomization
resources:
  - customer1
  - customer22
`

func writeKustomization(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kustomization.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	raw, err := os.ReadFile(path)
	assert.NoError(t, err)
	return string(raw)
}

func TestAddResource(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		resource  string
		wantAdded bool
		wantErr   bool
		check     func(t *testing.T, content string)
	}{
		{
			name:      "appends after last entry",
			content:   stagingKustomization,
			resource:  "customer3",
			wantAdded: true,
			check: func(t *testing.T, content string) {
				assert.Equal(t, `apiVersion: kustomize.config.k8s.io/v1beta1
kind: Kustomization
resources:
  - customer1
  - customer22
  - customer3
`, content)
			},
		},
		{
			name:      "already present is a no-op",
			content:   stagingKustomization,
			resource:  "customer1",
			wantAdded: false,
			check: func(t *testing.T, content string) {
				assert.Equal(t, stagingKustomization, content)
			},
		},
		{
			name: "dot-slash entries count as present",
			content: `resources:
  - ./customer1
`,
			resource:  "customer1",
			wantAdded: false,
		},
		{
			name: "empty resources list",
			content: `apiVersion: kustomize.config.k8s.io/v1beta1
kind: Kustomization
resources:
`,
			resource:  "customer2",
			wantAdded: true,
			check: func(t *testing.T, content string) {
				assert.Contains(t, content, "resources:\n  - customer2\n")
			},
		},
		{
			name:     "no resources section",
			content:  "apiVersion: kustomize.config.k8s.io/v1beta1\nkind: Kustomization\n",
			resource: "customer2",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeKustomization(t, tt.content)

			added, err := AddResource(path, tt.resource)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantAdded, added)
			if tt.check != nil {
				tt.check(t, readFile(t, path))
			}
		})
	}
}

func TestRemoveResource(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		resource    string
		wantRemoved bool
		check       func(t *testing.T, content string)
	}{
		{
			name:        "removes the entry",
			content:     stagingKustomization,
			resource:    "customer1",
			wantRemoved: true,
			check: func(t *testing.T, content string) {
				assert.NotContains(t, content, "customer1")
				assert.Contains(t, content, "customer22")
			},
		},
		{
			name:        "exact match only, no substring swallow",
			content:     stagingKustomization,
			resource:    "customer2",
			wantRemoved: false,
			check: func(t *testing.T, content string) {
				assert.Contains(t, content, "customer22")
			},
		},
		{
			name: "dot-slash entry removed",
			content: `resources:
  - ./customer1
  - customer22
`,
			resource:    "customer1",
			wantRemoved: true,
			check: func(t *testing.T, content string) {
				assert.NotContains(t, content, "./customer1")
			},
		},
		{
			name:        "absent entry is a no-op",
			content:     stagingKustomization,
			resource:    "customer9",
			wantRemoved: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeKustomization(t, tt.content)

			removed, err := RemoveResource(path, tt.resource)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantRemoved, removed)
			if tt.check != nil {
				tt.check(t, readFile(t, path))
			}
		})
	}
}

func TestListResources(t *testing.T) {
	path := writeKustomization(t, `resources:
  - ./customer1
  - customer22
`)

	resources, err := ListResources(path)
	assert.NoError(t, err)
	assert.Equal(t, []string{"customer1", "customer22"}, resources)
}

func TestAddRemoveRoundTrip(t *testing.T) {
	path := writeKustomization(t, stagingKustomization)

	added, err := AddResource(path, "customer3")
	assert.NoError(t, err)
	assert.True(t, added)

	removed, err := RemoveResource(path, "customer3")
	assert.NoError(t, err)
	assert.True(t, removed)

	assert.Equal(t, stagingKustomization, readFile(t, path))
}
