// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package gitops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mercuryctl/mercuryctl/internal/customer"
)

var testData = customer.Data{
	CustomerName:        "customer2",
	AKSIdentityClientID: "11111111-2222-3333-4444-555555555555",
	AzureTenantID:       "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee",
}

func TestBaseTemplates(t *testing.T) {
	r := NewRenderer()

	names, err := r.BaseTemplates()
	assert.NoError(t, err)
	assert.Equal(t, []string{
		"deployment.yaml",
		"kustomization.yaml",
		"namespace.yaml",
		"secret-provider.yaml",
		"service.yaml",
	}, names)
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		contains []string
	}{
		{
			name:     "namespace",
			template: "base/namespace.yaml",
			contains: []string{"name: customer2", "mercury.io/customer: customer2"},
		},
		{
			name:     "secret provider carries identity and tenant",
			template: "base/secret-provider.yaml",
			contains: []string{
				"userAssignedIdentityID: 11111111-2222-3333-4444-555555555555",
				"tenantId: aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee",
				"keyvaultName: mercury-vault",
			},
		},
		{
			name:     "deployment wires db credentials secret",
			template: "base/deployment.yaml",
			contains: []string{"customer2-db-credentials", "namespace: customer2"},
		},
		{
			name:     "staging kustomization points at base",
			template: "staging/kustomization.yaml",
			contains: []string{"../../base/customer2"},
		},
	}

	r := NewRenderer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Render(tt.template, testData)
			assert.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, string(out), want)
			}
		})
	}
}

func TestRender_UnknownTemplate(t *testing.T) {
	r := NewRenderer()

	_, err := r.Render("base/nope.yaml", testData)
	assert.Error(t, err)
}

func TestNewDirRenderer(t *testing.T) {
	dir := t.TempDir()

	// Missing base/ and staging/ must be rejected.
	_, err := NewDirRenderer(dir)
	assert.Error(t, err)

	assert.NoError(t, os.MkdirAll(filepath.Join(dir, "base"), 0o755))
	assert.NoError(t, os.MkdirAll(filepath.Join(dir, "staging"), 0o755))

	manifest := "apiVersion: v1\nkind: Namespace\nmetadata:\n  name: {{ .CustomerName }}\n"
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "base", "namespace.yaml"), []byte(manifest), 0o644))

	r, err := NewDirRenderer(dir)
	assert.NoError(t, err)

	names, err := r.BaseTemplates()
	assert.NoError(t, err)
	assert.Equal(t, []string{"namespace.yaml"}, names)

	out, err := r.Render("base/namespace.yaml", testData)
	assert.NoError(t, err)
	assert.Contains(t, string(out), "name: customer2")
}

func TestRender_MissingKeyFails(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.MkdirAll(filepath.Join(dir, "base"), 0o755))
	assert.NoError(t, os.MkdirAll(filepath.Join(dir, "staging"), 0o755))

	// Placeholders that aren't customer data fields must fail loudly instead of
	// rendering "<no value>" into a manifest.
	manifest := "metadata:\n  name: {{ .Bogus }}\n"
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "base", "bad.yaml"), []byte(manifest), 0o644))

	r, err := NewDirRenderer(dir)
	assert.NoError(t, err)

	_, err = r.Render("base/bad.yaml", testData)
	assert.Error(t, err)
}
