// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package gitops

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/mercuryctl/mercuryctl/internal/customer"
)

//go:embed templates
var embeddedTemplates embed.FS

// Renderer renders manifest templates for a customer. Templates ship embedded
// in the binary; an on-disk directory with the same base/ and staging/ shape
// may be substituted via NewDirRenderer.
type Renderer struct {
	fsys fs.FS
}

// NewRenderer returns a Renderer over the embedded template set.
func NewRenderer() *Renderer {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		// The embedded tree always contains "templates"; a failure here is a
		// build defect.
		panic(err)
	}
	return &Renderer{fsys: sub}
}

// NewDirRenderer returns a Renderer over an on-disk template directory. The
// directory must contain base/ and staging/ subdirectories.
func NewDirRenderer(dir string) (*Renderer, error) {
	for _, sub := range []string{"base", "staging"} {
		info, err := os.Stat(path.Join(dir, sub))
		if err != nil {
			return nil, fmt.Errorf("template directory missing %s/: %w", sub, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("template directory entry %s is not a directory", sub)
		}
	}
	return &Renderer{fsys: os.DirFS(dir)}, nil
}

// BaseTemplates returns the sorted names of the base manifest templates
// (base/*.yaml).
func (r *Renderer) BaseTemplates() ([]string, error) {
	entries, err := fs.ReadDir(r.fsys, "base")
	if err != nil {
		return nil, fmt.Errorf("failed to read base templates: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !isManifest(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	if len(names) == 0 {
		return nil, fmt.Errorf("no base manifest templates found")
	}
	return names, nil
}

// Render executes the named template (e.g. "base/deployment.yaml") with the
// customer data and verifies the result is well-formed YAML.
func (r *Renderer) Render(name string, data customer.Data) ([]byte, error) {
	content, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", name, err)
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	// Rendered manifests must at least be parseable YAML. Semantic Kubernetes
	// validation is out of scope.
	var probe any
	if err := yaml.Unmarshal(buf.Bytes(), &probe); err != nil {
		return nil, fmt.Errorf("template %s rendered invalid YAML: %w", name, err)
	}

	return buf.Bytes(), nil
}

// isManifest checks if a filename is a YAML manifest template.
func isManifest(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
