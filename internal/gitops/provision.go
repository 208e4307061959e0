// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package gitops

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/mercuryctl/mercuryctl/internal/customer"
	"github.com/mercuryctl/mercuryctl/internal/log"
)

// ProvisionResult reports what Provision touched.
type ProvisionResult struct {
	// Written holds repo-relative paths of every file created or replaced.
	Written []string
	// BytesWritten is the total size of the rendered manifests.
	BytesWritten int64
	// ListedInOverlay is true when the customer was appended to the overlay
	// kustomization, false when it was already listed.
	ListedInOverlay bool
}

// Provision renders the per-customer manifests into apps/base/<customer>/ and
// apps/<overlay>/<customer>/, then registers the customer in the overlay
// kustomization. Re-running for an existing customer rewrites the manifests
// and leaves the overlay list untouched.
func Provision(l Layout, r *Renderer, data customer.Data) (ProvisionResult, error) {
	var result ProvisionResult

	name := customer.Name(data.CustomerName)
	baseDir := l.BaseDir(name)
	overlayDir := l.OverlayDir(name)

	log.Debugf("provisioning: customer=%s base=%s overlay=%s", name, baseDir, overlayDir)

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return result, fmt.Errorf("failed to create base directory: %w", err)
	}

	templates, err := r.BaseTemplates()
	if err != nil {
		return result, err
	}

	for _, tmpl := range templates {
		rendered, err := r.Render(path.Join("base", tmpl), data)
		if err != nil {
			return result, err
		}

		out := filepath.Join(baseDir, tmpl)
		if err := os.WriteFile(out, rendered, 0o644); err != nil {
			return result, fmt.Errorf("failed to write %s: %w", out, err)
		}
		result.Written = append(result.Written, l.Rel(out))
		result.BytesWritten += int64(len(rendered))
	}

	if err := os.MkdirAll(overlayDir, 0o755); err != nil {
		return result, fmt.Errorf("failed to create overlay directory: %w", err)
	}

	rendered, err := r.Render("staging/kustomization.yaml", data)
	if err != nil {
		return result, err
	}
	out := filepath.Join(overlayDir, "kustomization.yaml")
	if err := os.WriteFile(out, rendered, 0o644); err != nil {
		return result, fmt.Errorf("failed to write %s: %w", out, err)
	}
	result.Written = append(result.Written, l.Rel(out))
	result.BytesWritten += int64(len(rendered))

	// Register the customer in the overlay-wide resource list. A missing
	// kustomization is tolerated; some repos bootstrap it later.
	kust := l.OverlayKustomization()
	if _, err := os.Stat(kust); err != nil {
		log.Warnf("overlay kustomization not found: %s", kust)
		return result, nil
	}

	added, err := AddResource(kust, name.String())
	if err != nil {
		return result, err
	}
	result.ListedInOverlay = added

	return result, nil
}
