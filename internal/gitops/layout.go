// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package gitops

import (
	"path/filepath"
	"strings"

	"github.com/mercuryctl/mercuryctl/internal/customer"
)

// DefaultOverlay is the overlay used when the RootDir spec carries no
// ::overlay override.
const DefaultOverlay = "staging"

// Layout resolves the well-known paths of a mercury-gitops repository.
// Customer manifests live under apps/base/<customer>/ with a matching
// per-customer kustomization under apps/<overlay>/<customer>/.
type Layout struct {
	RepoRoot string
	Overlay  string
}

// NewLayout returns a Layout rooted at repoRoot. An empty overlay selects
// DefaultOverlay.
func NewLayout(repoRoot, overlay string) Layout {
	if overlay == "" {
		overlay = DefaultOverlay
	}
	return Layout{RepoRoot: repoRoot, Overlay: overlay}
}

// BaseDir returns the apps/base directory for a customer.
func (l Layout) BaseDir(n customer.Name) string {
	return filepath.Join(l.RepoRoot, "apps", "base", n.String())
}

// OverlayDir returns the apps/<overlay> directory for a customer.
func (l Layout) OverlayDir(n customer.Name) string {
	return filepath.Join(l.RepoRoot, "apps", l.Overlay, n.String())
}

// OverlayKustomization returns the path of the overlay-wide
// kustomization.yaml holding the customer resource list.
func (l Layout) OverlayKustomization() string {
	return filepath.Join(l.RepoRoot, "apps", l.Overlay, "kustomization.yaml")
}

// Rel returns path relative to the repository root for display. Falls back
// to the input when the path is outside the repo.
func (l Layout) Rel(path string) string {
	rel, err := filepath.Rel(l.RepoRoot, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
