// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package gitops

import (
	"fmt"
	"os"

	"github.com/mercuryctl/mercuryctl/internal/customer"
	"github.com/mercuryctl/mercuryctl/internal/log"
)

// DeprovisionResult reports what Deprovision touched.
type DeprovisionResult struct {
	// RemovedDirs holds repo-relative paths of directories that were deleted.
	RemovedDirs []string
	// MissingDirs holds repo-relative paths that were expected but absent.
	MissingDirs []string
	// DelistedFromOverlay is true when the customer's entry was dropped from
	// the overlay kustomization.
	DelistedFromOverlay bool
}

// Deprovision removes the customer's base and overlay directories and drops
// the customer from the overlay kustomization resource list. Directories that
// are already gone are reported, not treated as errors, so the operation is
// safe to re-run.
func Deprovision(l Layout, name customer.Name) (DeprovisionResult, error) {
	var result DeprovisionResult

	for _, dir := range []string{l.BaseDir(name), l.OverlayDir(name)} {
		if _, err := os.Stat(dir); err != nil {
			log.Debugf("directory already absent: %s", dir)
			result.MissingDirs = append(result.MissingDirs, l.Rel(dir))
			continue
		}
		if err := os.RemoveAll(dir); err != nil {
			return result, fmt.Errorf("failed to remove %s: %w", dir, err)
		}
		result.RemovedDirs = append(result.RemovedDirs, l.Rel(dir))
	}

	kust := l.OverlayKustomization()
	if _, err := os.Stat(kust); err != nil {
		log.Warnf("overlay kustomization not found: %s", kust)
		return result, nil
	}

	removed, err := RemoveResource(kust, name.String())
	if err != nil {
		return result, err
	}
	result.DelistedFromOverlay = removed

	return result, nil
}
