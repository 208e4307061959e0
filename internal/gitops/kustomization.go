// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package gitops

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AddResource appends name to the resources: list of the kustomization file
// at path. Returns false without touching the file when the entry is already
// present. Editing is line-oriented so that unrelated text in the file is
// preserved byte-for-byte.
func AddResource(path, name string) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read kustomization: %w", err)
	}

	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	for _, line := range lines {
		if isResourceEntry(line, name) {
			return false, nil
		}
	}

	inserted := false
	for i, line := range lines {
		if strings.TrimSpace(line) != "resources:" {
			continue
		}
		// Walk past the existing entries and insert after the last one.
		j := i + 1
		for j < len(lines) && strings.HasPrefix(lines[j], "  - ") {
			j++
		}
		entry := "  - " + name
		lines = append(lines[:j], append([]string{entry}, lines[j:]...)...)
		inserted = true
		break
	}

	if !inserted {
		return false, fmt.Errorf("no resources: section in %s", path)
	}

	if err := writeLines(path, lines); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveResource drops the entry for name from the resources: list of the
// kustomization file at path. Returns false when no entry was present.
// Matching is exact on the entry value ("name" or "./name"), never substring,
// so customer2 does not swallow customer22.
func RemoveResource(path, name string) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read kustomization: %w", err)
	}

	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	kept := make([]string, 0, len(lines))
	removed := false
	for _, line := range lines {
		if isResourceEntry(line, name) {
			removed = true
			continue
		}
		kept = append(kept, line)
	}

	if !removed {
		return false, nil
	}

	if err := writeLines(path, kept); err != nil {
		return false, err
	}
	return true, nil
}

// ListResources parses the kustomization file at path and returns its
// resources entries with any leading ./ stripped.
func ListResources(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read kustomization: %w", err)
	}

	var doc struct {
		Resources []string `yaml:"resources"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse kustomization %s: %w", path, err)
	}

	result := make([]string, 0, len(doc.Resources))
	for _, r := range doc.Resources {
		result = append(result, strings.TrimPrefix(r, "./"))
	}
	return result, nil
}

// isResourceEntry reports whether line is a list entry for exactly name,
// with or without a ./ prefix.
func isResourceEntry(line, name string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "- "+name || trimmed == "- ./"+name
}

// writeLines writes the lines back with a trailing newline.
func writeLines(path string, lines []string) error {
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write kustomization: %w", err)
	}
	return nil
}
