// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package terraform edits the per-customer Azure Key Vault resource sections
// of the repository's Terraform configuration. Sections are generated with
// hclwrite and removed by a text match spanning the section comment header
// through its final depends_on closing brace; untouched regions of the file
// are preserved byte-for-byte.
package terraform
