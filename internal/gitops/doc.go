// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package gitops models the mercury-gitops repository layout and performs the
// file-level provisioning operations: rendering per-customer manifests from
// templates and maintaining the overlay kustomization resource list.
package gitops
