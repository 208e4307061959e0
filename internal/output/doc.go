// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output renders command results as text tables, JSON or YAML, and
// provides the styled progress lines printed by the mutating commands.
package output
