// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config loads the mercuryctl YAML configuration file and exposes
// typed getters over dotted key paths.
package config
