// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/mercuryctl/mercuryctl/internal/config"
)

// RootDirSpec holds the resolved GitOps repository root and optional overlay
// override parsed from the RootDir positional argument.
type RootDirSpec struct {
	RootDir string
	Overlay string
}

// Meta contains runtime metadata shared by commands. It carries CLI arguments,
// loaded configuration, context, the resolved root directory specification, and
// the starting working directory.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	RootDirSpec
	StartingDir string
}
