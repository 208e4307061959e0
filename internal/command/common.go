// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/mercuryctl/mercuryctl/internal/attrs"
	"github.com/mercuryctl/mercuryctl/internal/customer"
	"github.com/mercuryctl/mercuryctl/internal/meta"
)

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList) {
	//nolint:errcheck
	{
		for _, d := range defaults {
			al.Set(d)
		}
		if extras := cmd.String("attrs"); extras != "" {
			al.Set(extras)
		}
		al.SetGlobalTransformSpec()
	}
	return
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// RequireCustomer resolves and validates the --customer flag, which may have
// been filled from the env or config file sources.
func RequireCustomer(cmd *cli.Command) (customer.Name, error) {
	value := cmd.String("customer")
	if value == "" {
		return "", fmt.Errorf("--customer is required")
	}
	return customer.Parse(value)
}

// ResolveTfFile returns the Terraform file path for the command, resolving a
// relative --tf-file against the RootDir.
func ResolveTfFile(cmd *cli.Command, m meta.Meta) string {
	path := cmd.String("tf-file")
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.RootDir, path)
}

// ConfirmRemoval prompts for a y/N answer on the terminal. A non-interactive
// stdin always answers no so CI runs must pass --yes explicitly.
func ConfirmRemoval(prompt string) bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false
	}

	fmt.Fprintf(os.Stderr, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr mercuryctl <subcmd>` and returns true so the caller can exit
// early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "mercuryctl", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}
