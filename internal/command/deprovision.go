// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/mercuryctl/mercuryctl/internal/config"
	"github.com/mercuryctl/mercuryctl/internal/gitops"
	"github.com/mercuryctl/mercuryctl/internal/meta"
	"github.com/mercuryctl/mercuryctl/internal/output"
)

// deprovisionCommandAction is the action handler for the "deprovision"
// subcommand. It removes the customer's base and overlay directories and drops
// the customer from the overlay kustomization.
func deprovisionCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "deprovision") {
		return nil
	}

	config.Config.Namespace = "deprovision"

	name, err := RequireCustomer(cmd)
	if err != nil {
		return err
	}

	if !cmd.Bool("yes") {
		if !ConfirmRemoval(fmt.Sprintf("Remove all manifests for %s", name)) {
			return fmt.Errorf("aborted; pass --yes to skip the prompt")
		}
	}

	layout := gitops.NewLayout(m.RootDir, m.Overlay)

	result, err := gitops.Deprovision(layout, name)
	if err != nil {
		return err
	}

	rep := output.NewReporter(os.Stdout, cmd.Bool("color"))
	for _, dir := range result.RemovedDirs {
		rep.Okf("removed %s", dir)
	}
	for _, dir := range result.MissingDirs {
		rep.Warnf("already absent: %s", dir)
	}
	if result.DelistedFromOverlay {
		rep.Okf("removed %s from %s overlay kustomization", name, layout.Overlay)
	} else {
		rep.Warnf("%s not listed in %s overlay kustomization", name, layout.Overlay)
	}
	rep.Rule()
	rep.Okf("deprovisioned %s", name)

	return nil
}

// deprovisionCommandBuilder constructs the "deprovision" subcommand.
func deprovisionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "deprovision",
		Usage:     "deprovision a customer environment",
		UsageText: "mercuryctl deprovision [RootDir[::overlay]] [options]",
		Metadata:  map[string]any{"meta": meta},
		Flags: []cli.Flag{
			NewCustomerFlag("deprovision", meta.Config.Source),
			colorFlag,
			tldrFlag,
			yesFlag,
		},
		Action: deprovisionCommandAction,
	}
}
