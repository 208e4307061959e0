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
	"github.com/mercuryctl/mercuryctl/internal/meta"
	"github.com/mercuryctl/mercuryctl/internal/output"
	"github.com/mercuryctl/mercuryctl/internal/terraform"
)

// tfrmCommandAction is the action handler for the "tfrm" subcommand. It
// removes the customer's Key Vault resource section from the Terraform file.
func tfrmCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "tfrm") {
		return nil
	}

	config.Config.Namespace = "tfrm"

	name, err := RequireCustomer(cmd)
	if err != nil {
		return err
	}

	tfFile := ResolveTfFile(cmd, m)

	if !cmd.Bool("yes") {
		if !ConfirmRemoval(fmt.Sprintf("Remove Key Vault resources for %s from %s", name, tfFile)) {
			return fmt.Errorf("aborted; pass --yes to skip the prompt")
		}
	}

	removed, err := terraform.Remove(tfFile, name)
	if err != nil {
		return err
	}

	rep := output.NewReporter(os.Stdout, cmd.Bool("color"))
	if !removed {
		rep.Warnf("%s not present in %s", name, tfFile)
		return nil
	}
	for _, addr := range terraform.Resources(name) {
		rep.Okf("removed %s", addr)
	}
	rep.Rule()
	rep.Okf("updated %s", tfFile)

	return nil
}

// tfrmCommandBuilder constructs the "tfrm" subcommand.
func tfrmCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "tfrm",
		Usage:     "remove customer Key Vault resources from Terraform",
		UsageText: "mercuryctl tfrm [RootDir[::overlay]] [options]",
		Metadata:  map[string]any{"meta": meta},
		Flags: []cli.Flag{
			NewCustomerFlag("tfrm", meta.Config.Source),
			NewTfFileFlag("tfrm", meta.Config.Source),
			colorFlag,
			tldrFlag,
			yesFlag,
		},
		Action: tfrmCommandAction,
	}
}
