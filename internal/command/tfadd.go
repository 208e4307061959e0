// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/mercuryctl/mercuryctl/internal/config"
	"github.com/mercuryctl/mercuryctl/internal/meta"
	"github.com/mercuryctl/mercuryctl/internal/output"
	"github.com/mercuryctl/mercuryctl/internal/terraform"
)

// tfaddCommandAction is the action handler for the "tfadd" subcommand. It
// inserts the customer's Key Vault resource section into the Terraform file.
func tfaddCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "tfadd") {
		return nil
	}

	config.Config.Namespace = "tfadd"

	name, err := RequireCustomer(cmd)
	if err != nil {
		return err
	}

	tfFile := ResolveTfFile(cmd, m)

	added, err := terraform.Add(tfFile, name)
	if err != nil {
		return err
	}

	rep := output.NewReporter(os.Stdout, cmd.Bool("color"))
	if !added {
		rep.Warnf("%s already present in %s", name, tfFile)
		return nil
	}
	for _, addr := range terraform.Resources(name) {
		rep.Okf("added %s", addr)
	}
	rep.Rule()
	rep.Okf("updated %s", tfFile)

	return nil
}

// tfaddCommandBuilder constructs the "tfadd" subcommand.
func tfaddCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "tfadd",
		Usage:     "add customer Key Vault resources to Terraform",
		UsageText: "mercuryctl tfadd [RootDir[::overlay]] [options]",
		Metadata:  map[string]any{"meta": meta},
		Flags: []cli.Flag{
			NewCustomerFlag("tfadd", meta.Config.Source),
			NewTfFileFlag("tfadd", meta.Config.Source),
			colorFlag,
			tldrFlag,
		},
		Action: tfaddCommandAction,
	}
}
