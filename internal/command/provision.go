// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/mercuryctl/mercuryctl/internal/config"
	"github.com/mercuryctl/mercuryctl/internal/customer"
	"github.com/mercuryctl/mercuryctl/internal/gitops"
	"github.com/mercuryctl/mercuryctl/internal/meta"
	"github.com/mercuryctl/mercuryctl/internal/output"
)

// provisionCommandAction is the action handler for the "provision" subcommand.
// It renders the per-customer manifests into apps/base and the overlay, and
// registers the customer in the overlay kustomization.
func provisionCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "provision") {
		return nil
	}

	config.Config.Namespace = "provision"

	name, err := RequireCustomer(cmd)
	if err != nil {
		return err
	}

	clientID := cmd.String("aks-identity-client-id")
	if clientID == "" {
		return fmt.Errorf("--aks-identity-client-id is required")
	}
	tenantID := cmd.String("azure-tenant-id")
	if tenantID == "" {
		return fmt.Errorf("--azure-tenant-id is required")
	}

	renderer := gitops.NewRenderer()
	if dir := cmd.String("templates"); dir != "" {
		if renderer, err = gitops.NewDirRenderer(dir); err != nil {
			return err
		}
	}

	layout := gitops.NewLayout(m.RootDir, m.Overlay)
	data := customer.NewData(name, clientID, tenantID)

	result, err := gitops.Provision(layout, renderer, data)
	if err != nil {
		return err
	}

	rep := output.NewReporter(os.Stdout, cmd.Bool("color"))
	for _, path := range result.Written {
		rep.Okf("wrote %s", path)
	}
	if result.ListedInOverlay {
		rep.Okf("added %s to %s overlay kustomization", name, layout.Overlay)
	} else {
		rep.Warnf("%s already listed in %s overlay kustomization", name, layout.Overlay)
	}
	rep.Rule()
	rep.Okf("provisioned %s (%d files, %s)",
		name, len(result.Written), humanize.Bytes(uint64(result.BytesWritten)))

	return nil
}

// provisionCommandBuilder constructs the "provision" subcommand.
func provisionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "provision",
		Usage:     "provision a customer environment",
		UsageText: "mercuryctl provision [RootDir[::overlay]] [options]",
		Metadata:  map[string]any{"meta": meta},
		Flags: []cli.Flag{
			NewCustomerFlag("provision", meta.Config.Source),
			NewClientIDFlag("provision", meta.Config.Source),
			NewTenantFlag("provision", meta.Config.Source),
			NewTemplatesFlag("provision", meta.Config.Source),
			colorFlag,
			tldrFlag,
		},
		Action: provisionCommandAction,
	}
}
