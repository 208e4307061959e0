// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/mercuryctl/mercuryctl/internal/config"
	"github.com/mercuryctl/mercuryctl/internal/customer"
	"github.com/mercuryctl/mercuryctl/internal/gitops"
	"github.com/mercuryctl/mercuryctl/internal/meta"
	"github.com/mercuryctl/mercuryctl/internal/output"
	"github.com/mercuryctl/mercuryctl/internal/terraform"
)

// CustomerStatus is one row of the status dataset: where a customer is wired
// up (base manifests, overlay listing, Terraform section) and when its base
// manifests last changed.
type CustomerStatus struct {
	Name      string `json:"name"`
	Base      bool   `json:"base"`
	Overlay   bool   `json:"overlay"`
	Terraform bool   `json:"terraform"`
	Modified  string `json:"modified"`
}

// statusDefaultAttrs specifies the default attributes displayed for customers
// in the "status" command output.
var statusDefaultAttrs = []string{"name", "base", "overlay", "terraform", "modified::T"}

// statusCommandAction is the action handler for the "status" subcommand. It
// cross-references the base manifests, the overlay kustomization, and the
// Terraform file, and displays one row per customer seen in any of them.
func statusCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "status") {
		return nil
	}

	header := "\nCustomer environment status"
	if cmd.String("filter") != "" {
		header += " (filtered)"
	}
	header += ":"
	cmd.Metadata["header"] = header

	config.Config.Namespace = "status"

	layout := gitops.NewLayout(m.RootDir, m.Overlay)

	statuses, err := collectStatuses(layout, ResolveTfFile(cmd, m))
	if err != nil {
		return err
	}

	jsonData, err := json.Marshal(statuses)
	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}

	al := BuildAttrs(cmd, statusDefaultAttrs...)

	var raw bytes.Buffer
	raw.Write(jsonData)

	output.SliceDiceSpit(raw, al, cmd, os.Stdout)

	return nil
}

// collectStatuses builds the per-customer dataset from the three places a
// customer can appear. Customers present in only some of them still get a
// row; that skew is exactly what status exists to surface.
func collectStatuses(layout gitops.Layout, tfFile string) ([]CustomerStatus, error) {
	seen := map[string]*CustomerStatus{}

	upsert := func(name string) *CustomerStatus {
		if s, ok := seen[name]; ok {
			return s
		}
		s := &CustomerStatus{Name: name}
		seen[name] = s
		return s
	}

	baseRoot := filepath.Join(layout.RepoRoot, "apps", "base")
	entries, err := os.ReadDir(baseRoot)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", baseRoot, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name, err := customer.Parse(entry.Name())
		if err != nil {
			log.Debugf("skipping non-customer dir: %s", entry.Name())
			continue
		}
		s := upsert(name.String())
		s.Base = true
		if info, err := entry.Info(); err == nil {
			s.Modified = info.ModTime().UTC().Format(time.RFC3339)
		}
	}

	kust := layout.OverlayKustomization()
	if _, err := os.Stat(kust); err == nil {
		resources, err := gitops.ListResources(kust)
		if err != nil {
			return nil, err
		}
		for _, res := range resources {
			name, err := customer.Parse(res)
			if err != nil {
				continue
			}
			upsert(name.String()).Overlay = true
		}
	}

	if _, err := os.Stat(tfFile); err == nil {
		names, err := terraform.ListCustomers(tfFile)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			upsert(name).Terraform = true
		}
	}

	statuses := make([]CustomerStatus, 0, len(seen))
	for _, s := range seen {
		statuses = append(statuses, *s)
	}
	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Name < statuses[j].Name
	})

	return statuses, nil
}

// statusCommandBuilder constructs the "status" subcommand.
func statusCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "status",
		Usage:     "customer environment status",
		UsageText: "mercuryctl status [RootDir[::overlay]] [options]",
		Metadata:  map[string]any{"meta": meta},
		Flags: append(NewGlobalFlags("status"),
			NewTfFileFlag("status", meta.Config.Source),
			tldrFlag,
		),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: statusCommandAction,
	}
}
