// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/mercuryctl/mercuryctl/internal/terraform"
)

var (
	colorFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:    "color",
		Aliases: []string{"c"},
		Usage:   "enable colored text output",
		Value:   false,
	}

	tldrFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}

	yesFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "yes",
		Aliases:     []string{"y"},
		Usage:       "skip the confirmation prompt",
		HideDefault: true,
	}
)

func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		colorFlag,
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}

	return
}

// NewCustomerFlag constructs the cli.StringFlag for the "customer" flag,
// optionally namespaced to a command and config file. params[1] is the config
// file.
func NewCustomerFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:  "customer",
		Usage: "customer name (e.g. customer2)",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("MERCURYCTL_CUSTOMER"),
		),
		Validator: func(value string) error {
			return FlagValidators(value, CustomerValidator)
		},
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NewClientIDFlag constructs the cli.StringFlag for the AKS Key Vault Secrets
// Provider client ID, optionally namespaced to a command and config file.
func NewClientIDFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:  "aks-identity-client-id",
		Usage: "AKS Key Vault Secrets Provider client ID",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("MERCURYCTL_AKS_IDENTITY_CLIENT_ID"),
			cli.EnvVar("AKS_IDENTITY_CLIENT_ID"),
		),
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NewTenantFlag constructs the cli.StringFlag for the Azure tenant ID,
// optionally namespaced to a command and config file.
func NewTenantFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:  "azure-tenant-id",
		Usage: "Azure tenant ID",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("MERCURYCTL_AZURE_TENANT_ID"),
			cli.EnvVar("ARM_TENANT_ID"),
			cli.EnvVar("AZURE_TENANT_ID"),
		),
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NewTfFileFlag constructs the cli.StringFlag for the Terraform file path,
// optionally namespaced to a command and config file. Relative paths are
// resolved against the RootDir.
func NewTfFileFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:  "tf-file",
		Usage: "Terraform file to edit, relative to RootDir",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("MERCURYCTL_TF_FILE"),
		),
		Value: terraform.DefaultFile,
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NewTemplatesFlag constructs the cli.StringFlag for an on-disk template
// directory overriding the embedded manifest templates.
func NewTemplatesFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:  "templates",
		Usage: "directory of manifest templates overriding the embedded set",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("MERCURYCTL_TEMPLATES"),
		),
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

// pathHas checks if the given executable exists on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
