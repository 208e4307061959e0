// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/mercuryctl/mercuryctl/internal/meta"
)

const bashCompletionScript = `# bash completion for mercuryctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_mercuryctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "provision deprovision tfadd tfrm status completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
  local common="--color -c --tldr"

    # Determine if an optional RootDir (first non-flag after subcommand) has
		# already been provided
    local have_rootdir=0
    local idx=2
    while [[ $idx -lt ${#COMP_WORDS[@]} ]]; do
        local w=${COMP_WORDS[$idx]}
        if [[ $w != -* ]]; then
            have_rootdir=1
            break
        fi
        ((idx++))
    done

    case "$cmd" in
    provision)
      local opts="$common --customer --aks-identity-client-id --azure-tenant-id --templates"
            ;;
        deprovision)
      local opts="$common --customer --yes -y"
            ;;
        tfadd)
      local opts="$common --customer --tf-file"
            ;;
        tfrm)
      local opts="$common --customer --tf-file --yes -y"
            ;;
        status)
      local opts="$common --attrs -a --filter -f --output -o --sort -s --titles -t --tf-file"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

  # If current token starts with '-', or we've already consumed RootDir, offer flags
  if [[ "$cur" == -* || $have_rootdir -eq 1 ]]; then
    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
  fi

  # Otherwise, we're on the (optional) RootDir positional — complete directories
  COMPREPLY=( $(compgen -o dirnames -- "$cur") )
  return 0
}

complete -F _mercuryctl mercuryctl
`

const zshCompletionScript = `#compdef mercuryctl

_mercuryctl() {
  local -a cmds
  cmds=(
    'provision:provision a customer environment'
    'deprovision:deprovision a customer environment'
    'tfadd:add customer Key Vault resources to Terraform'
    'tfrm:remove customer Key Vault resources from Terraform'
    'status:customer environment status'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-c --color)'{-c,--color}'[enable colored text]'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'mercuryctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    provision)
      _arguments -C \
        $common \
        '--customer[customer name]:customer' \
        '--aks-identity-client-id[AKS Key Vault Secrets Provider client ID]:id' \
        '--azure-tenant-id[Azure tenant ID]:id' \
        '--templates[template directory override]:dir:_directories' \
        '::RootDir:_directories'
      ;;
    deprovision)
      _arguments -C \
        $common \
        '--customer[customer name]:customer' \
        '(-y --yes)'{-y,--yes}'[skip the confirmation prompt]' \
        '::RootDir:_directories'
      ;;
    tfadd)
      _arguments -C \
        $common \
        '--customer[customer name]:customer' \
        '--tf-file[Terraform file to edit]:file:_files' \
        '::RootDir:_directories'
      ;;
    tfrm)
      _arguments -C \
        $common \
        '--customer[customer name]:customer' \
        '--tf-file[Terraform file to edit]:file:_files' \
        '(-y --yes)'{-y,--yes}'[skip the confirmation prompt]' \
        '::RootDir:_directories'
      ;;
    status)
      _arguments -C \
        $common \
        '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs' \
        '(-f --filter)'{-f,--filter}'[filters to apply]:filters' \
        '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)' \
        '(-s --sort)'{-s,--sort}'[sort attributes]:attrs' \
        '(-t --titles)'{-t,--titles}'[show titles]' \
        '--tf-file[Terraform file to inspect]:file:_files' \
        '::RootDir:_directories'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common '*:directory:_directories'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _mercuryctl mercuryctl
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(os.Stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(os.Stdout, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(os.Stdout, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(os.Stdout, bashCompletionScript)
		default:
			fmt.Fprintln(os.Stderr, "usage: mercuryctl completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "mercuryctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
