// Package completion provides the completion command, which prints or
// installs shell completion scripts.
package completion

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/repurpose/internal/cmd/completion"
)

// NewCommand creates the completion command. It replaces cobra's default
// completion command with one that can also install scripts.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Manage shell completions",
		Long: `Print a completion script to stdout, or install it for your shell.

  source <(repurpose completion bash)
  repurpose completion fish | source
  repurpose completion install --zsh
  repurpose completion uninstall`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	for _, shell := range completion.Shells {
		cmd.AddCommand(newScriptCommand(shell))
	}
	cmd.AddCommand(&cobra.Command{
		Use:                   "powershell",
		Short:                 "Generate powershell completion script",
		DisableFlagsInUseLine: true,
		Args:                  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
		},
	})
	cmd.AddCommand(newInstallCommand())
	cmd.AddCommand(newUninstallCommand())
	return cmd
}

func newScriptCommand(shell completion.Shell) *cobra.Command {
	return &cobra.Command{
		Use:                   string(shell),
		Short:                 fmt.Sprintf("Generate %s completion script", shell),
		DisableFlagsInUseLine: true,
		Args:                  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return completion.Generate(cmd.OutOrStdout(), cmd.Root(), shell)
		},
	}
}

// shellFlags adds --bash, --zsh and --fish to cmd and returns the
// selected shells, all of them when none is set.
func shellFlags(cmd *cobra.Command, verb string) func() []completion.Shell {
	selected := make(map[completion.Shell]*bool, len(completion.Shells))
	for _, shell := range completion.Shells {
		selected[shell] = cmd.Flags().Bool(string(shell), false, fmt.Sprintf("%s %s completions only", verb, shell))
	}
	return func() []completion.Shell {
		var shells []completion.Shell
		for _, shell := range completion.Shells {
			if *selected[shell] {
				shells = append(shells, shell)
			}
		}
		if len(shells) == 0 {
			return completion.Shells
		}
		return shells
	}
}

func newInstallCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install shell completions",
		Args:  cobra.NoArgs,
	}
	shells := shellFlags(cmd, "Install")
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		w := cmd.OutOrStdout()
		for _, shell := range shells() {
			if _, err := completion.Install(w, cmd.Root(), shell); err != nil {
				return err
			}
		}
		fmt.Fprintln(w, "Start a new shell session to enable completions.")
		return nil
	}
	return cmd
}

func newUninstallCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove shell completions",
		Args:  cobra.NoArgs,
	}
	shells := shellFlags(cmd, "Remove")
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		for _, shell := range shells() {
			if _, err := completion.Uninstall(cmd.OutOrStdout(), shell, cmd.Root().Name()); err != nil {
				return err
			}
		}
		return nil
	}
	return cmd
}
