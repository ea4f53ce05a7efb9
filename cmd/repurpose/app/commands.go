package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/repurpose/cmd/repurpose/cmd/completion"
	"github.com/agentstation/repurpose/cmd/repurpose/cmd/evaluate"
	"github.com/agentstation/repurpose/cmd/repurpose/cmd/export"
	"github.com/agentstation/repurpose/cmd/repurpose/cmd/list"
	"github.com/agentstation/repurpose/cmd/repurpose/cmd/show"
	"github.com/agentstation/repurpose/cmd/repurpose/cmd/stats"
	"github.com/agentstation/repurpose/cmd/repurpose/cmd/validate"
	"github.com/agentstation/repurpose/cmd/repurpose/cmd/version"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(validate.NewCommand(a, ReadManifest))
	rootCmd.AddCommand(stats.NewCommand(a))
	rootCmd.AddCommand(list.NewCommand(a))
	rootCmd.AddCommand(show.NewCommand(a))
	rootCmd.AddCommand(evaluate.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(export.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(version.NewCommand(a))
	rootCmd.AddCommand(completion.NewCommand())
}
