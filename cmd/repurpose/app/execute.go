package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/repurpose/internal/cmd/output"
)

// Execute runs the repurpose CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "repurpose",
		Short:   "Drug-repurposing dataset toolkit",
		Version: a.version,
		Long: `Repurpose loads, validates and summarizes releases of the TRANSCRIPT
drug-repurposing dataset: a drug x disease association matrix plus gene
expression features for every drug and disease.

It can also score predicted drug rankings against the known associations
and export a release to SQLite or CSV triplets. A small sample release is
embedded in the binary (--sample).`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.flags.ConfigFile, "config", "", "config file (default is $HOME/.repurpose.yaml)")
	flags.StringVarP(&a.flags.DataDir, "data-dir", "d", "", "release directory (default is the current directory)")
	flags.BoolVar(&a.flags.Sample, "sample", false, "use the embedded sample release")
	flags.BoolVarP(&a.flags.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolVarP(&a.flags.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.BoolVar(&a.flags.NoColor, "no-color", false, "disable colored output")
	flags.StringVarP(&a.flags.Format, "format", "o", "", "output format: table, json, yaml, wide")
	flags.StringVar(&a.flags.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	rootCmd.MarkFlagsMutuallyExclusive("data-dir", "sample")

	rootCmd.SetVersionTemplate("repurpose {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	changed := cmd.Flags().Changed

	if changed("config") {
		config, err := LoadConfig(a.flags.ConfigFile)
		if err != nil {
			return err
		}
		a.config = config
	}
	a.config.UpdateFromFlags(&a.flags, changed)

	if a.config.Output == "" {
		a.config.Output = string(output.DetectFormat(""))
	}
	format, err := output.ParseFormat(a.config.Output)
	if err != nil {
		return err
	}
	a.config.Output = string(format)

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger

	a.logger.Debug().
		Str("config", a.config.ConfigFile).
		Str("data_dir", a.DataDir()).
		Bool("sample", a.config.UseSample).
		Str("format", a.config.Output).
		Msg("Configuration loaded")
	return nil
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
