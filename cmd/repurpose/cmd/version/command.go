// Package version implements the version command.
package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/repurpose/cmd/application"
	"github.com/agentstation/repurpose/internal/cmd/output"
	"github.com/agentstation/repurpose/pkg/constants"
)

// Info is the build information printed by the version command.
type Info struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
	BuiltBy string `json:"built_by" yaml:"built_by"`
	Release string `json:"release" yaml:"release"`
}

// NewCommand creates the version command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := Info{
				Version: app.Version(),
				Commit:  app.Commit(),
				Date:    app.Date(),
				BuiltBy: app.BuiltBy(),
				Release: constants.DatasetName + " " + constants.ReleaseVersion,
			}
			format := output.Format(app.OutputFormat())
			if output.IsTable(format) {
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "repurpose %s\n", info.Version)
				fmt.Fprintf(w, "  commit:   %s\n", info.Commit)
				fmt.Fprintf(w, "  built:    %s\n", info.Date)
				fmt.Fprintf(w, "  built by: %s\n", info.BuiltBy)
				fmt.Fprintf(w, "  release:  %s\n", info.Release)
				return nil
			}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), info)
		},
	}
}
