// Package stats implements the stats command.
package stats

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/repurpose/cmd/application"
	"github.com/agentstation/repurpose/internal/cmd/output"
	"github.com/agentstation/repurpose/internal/cmd/table"
	"github.com/agentstation/repurpose/pkg/dataset"
)

// NewCommand creates the stats command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "stats",
		GroupID: "core",
		Short:   "Summarize a release",
		Long: `Stats prints the size of a release, its label counts and density,
the spread of positive associations per drug and per disease, and the
range of both feature matrices.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := app.Dataset(cmd.Context())
			if err != nil {
				return err
			}
			s := dataset.Summarize(ds)
			return output.Write(cmd.OutOrStdout(), output.Format(app.OutputFormat()), s, func(bool) table.Data {
				return table.StatsToTableData(s)
			})
		},
	}
}
