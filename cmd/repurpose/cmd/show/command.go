// Package show implements the show command, which prints the known
// associations of one drug or disease.
package show

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/repurpose/cmd/application"
	"github.com/agentstation/repurpose/internal/cmd/output"
	"github.com/agentstation/repurpose/internal/cmd/table"
	"github.com/agentstation/repurpose/pkg/dataset"
)

// NewCommand creates the show command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "show [drug|disease] <id>",
		GroupID: "core",
		Short:   "Show the known associations of a drug or disease",
		Example: `  repurpose show drug DB00001
  repurpose show disease C0011849 -o yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return fmt.Errorf("unknown resource: %s", args[0])
		},
	}
	cmd.AddCommand(newCommand(app, "drug <id>", "Show the known associations of a drug", (*dataset.Dataset).DrugAssociations))
	cmd.AddCommand(newCommand(app, "disease <id>", "Show the known associations of a disease", (*dataset.Dataset).DiseaseAssociations))
	return cmd
}

func newCommand(app application.Application, use, short string, lookup func(*dataset.Dataset, string) ([]dataset.Association, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := app.Dataset(cmd.Context())
			if err != nil {
				return err
			}
			assoc, err := lookup(ds, args[0])
			if err != nil {
				return err
			}
			if assoc == nil {
				assoc = []dataset.Association{}
			}
			return output.Write(cmd.OutOrStdout(), output.Format(app.OutputFormat()), assoc, func(bool) table.Data {
				return table.AssociationsToTableData(assoc)
			})
		},
	}
}
