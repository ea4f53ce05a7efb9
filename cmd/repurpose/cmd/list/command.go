// Package list implements the list command and its drugs, diseases and
// genes subcommands.
package list

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/agentstation/repurpose/cmd/application"
	"github.com/agentstation/repurpose/internal/cmd/output"
	"github.com/agentstation/repurpose/internal/cmd/table"
	"github.com/agentstation/repurpose/pkg/dataset"
)

// Options are the flags shared by the entity subcommands.
type Options struct {
	// Sort orders entities by "id", "positives" or "" (file order).
	Sort  string
	Limit int
}

// NewCommand creates the list command with app dependencies.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list [resource]",
		GroupID: "core",
		Short:   "List the drugs, diseases or genes of a release",
		Long: `List displays the identifiers of a release.

Available subcommands:
  drugs      - drug rows with their positive/negative/unknown counts
  diseases   - disease columns with their positive/negative/unknown counts
  genes      - gene symbols shared by both feature matrices`,
		Example: `  repurpose list drugs
  repurpose list diseases --sort positives --limit 10
  repurpose list genes -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return fmt.Errorf("unknown resource: %s", args[0])
		},
	}

	cmd.AddCommand(newEntityCommand(app, "drugs", "List drugs", (*dataset.Dataset).DrugEntities))
	cmd.AddCommand(newEntityCommand(app, "diseases", "List diseases", (*dataset.Dataset).DiseaseEntities))
	cmd.AddCommand(newGenesCommand(app))

	return cmd
}

func newEntityCommand(app application.Application, use, short string, entities func(*dataset.Dataset) []dataset.Entity) *cobra.Command {
	opts := &Options{}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := app.Dataset(cmd.Context())
			if err != nil {
				return err
			}
			list, err := arrange(entities(ds), opts)
			if err != nil {
				return err
			}
			return output.Write(cmd.OutOrStdout(), output.Format(app.OutputFormat()), list, func(bool) table.Data {
				return table.EntitiesToTableData(list)
			})
		},
	}
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "sort by: id, positives (default: file order)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "show at most this many rows (0 for all)")
	return cmd
}

// arrange sorts and truncates entities according to opts.
func arrange(entities []dataset.Entity, opts *Options) ([]dataset.Entity, error) {
	switch opts.Sort {
	case "":
	case "id":
		sort.SliceStable(entities, func(i, j int) bool { return entities[i].ID < entities[j].ID })
	case "positives":
		sort.SliceStable(entities, func(i, j int) bool { return entities[i].Positives > entities[j].Positives })
	default:
		return nil, fmt.Errorf("invalid sort %q: must be one of: id, positives", opts.Sort)
	}
	if opts.Limit > 0 && opts.Limit < len(entities) {
		entities = entities[:opts.Limit]
	}
	return entities, nil
}

func newGenesCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "genes",
		Short: "List gene symbols",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := app.Dataset(cmd.Context())
			if err != nil {
				return err
			}
			genes := ds.Genes()
			return output.Write(cmd.OutOrStdout(), output.Format(app.OutputFormat()), genes, func(bool) table.Data {
				return table.GenesToTableData(genes)
			})
		},
	}
}
