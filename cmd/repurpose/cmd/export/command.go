// Package export implements the export command and its sqlite, triplets
// and summary subcommands.
package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"

	"github.com/agentstation/repurpose/cmd/application"
	"github.com/agentstation/repurpose/internal/cmd/output"
	"github.com/agentstation/repurpose/internal/cmd/table"
	exporter "github.com/agentstation/repurpose/internal/export"
	"github.com/agentstation/repurpose/pkg/constants"
	"github.com/agentstation/repurpose/pkg/dataset"
	"github.com/agentstation/repurpose/pkg/errors"
)

// Options are the export flags.
type Options struct {
	Out          string
	WithFeatures bool
	All          bool
}

// NewCommand creates the export command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "export [format]",
		GroupID: "management",
		Short:   "Export a release to other formats",
		Long: `Export writes the loaded release to a file.

Available formats:
  sqlite     - a SQLite database with drugs, diseases, genes and associations tables
  triplets   - a drug,disease,value CSV of the labeled pairs
  summary    - the release statistics as JSON or YAML`,
		Example: `  repurpose export sqlite --out release.db --with-features
  repurpose export triplets --out pairs.csv --all
  repurpose export summary --out stats.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return fmt.Errorf("unknown format: %s", args[0])
		},
	}

	cmd.AddCommand(newSQLiteCommand(app))
	cmd.AddCommand(newTripletsCommand(app))
	cmd.AddCommand(newSummaryCommand(app))
	return cmd
}

type exportFunc func(ctx context.Context, ds *dataset.Dataset, path string, opts ...exporter.Option) (*exporter.Summary, error)

func newFormatCommand(app application.Application, use, short string, features bool, write exportFunc) *cobra.Command {
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
			if err := ensureParent(opts.Out); err != nil {
				return err
			}
			summary, err := write(cmd.Context(), ds, opts.Out,
				exporter.WithFeatures(opts.WithFeatures),
				exporter.WithUnknowns(opts.All),
				exporter.WithLogger(app.Logger()))
			if err != nil {
				return err
			}
			app.Logger().Info().Str("path", summary.Path).Str("format", summary.Format).Msg("Export written")
			return output.Write(cmd.OutOrStdout(), output.Format(app.OutputFormat()), summary, func(bool) table.Data {
				return table.ExportToTableData(summary)
			})
		},
	}
	cmd.Flags().StringVar(&opts.Out, "out", "", "output file")
	cmd.Flags().BoolVar(&opts.All, "all", false, "include unknown (0) drug-disease pairs")
	if features {
		cmd.Flags().BoolVar(&opts.WithFeatures, "with-features", false, "include the gene feature matrices")
	}
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func newSQLiteCommand(app application.Application) *cobra.Command {
	return newFormatCommand(app, "sqlite", "Export to a SQLite database", true, exporter.SQLite)
}

func newTripletsCommand(app application.Application) *cobra.Command {
	return newFormatCommand(app, "triplets", "Export labeled pairs as drug,disease,value CSV", false, exporter.Triplets)
}

func newSummaryCommand(app application.Application) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Export release statistics as JSON or YAML",
		Long: `Summary writes the output of the stats command to a file. The
encoding follows the file extension (.json, .yaml or .yml), or -o when set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := app.Dataset(cmd.Context())
			if err != nil {
				return err
			}
			format, err := summaryFormat(out, app.OutputFormat())
			if err != nil {
				return err
			}
			if err := ensureParent(out); err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := output.NewFormatter(format).Format(&buf, dataset.Summarize(ds)); err != nil {
				return err
			}
			if err := renameio.WriteFile(out, buf.Bytes(), constants.FilePermissions); err != nil {
				return errors.WrapIO("write", out, err)
			}
			app.Logger().Info().Str("path", out).Str("format", string(format)).Msg("Export written")
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output file")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

// ensureParent creates the directory that will hold path.
func ensureParent(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}
	return nil
}

// summaryFormat picks JSON or YAML from the extension of path, then from
// the explicit output format.
func summaryFormat(path, explicit string) (output.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return output.FormatJSON, nil
	case ".yaml", ".yml":
		return output.FormatYAML, nil
	}
	switch f := output.Format(explicit); f {
	case output.FormatJSON, output.FormatYAML:
		return f, nil
	}
	return "", errors.NewValidationError("out", path, "use a .json or .yaml extension, or -o json|yaml")
}
