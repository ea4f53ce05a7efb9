// Package evaluate implements the evaluate command, which scores a
// drug x disease prediction matrix against the known associations.
package evaluate

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/repurpose/cmd/application"
	"github.com/agentstation/repurpose/internal/cmd/output"
	"github.com/agentstation/repurpose/internal/cmd/table"
	"github.com/agentstation/repurpose/pkg/constants"
	"github.com/agentstation/repurpose/pkg/dataset"
	"github.com/agentstation/repurpose/pkg/errors"
	"github.com/agentstation/repurpose/pkg/ranking"
)

// Options are the evaluate command flags.
type Options struct {
	Scores string
	K      int
}

// NewCommand creates the evaluate command.
func NewCommand(app application.Application) *cobra.Command {
	opts := &Options{}
	cmd := &cobra.Command{
		Use:     "evaluate",
		GroupID: "core",
		Short:   "Score predicted drug rankings against known associations",
		Long: `Evaluate reads a score matrix with the layout of ratings_mat.csv
(drug rows, disease columns, higher is better) and ranks every drug for
each disease. Diseases without a positive association are skipped.

Reported metrics: hit rate, precision, recall, F1 and NDCG at k, plus
MAP, MRR, mean rank of the first hit and R-precision.

k defaults to 10, or the number of drugs when the release is smaller.`,
		Example: `  repurpose evaluate --scores predictions.csv
  repurpose evaluate --scores predictions.csv --k 20 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := app.Dataset(cmd.Context())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("k") {
				opts.K = min(constants.DefaultRankCutoff, ds.Associations.Rows())
			}
			ev, err := Run(cmd.Context(), ds, opts)
			if err != nil {
				return err
			}
			return output.Write(cmd.OutOrStdout(), output.Format(app.OutputFormat()), ev, func(bool) table.Data {
				return table.EvaluationToTableData(ev)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Scores, "scores", "", "score matrix CSV (drug rows, disease columns)")
	cmd.Flags().IntVarP(&opts.K, "k", "k", constants.DefaultRankCutoff, "rank cutoff for @k metrics")
	_ = cmd.MarkFlagRequired("scores")

	return cmd
}

// Run reads the score matrix and evaluates it against ds.
func Run(ctx context.Context, ds *dataset.Dataset, opts *Options) (*ranking.Evaluation, error) {
	f, err := os.Open(opts.Scores)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("score file", opts.Scores)
		}
		return nil, errors.WrapIO("open", opts.Scores, err)
	}
	defer f.Close()

	scores, err := dataset.ReadFeatures(ctx, f, opts.Scores)
	if err != nil {
		return nil, err
	}
	return ranking.Evaluate(ds.Associations, scores, opts.K)
}
