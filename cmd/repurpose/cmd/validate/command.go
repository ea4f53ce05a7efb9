// Package validate implements the validate command, which runs the
// integrity checks of a release and optionally re-runs them on change.
package validate

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/repurpose/cmd/application"
	"github.com/agentstation/repurpose/internal/watch"
	"github.com/agentstation/repurpose/pkg/constants"
	"github.com/agentstation/repurpose/pkg/dataset"
	"github.com/agentstation/repurpose/pkg/errors"
)

// ManifestReader reads a manifest file given by --manifest.
type ManifestReader func(path string) (*dataset.Manifest, error)

// Options are the validate command flags.
type Options struct {
	Watch      bool
	Strict     bool
	SkipCounts bool
	Manifest   string
	MaxIssues  int
}

// NewCommand creates the validate command using app context.
func NewCommand(app application.Application, readManifest ManifestReader) *cobra.Command {
	opts := &Options{}
	cmd := &cobra.Command{
		Use:     "validate",
		GroupID: "core",
		Short:   "Check the integrity of a release",
		Long: `Validate loads a release and runs its integrity checks:

  association-values  every ratings cell is -1, 0 or 1
  drug-closure        ratings rows and items.csv columns name the same drugs
  disease-closure     ratings columns and users.csv columns name the same diseases
  gene-alignment      items.csv and users.csv rows name the same genes
  unique-labels       no file repeats a row or column label
  declared-counts     sizes match the counts declared by the manifest
  missing-values      feature matrices have no empty or NaN cells (warning)

The command exits with status 1 when an error-severity check fails.`,
		Example: `  repurpose validate --data-dir ./TRANSCRIPT
  repurpose validate --sample --strict
  repurpose validate --watch
  repurpose validate --manifest release-2.0.0.yaml -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), app, readManifest, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "re-validate whenever a release file changes")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "treat missing feature values as errors")
	cmd.Flags().BoolVar(&opts.SkipCounts, "skip-counts", false, "skip the declared-counts check")
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "manifest file to validate against (default: the release's manifest.yaml)")
	cmd.Flags().IntVar(&opts.MaxIssues, "max-issues", constants.MaxIssuesPerCheck, "example issues listed per check")

	return cmd
}

func run(ctx context.Context, w io.Writer, app application.Application, readManifest ManifestReader, opts *Options) error {
	var loadOpts []dataset.Option
	if opts.Manifest != "" {
		m, err := readManifest(opts.Manifest)
		if err != nil {
			return err
		}
		loadOpts = append(loadOpts, dataset.WithManifest(m))
	}

	validateOpts := []dataset.ValidateOption{
		dataset.WithStrict(opts.Strict),
		dataset.WithSkipCounts(opts.SkipCounts),
		dataset.WithMaxIssues(opts.MaxIssues),
	}

	p := newPrinter(w, app.OutputFormat(), app.NoColor())

	check := func(ctx context.Context) (*dataset.Dataset, error) {
		ds, err := app.LoadDataset(ctx, loadOpts...)
		if err != nil {
			return nil, err
		}
		report := dataset.Validate(ds, validateOpts...)
		if err := p.report(report); err != nil {
			return ds, err
		}
		if !report.Passed() {
			return ds, fmt.Errorf("release %s failed validation: %w", report.Version, report.Err())
		}
		return ds, nil
	}

	if !opts.Watch {
		_, err := check(ctx)
		return err
	}
	return runWatch(ctx, p, app, check)
}

func runWatch(ctx context.Context, p *printer, app application.Application, check func(context.Context) (*dataset.Dataset, error)) error {
	dir := app.DataDir()
	if dir == "" {
		return errors.NewValidationError("watch", "sample", "the embedded sample release cannot be watched")
	}
	logger := app.Logger()

	// The first run decides which files to watch; a broken release is
	// watched with the default names so that fixing it re-validates.
	files := dataset.DefaultFiles()
	ds, err := check(ctx)
	switch {
	case ds != nil:
		files = ds.Manifest.Files
		if err != nil {
			logger.Warn().Err(err).Msg("Validation failed")
		}
	case err != nil:
		_ = p.loadError(err)
	}

	names := []string{files.Ratings, files.Items, files.Users, constants.ManifestFile}
	return watch.Run(ctx, dir, names, func(ctx context.Context, changed []string) error {
		_ = p.changed(changed)
		ds, err := check(ctx)
		if ds == nil && err != nil {
			return p.loadError(err)
		}
		return err
	}, watch.WithLogger(logger))
}
