// Package dataset loads, validates and summarizes a drug-repurposing
// dataset release.
//
// A release is three CSV matrices that share identifier spaces:
//
//	ratings_mat.csv  drugs x diseases, values in {-1, 0, 1}
//	items.csv        genes x drugs, expression change under treatment
//	users.csv        genes x diseases, expression change in disease state
//
// plus an optional manifest.yaml declaring its version and counts.
package dataset

import (
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/agentstation/repurpose/pkg/constants"
	"github.com/agentstation/repurpose/pkg/errors"
	"github.com/agentstation/repurpose/pkg/logging"
)

// Dataset is one loaded release.
type Dataset struct {
	Manifest *Manifest
	// Source describes where the release was loaded from.
	Source string

	Associations    *AssociationMatrix
	DrugFeatures    *FeatureMatrix
	DiseaseFeatures *FeatureMatrix
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	files    *Files
	manifest *Manifest
	logger   *zerolog.Logger
	source   string
}

// WithFiles overrides the file names declared by the manifest. Empty
// names keep the declared file.
func WithFiles(ratings, items, users string) Option {
	return func(o *loadOptions) {
		o.files = &Files{Ratings: ratings, Items: items, Users: users}
	}
}

// WithManifest uses m instead of reading manifest.yaml from the release.
func WithManifest(m *Manifest) Option {
	return func(o *loadOptions) {
		o.manifest = m
	}
}

// WithLogger sets the logger used while loading.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *loadOptions) {
		o.logger = logger
	}
}

// WithSource sets the human-readable origin recorded on the Dataset.
func WithSource(source string) Option {
	return func(o *loadOptions) {
		o.source = source
	}
}

// LoadDir loads a release from a directory on disk.
func LoadDir(ctx context.Context, dir string, opts ...Option) (*Dataset, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewNotFoundError("dataset directory", dir)
		}
		return nil, errors.WrapIO("stat", dir, err)
	}
	if !info.IsDir() {
		return nil, errors.NewValidationError("data_dir", dir, "not a directory")
	}
	return Load(ctx, os.DirFS(dir), append([]Option{WithSource(dir)}, opts...)...)
}

// Load reads the three matrices of a release from fsys concurrently.
func Load(ctx context.Context, fsys fs.FS, opts ...Option) (*Dataset, error) {
	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	manifest := o.manifest
	if manifest == nil {
		m, err := readManifest(fsys)
		if err != nil {
			return nil, err
		}
		manifest = m
	}
	if o.files != nil {
		m := *manifest
		if o.files.Ratings != "" {
			m.Files.Ratings = o.files.Ratings
		}
		if o.files.Items != "" {
			m.Files.Items = o.files.Items
		}
		if o.files.Users != "" {
			m.Files.Users = o.files.Users
		}
		manifest = &m
	}
	files := manifest.Files

	ctx = logging.WithDataset(logging.WithLogger(ctx, logger), manifest.Version)
	logger = logging.FromContext(ctx)

	start := time.Now()
	ds := &Dataset{Manifest: manifest, Source: o.source}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := openAndRead(gctx, fsys, files.Ratings, ReadAssociations)
		ds.Associations = m
		return err
	})
	g.Go(func() error {
		m, err := openAndRead(gctx, fsys, files.Items, ReadFeatures)
		ds.DrugFeatures = m
		return err
	})
	g.Go(func() error {
		m, err := openAndRead(gctx, fsys, files.Users, ReadFeatures)
		ds.DiseaseFeatures = m
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, errors.WrapResource("load", "dataset", manifest.Version, err)
	}

	logger.Debug().
		Int("drugs", ds.Associations.Rows()).
		Int("diseases", ds.Associations.Cols()).
		Int("genes", ds.DrugFeatures.Rows()).
		Dur("elapsed", time.Since(start)).
		Msg("Loaded dataset")

	return ds, nil
}

func readManifest(fsys fs.FS) (*Manifest, error) {
	data, err := fs.ReadFile(fsys, constants.ManifestFile)
	if stderrors.Is(err, fs.ErrNotExist) {
		return DefaultManifest(), nil
	}
	if err != nil {
		return nil, errors.WrapIO("read", constants.ManifestFile, err)
	}
	return ParseManifest(data, constants.ManifestFile)
}

func openAndRead[T Value](
	ctx context.Context,
	fsys fs.FS,
	name string,
	read func(context.Context, io.Reader, string) (*Matrix[T], error),
) (*Matrix[T], error) {
	f, err := fsys.Open(name)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewNotFoundError("file", name)
		}
		return nil, errors.WrapIO("open", name, err)
	}
	defer f.Close()

	ctx = logging.WithFile(ctx, name)
	logging.FromContext(ctx).Trace().Msg("Reading matrix")
	return read(ctx, f, name)
}

// Drugs returns the drug identifiers of the association matrix.
func (d *Dataset) Drugs() []string { return d.Associations.RowIDs }

// Diseases returns the disease identifiers of the association matrix.
func (d *Dataset) Diseases() []string { return d.Associations.ColIDs }

// Genes returns the gene symbols of the drug feature matrix.
func (d *Dataset) Genes() []string { return d.DrugFeatures.RowIDs }
