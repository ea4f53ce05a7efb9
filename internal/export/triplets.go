package export

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/google/renameio/v2"

	"github.com/agentstation/repurpose/pkg/constants"
	"github.com/agentstation/repurpose/pkg/dataset"
	"github.com/agentstation/repurpose/pkg/errors"
)

// TripletHeader is the header row of a triplet file.
var TripletHeader = []string{"drug", "disease", "value"}

// Triplets writes drug,disease,value rows for the known associations, or
// for every pair when WithUnknowns is set. The file at path is replaced
// atomically.
func Triplets(ctx context.Context, ds *dataset.Dataset, path string, opts ...Option) (*Summary, error) {
	ctx, o := newOptions(ctx, "triplets", opts)

	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(constants.FilePermissions))
	if err != nil {
		return nil, errors.WrapIO("create", path, err)
	}
	defer func() {
		if err := pending.Cleanup(); err != nil {
			o.logger.Debug().Err(err).Str("path", path).Msg("cleanup pending triplet file")
		}
	}()

	n, err := WriteTriplets(ctx, pending, ds.Triplets(!o.unknowns))
	if err != nil {
		return nil, err
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return nil, errors.WrapIO("replace", path, err)
	}

	o.logger.Debug().Str("path", path).Int("rows", n).Msg("triplet export written")
	return &Summary{
		Path:         path,
		Format:       "triplets",
		Drugs:        ds.Associations.Rows(),
		Diseases:     ds.Associations.Cols(),
		Associations: n,
	}, nil
}

// WriteTriplets writes a header and one CSV row per association.
func WriteTriplets(ctx context.Context, w io.Writer, triplets []dataset.Association) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(TripletHeader); err != nil {
		return 0, errors.WrapIO("write", "triplets", err)
	}
	record := make([]string, 3)
	for i, a := range triplets {
		if i%constants.CancelCheckRows == 0 {
			if err := ctx.Err(); err != nil {
				return i, errors.WrapCanceled("triplet export", err)
			}
		}
		record[0], record[1], record[2] = a.Drug, a.Disease, strconv.Itoa(int(a.Value))
		if err := cw.Write(record); err != nil {
			return i, errors.WrapIO("write", "triplets", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return len(triplets), errors.WrapIO("write", "triplets", err)
	}
	return len(triplets), nil
}
