package dataset

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/agentstation/repurpose/pkg/constants"
	"github.com/agentstation/repurpose/pkg/errors"
)

// cellParser converts one CSV cell into a matrix value.
type cellParser[T Value] func(string) (T, error)

// ReadAssociations parses a drug x disease association matrix.
// Cells must be integral; values outside {-1, 0, 1} are kept so that
// validation can report them. Values beyond the int8 range saturate at
// its bounds.
func ReadAssociations(ctx context.Context, r io.Reader, name string) (*AssociationMatrix, error) {
	return readMatrix(ctx, r, name, parseAssociation)
}

// ReadFeatures parses a gene x entity feature matrix. Empty and NaN
// cells load as NaN.
func ReadFeatures(ctx context.Context, r io.Reader, name string) (*FeatureMatrix, error) {
	return readMatrix(ctx, r, name, parseFeature)
}

func parseAssociation(s string) (int8, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.New("not a number")
	}
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v):
		return 0, errors.New("not an integer association value")
	case v > math.MaxInt8:
		return math.MaxInt8, nil
	case v < math.MinInt8:
		return math.MinInt8, nil
	}
	return int8(v), nil
}

func parseFeature(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if stderrors.As(err, &numErr) && stderrors.Is(numErr.Err, strconv.ErrRange) {
			return v, nil
		}
		return 0, errors.New("not a number")
	}
	return v, nil
}

// readMatrix reads a labeled CSV matrix: the header row carries column
// labels after an ignored index cell, and every body row starts with its
// row label.
func readMatrix[T Value](ctx context.Context, r io.Reader, name string, parse cellParser[T]) (*Matrix[T], error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.NewParseError("csv", name, "missing header row", nil)
	}
	if err != nil {
		return nil, csvError(name, err)
	}

	cols := make([]string, 0, len(header)-1)
	for i, label := range header[1:] {
		label = strings.TrimSpace(label)
		if label == "" {
			return nil, &errors.ParseError{Format: "csv", File: name, Line: 1, Column: i + 2, Message: "empty column label"}
		}
		cols = append(cols, label)
	}
	width := len(header)

	var (
		rows []string
		data []T
	)
	for n := 0; ; n++ {
		if n%constants.CancelCheckRows == 0 {
			if err := ctx.Err(); err != nil {
				return nil, errors.WrapCanceled("read "+name, err)
			}
		}

		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvError(name, err)
		}
		line, _ := cr.FieldPos(0)

		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		if len(record) != width {
			return nil, &errors.ParseError{
				Format:  "csv",
				File:    name,
				Line:    line,
				Column:  len(record),
				Message: "row has " + strconv.Itoa(len(record)) + " fields, header has " + strconv.Itoa(width),
			}
		}

		label := strings.TrimSpace(record[0])
		if label == "" {
			return nil, &errors.ParseError{Format: "csv", File: name, Line: line, Column: 1, Message: "empty row label"}
		}
		rows = append(rows, label)

		for i, cell := range record[1:] {
			v, err := parse(cell)
			if err != nil {
				return nil, &errors.ParseError{
					Format:  "csv",
					File:    name,
					Line:    line,
					Column:  i + 2,
					Message: err.Error() + ": " + strconv.Quote(cell),
					Err:     err,
				}
			}
			data = append(data, v)
		}
	}

	return NewMatrix(name, rows, cols, data)
}

// csvError converts encoding/csv failures into ParseErrors.
func csvError(name string, err error) error {
	var pe *csv.ParseError
	if stderrors.As(err, &pe) {
		return &errors.ParseError{
			Format:  "csv",
			File:    name,
			Line:    pe.Line,
			Column:  pe.Column,
			Message: pe.Err.Error(),
			Err:     err,
		}
	}
	return errors.WrapIO("read", name, err)
}
