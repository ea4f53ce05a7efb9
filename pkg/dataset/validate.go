package dataset

import (
	stderrors "errors"
	"fmt"
	"math"
	"sort"

	"github.com/agentstation/repurpose/pkg/constants"
	"github.com/agentstation/repurpose/pkg/errors"
)

// Check names.
const (
	CheckAssociationValues = "association-values"
	CheckDrugClosure       = "drug-closure"
	CheckDiseaseClosure    = "disease-closure"
	CheckGeneAlignment     = "gene-alignment"
	CheckUniqueLabels      = "unique-labels"
	CheckDeclaredCounts    = "declared-counts"
	CheckMissingValues     = "missing-values"
)

// Severity says whether a failing check fails the report.
type Severity string

const (
	// SeverityError checks fail the report.
	SeverityError Severity = "error"
	// SeverityWarning checks are reported but do not fail it.
	SeverityWarning Severity = "warning"
)

// Check is the outcome of one integrity check.
type Check struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Severity    Severity `json:"severity" yaml:"severity"`
	Passed      bool     `json:"passed" yaml:"passed"`
	// Total is the number of offending items; Issues lists at most
	// the configured maximum of them.
	Total  int      `json:"total" yaml:"total"`
	Issues []string `json:"issues,omitempty" yaml:"issues,omitempty"`

	err error
}

// Err returns the error describing a failed check, or nil.
func (c Check) Err() error {
	if c.Passed {
		return nil
	}
	return c.err
}

// Report collects the checks run against one release.
type Report struct {
	Dataset string  `json:"dataset" yaml:"dataset"`
	Version string  `json:"version" yaml:"version"`
	Source  string  `json:"source,omitempty" yaml:"source,omitempty"`
	Checks  []Check `json:"checks" yaml:"checks"`
}

// Passed reports whether every error-severity check passed.
func (r *Report) Passed() bool {
	return len(r.Failed()) == 0
}

// Failed returns the error-severity checks that did not pass.
func (r *Report) Failed() []Check {
	var failed []Check
	for _, c := range r.Checks {
		if !c.Passed && c.Severity == SeverityError {
			failed = append(failed, c)
		}
	}
	return failed
}

// Check returns the named check.
func (r *Report) Check(name string) (Check, bool) {
	for _, c := range r.Checks {
		if c.Name == name {
			return c, true
		}
	}
	return Check{}, false
}

// Err joins the errors of all failed error-severity checks.
func (r *Report) Err() error {
	var errs []error
	for _, c := range r.Failed() {
		errs = append(errs, c.Err())
	}
	return stderrors.Join(errs...)
}

// ValidateOption configures Validate.
type ValidateOption func(*validateOptions)

type validateOptions struct {
	strict     bool
	skipCounts bool
	maxIssues  int
}

// WithStrict promotes warnings (missing feature values) to errors.
func WithStrict(strict bool) ValidateOption {
	return func(o *validateOptions) { o.strict = strict }
}

// WithSkipCounts disables the declared-counts check, for partial or
// derived releases.
func WithSkipCounts(skip bool) ValidateOption {
	return func(o *validateOptions) { o.skipCounts = skip }
}

// WithMaxIssues caps the example identifiers listed per check.
func WithMaxIssues(n int) ValidateOption {
	return func(o *validateOptions) {
		if n > 0 {
			o.maxIssues = n
		}
	}
}

// Validate runs the integrity checks of a release.
func Validate(ds *Dataset, opts ...ValidateOption) *Report {
	o := &validateOptions{maxIssues: constants.MaxIssuesPerCheck}
	for _, opt := range opts {
		opt(o)
	}

	r := &Report{
		Dataset: ds.Manifest.Name,
		Version: ds.Manifest.Version,
		Source:  ds.Source,
	}
	files := ds.Manifest.Files

	r.Checks = append(r.Checks,
		checkAssociationValues(ds.Associations, o),
		checkClosure(CheckDrugClosure, "drug identifiers agree between association rows and drug feature columns",
			files.Ratings+" rows", ds.Associations.RowIDs,
			ds.DrugFeatures.Name+" columns", ds.DrugFeatures.ColIDs, o),
		checkClosure(CheckDiseaseClosure, "disease identifiers agree between association columns and disease feature columns",
			files.Ratings+" columns", ds.Associations.ColIDs,
			ds.DiseaseFeatures.Name+" columns", ds.DiseaseFeatures.ColIDs, o),
		checkClosure(CheckGeneAlignment, "gene symbols agree between drug and disease feature rows",
			ds.DrugFeatures.Name+" rows", ds.DrugFeatures.RowIDs,
			ds.DiseaseFeatures.Name+" rows", ds.DiseaseFeatures.RowIDs, o),
		checkUniqueLabels(ds, o),
	)
	if !o.skipCounts {
		r.Checks = append(r.Checks, checkDeclaredCounts(ds))
	}
	r.Checks = append(r.Checks, checkMissingValues(ds, o))

	return r
}

func checkAssociationValues(a *AssociationMatrix, o *validateOptions) Check {
	c := Check{
		Name:        CheckAssociationValues,
		Description: "every association value is -1, 0 or 1",
		Severity:    SeverityError,
	}
	for r, drug := range a.RowIDs {
		for col, v := range a.Row(r) {
			if v >= constants.Negative && v <= constants.Positive {
				continue
			}
			c.Total++
			if len(c.Issues) < o.maxIssues {
				c.Issues = append(c.Issues, fmt.Sprintf("%s/%s = %d", drug, a.ColIDs[col], v))
			}
		}
	}
	c.Passed = c.Total == 0
	if !c.Passed {
		c.err = errors.NewValidationError(c.Name, c.Total,
			fmt.Sprintf("%d cells outside {-1,0,1} in %s", c.Total, a.Name))
	}
	return c
}

func checkClosure(name, description, leftName string, left []string, rightName string, right []string, o *validateOptions) Check {
	c := Check{Name: name, Description: description, Severity: SeverityError}

	onlyLeft, onlyRight := DiffIDs(left, right)
	c.Total = len(onlyLeft) + len(onlyRight)
	c.Passed = c.Total == 0
	if c.Passed {
		return c
	}

	for _, id := range onlyLeft {
		if len(c.Issues) >= o.maxIssues {
			break
		}
		c.Issues = append(c.Issues, fmt.Sprintf("%s only in %s", id, leftName))
	}
	for _, id := range onlyRight {
		if len(c.Issues) >= o.maxIssues {
			break
		}
		c.Issues = append(c.Issues, fmt.Sprintf("%s only in %s", id, rightName))
	}
	c.err = &errors.MismatchError{Left: leftName, Right: rightName, OnlyLeft: onlyLeft, OnlyRight: onlyRight}
	return c
}

// DiffIDs returns the sorted identifiers present on only one side.
func DiffIDs(left, right []string) (onlyLeft, onlyRight []string) {
	l := make(map[string]struct{}, len(left))
	for _, id := range left {
		l[id] = struct{}{}
	}
	r := make(map[string]struct{}, len(right))
	for _, id := range right {
		r[id] = struct{}{}
	}
	for id := range l {
		if _, ok := r[id]; !ok {
			onlyLeft = append(onlyLeft, id)
		}
	}
	for id := range r {
		if _, ok := l[id]; !ok {
			onlyRight = append(onlyRight, id)
		}
	}
	sort.Strings(onlyLeft)
	sort.Strings(onlyRight)
	return onlyLeft, onlyRight
}

func checkUniqueLabels(ds *Dataset, o *validateOptions) Check {
	c := Check{
		Name:        CheckUniqueLabels,
		Description: "no file repeats a row or column label",
		Severity:    SeverityError,
	}
	add := func(file, axis string, dups []string) {
		c.Total += len(dups)
		for _, id := range dups {
			if len(c.Issues) < o.maxIssues {
				c.Issues = append(c.Issues, fmt.Sprintf("%s repeated in %s %s", id, file, axis))
			}
		}
	}

	rows, cols := ds.Associations.Duplicates()
	add(ds.Associations.Name, "rows", rows)
	add(ds.Associations.Name, "columns", cols)
	rows, cols = ds.DrugFeatures.Duplicates()
	add(ds.DrugFeatures.Name, "rows", rows)
	add(ds.DrugFeatures.Name, "columns", cols)
	rows, cols = ds.DiseaseFeatures.Duplicates()
	add(ds.DiseaseFeatures.Name, "rows", rows)
	add(ds.DiseaseFeatures.Name, "columns", cols)

	c.Passed = c.Total == 0
	if !c.Passed {
		c.err = errors.NewValidationError(c.Name, c.Total, fmt.Sprintf("%d repeated labels", c.Total))
	}
	return c
}

func checkDeclaredCounts(ds *Dataset) Check {
	declared := ds.Manifest.Counts
	c := Check{
		Name:        CheckDeclaredCounts,
		Description: fmt.Sprintf("sizes match the counts declared by release %s", ds.Manifest.Version),
		Severity:    SeverityError,
	}
	compare := func(what string, want, got int) {
		if want != got {
			c.Total++
			c.Issues = append(c.Issues, fmt.Sprintf("%s: declared %d, found %d", what, want, got))
		}
	}
	a := ds.Associations
	compare("drugs", declared.Drugs, a.Rows())
	compare("diseases", declared.Diseases, a.Cols())
	compare("genes in "+ds.DrugFeatures.Name, declared.Genes, ds.DrugFeatures.Rows())
	compare("genes in "+ds.DiseaseFeatures.Name, declared.Genes, ds.DiseaseFeatures.Rows())
	compare("positives", declared.Positives, a.Count(constants.Positive))
	compare("negatives", declared.Negatives, a.Count(constants.Negative))

	c.Passed = c.Total == 0
	if !c.Passed {
		c.err = errors.NewValidationError(c.Name, c.Total, fmt.Sprintf("%d counts differ from the manifest", c.Total))
	}
	return c
}

func checkMissingValues(ds *Dataset, o *validateOptions) Check {
	c := Check{
		Name:        CheckMissingValues,
		Description: "feature matrices have no missing values",
		Severity:    SeverityWarning,
	}
	if o.strict {
		c.Severity = SeverityError
	}
	for _, m := range []*FeatureMatrix{ds.DrugFeatures, ds.DiseaseFeatures} {
		n := 0
		for _, v := range m.Data {
			if math.IsNaN(v) {
				n++
			}
		}
		if n > 0 {
			c.Total += n
			c.Issues = append(c.Issues, fmt.Sprintf("%s: %d missing cells", m.Name, n))
		}
	}
	c.Passed = c.Total == 0
	if !c.Passed {
		c.err = errors.NewValidationError(c.Name, c.Total, fmt.Sprintf("%d missing feature values", c.Total))
	}
	return c
}
