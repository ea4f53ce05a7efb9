// Package table converts release data into rows for table output.
package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agentstation/repurpose/internal/cmd/emoji"
	"github.com/agentstation/repurpose/internal/export"
	"github.com/agentstation/repurpose/pkg/constants"
	"github.com/agentstation/repurpose/pkg/dataset"
	"github.com/agentstation/repurpose/pkg/ranking"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// ReportToTableData converts a validation report to one row per check.
// Wide output lists every recorded issue instead of the first one.
func ReportToTableData(r *dataset.Report, wide bool) Data {
	headers := []string{"", "Check", "Severity", "Issues", "Details"}
	rows := make([][]string, 0, len(r.Checks))
	for _, c := range r.Checks {
		details := "-"
		switch {
		case len(c.Issues) == 0:
		case wide:
			details = strings.Join(c.Issues, "; ")
		default:
			details = c.Issues[0]
			if len(c.Issues) > 1 {
				details += fmt.Sprintf(" (+%d more)", c.Total-1)
			}
			details = Truncate(details, constants.MaxDetailsWidth)
		}
		rows = append(rows, []string{
			CheckSymbol(c),
			c.Name,
			string(c.Severity),
			strconv.Itoa(c.Total),
			details,
		})
	}
	return Data{
		Headers:         headers,
		Rows:            rows,
		ColumnAlignment: []Align{AlignCenter, AlignLeft, AlignLeft, AlignRight, AlignLeft},
	}
}

// CheckSymbol returns the status symbol of a check.
func CheckSymbol(c dataset.Check) string {
	switch {
	case c.Passed:
		return emoji.Success
	case c.Severity == dataset.SeverityWarning:
		return emoji.Warning
	default:
		return emoji.Error
	}
}

// EntitiesToTableData converts drugs or diseases with their label counts.
func EntitiesToTableData(entities []dataset.Entity) Data {
	rows := make([][]string, 0, len(entities))
	for _, e := range entities {
		features := emoji.Success
		if !e.HasFeatures {
			features = emoji.Error
		}
		rows = append(rows, []string{
			e.ID,
			strconv.Itoa(e.Positives),
			strconv.Itoa(e.Negatives),
			strconv.Itoa(e.Unknowns),
			features,
		})
	}
	return Data{
		Headers:         []string{"ID", "Positive", "Negative", "Unknown", "Features"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignRight, AlignRight, AlignCenter},
	}
}

// GenesToTableData lists gene symbols with their row position.
func GenesToTableData(genes []string) Data {
	rows := make([][]string, 0, len(genes))
	for i, g := range genes {
		rows = append(rows, []string{strconv.Itoa(i + 1), g})
	}
	return Data{
		Headers:         []string{"#", "Gene"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft},
	}
}

// AssociationsToTableData lists the labeled pairs of one drug or disease.
func AssociationsToTableData(assoc []dataset.Association) Data {
	rows := make([][]string, 0, len(assoc))
	for _, a := range assoc {
		rows = append(rows, []string{a.Drug, a.Disease, strconv.Itoa(int(a.Value)), ValueLabel(a.Value)})
	}
	return Data{
		Headers:         []string{"Drug", "Disease", "Value", "Label"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight, AlignLeft},
	}
}

// ValueLabel names an association value.
func ValueLabel(v int8) string {
	switch v {
	case constants.Positive:
		return "positive"
	case constants.Negative:
		return "negative"
	case constants.Unknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// StatsToTableData converts release statistics to a key-value table.
func StatsToTableData(s dataset.Stats) Data {
	rows := [][]string{
		{"Dataset", s.Dataset},
		{"Version", s.Version},
		{"Drugs", strconv.Itoa(s.Drugs)},
		{"Diseases", strconv.Itoa(s.Diseases)},
		{"Genes", strconv.Itoa(s.Genes)},
		{"Positives", strconv.Itoa(s.Positives)},
		{"Negatives", strconv.Itoa(s.Negatives)},
		{"Unknowns", strconv.Itoa(s.Unknowns)},
		{"Density", FormatFloat(s.Density)},
		{"Positives per drug", FormatSpread(s.PositivesPerDrug)},
		{"Positives per disease", FormatSpread(s.PositivesPerDisease)},
		{"Drug features", FormatFeatureStats(s.DrugFeatures)},
		{"Disease features", FormatFeatureStats(s.DiseaseFeatures)},
	}
	return Data{Headers: []string{"Property", "Value"}, Rows: rows}
}

// EvaluationToTableData converts evaluation results to one row per metric.
func EvaluationToTableData(e *ranking.Evaluation) Data {
	k := strconv.Itoa(e.K)
	rows := [][]string{
		{"Diseases scored", strconv.Itoa(e.Diseases)},
		{"Diseases skipped", strconv.Itoa(e.Skipped)},
		{"Hit rate@" + k, FormatFloat(e.HitRate)},
		{"Precision@" + k, FormatFloat(e.Precision)},
		{"Recall@" + k, FormatFloat(e.Recall)},
		{"F1@" + k, FormatFloat(e.F1)},
		{"NDCG@" + k, FormatFloat(e.NDCG)},
		{"MAP", FormatFloat(e.MAP)},
		{"MRR", FormatFloat(e.MRR)},
		{"Mean rank", FormatFloat(e.MeanRank)},
		{"R-precision", FormatFloat(e.RPrecision)},
	}
	return Data{
		Headers:         []string{"Metric", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// ExportToTableData summarizes a finished export.
func ExportToTableData(s *export.Summary) Data {
	rows := [][]string{
		{"Path", s.Path},
		{"Format", s.Format},
		{"Drugs", strconv.Itoa(s.Drugs)},
		{"Diseases", strconv.Itoa(s.Diseases)},
		{"Associations", strconv.Itoa(s.Associations)},
	}
	if s.Genes > 0 {
		rows = append(rows, []string{"Genes", strconv.Itoa(s.Genes)})
	}
	if s.FeatureValues > 0 {
		rows = append(rows, []string{"Feature values", strconv.Itoa(s.FeatureValues)})
	}
	return Data{Headers: []string{"Property", "Value"}, Rows: rows}
}

// FormatFloat prints a metric with four decimals.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// FormatSpread prints min/mean/max.
func FormatSpread(s dataset.Spread) string {
	return fmt.Sprintf("min %d, mean %s, max %d", s.Min, FormatFloat(s.Mean), s.Max)
}

// FormatFeatureStats prints the shape and range of a feature matrix.
func FormatFeatureStats(f dataset.FeatureStats) string {
	out := fmt.Sprintf("%d x %d, range [%s, %s], mean %s", f.Rows, f.Cols, FormatFloat(f.Min), FormatFloat(f.Max), FormatFloat(f.Mean))
	if f.Missing > 0 {
		out += fmt.Sprintf(", %d missing", f.Missing)
	}
	return out
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 4 {
		return s
	}
	return string(r[:n-3]) + "..."
}
