package validate

import (
	"fmt"
	"io"
	"sort"

	"github.com/agentstation/repurpose/internal/cmd/alerts"
	"github.com/agentstation/repurpose/internal/cmd/output"
	"github.com/agentstation/repurpose/internal/cmd/table"
	"github.com/agentstation/repurpose/pkg/dataset"
)

// printer writes reports and watch notices in one output format.
type printer struct {
	w      io.Writer
	format output.Format
	alerts *alerts.Writer
}

func newPrinter(w io.Writer, format string, noColor bool) *printer {
	f := output.Format(format)
	return &printer{w: w, format: f, alerts: alerts.NewWriter(w, f, noColor)}
}

// report writes the report; table formats add a header line and a verdict.
func (p *printer) report(report *dataset.Report) error {
	if !output.IsTable(p.format) {
		return output.Write(p.w, p.format, report, nil)
	}
	fmt.Fprintf(p.w, "Release %s (%s)\n", report.Version, report.Dataset)
	if err := output.Write(p.w, p.format, report, func(wide bool) table.Data {
		return table.ReportToTableData(report, wide)
	}); err != nil {
		return err
	}
	return p.alerts.Write(verdict(report))
}

func verdict(report *dataset.Report) *alerts.Alert {
	failed := report.Failed()
	if len(failed) == 0 {
		return alerts.NewSuccess(fmt.Sprintf("%d checks passed", len(report.Checks)))
	}
	a := alerts.NewError(fmt.Sprintf("%d of %d checks failed", len(failed), len(report.Checks)))
	for _, c := range failed {
		a.WithDetails(c.Name)
	}
	return a
}

func (p *printer) changed(files []string) error {
	sort.Strings(files)
	if output.IsTable(p.format) {
		fmt.Fprintln(p.w)
	}
	return p.alerts.Write(alerts.NewInfo("release files changed").WithDetails(files...))
}

func (p *printer) loadError(err error) error {
	return p.alerts.Write(alerts.NewError("cannot load release").WithError(err))
}
