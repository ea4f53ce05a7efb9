package alerts

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/agentstation/repurpose/internal/cmd/output"
)

// Writer writes alerts in one output format.
type Writer struct {
	w      io.Writer
	format output.Format
	color  bool
}

// NewWriter creates a Writer for format. Table formats print a line per
// alert, colored when w is a terminal and noColor is unset; JSON and YAML
// encode each alert as a document.
func NewWriter(w io.Writer, format output.Format, noColor bool) *Writer {
	return &Writer{w: w, format: format, color: !noColor && isTerminal(w)}
}

// alertData represents alert data for structured output.
type alertData struct {
	Level     string   `json:"level" yaml:"level"`
	Message   string   `json:"message" yaml:"message"`
	Details   []string `json:"details,omitempty" yaml:"details,omitempty"`
	Error     string   `json:"error,omitempty" yaml:"error,omitempty"`
	Timestamp string   `json:"timestamp" yaml:"timestamp"`
}

// Write writes one alert.
func (aw *Writer) Write(alert *Alert) error {
	if !output.IsTable(aw.format) {
		data := alertData{
			Level:     alert.Level.String(),
			Message:   alert.Message,
			Details:   alert.Details,
			Timestamp: alert.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
		}
		if alert.Err != nil {
			data.Error = alert.Err.Error()
		}
		if aw.format == output.FormatYAML {
			// Separate consecutive YAML documents.
			if _, err := fmt.Fprintln(aw.w, "---"); err != nil {
				return err
			}
		}
		return output.NewFormatter(aw.format).Format(aw.w, data)
	}

	message := alert.String()
	if aw.color {
		message = alert.Level.Color() + message + resetColor
	}
	if _, err := fmt.Fprintln(aw.w, message); err != nil {
		return err
	}
	for _, detail := range alert.Details {
		if _, err := fmt.Fprintf(aw.w, "   %s\n", detail); err != nil {
			return err
		}
	}
	return nil
}

// isTerminal checks if the writer is a terminal (for color support).
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
