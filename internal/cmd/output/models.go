package output

import (
	"io"

	"github.com/agentstation/repurpose/internal/cmd/table"
)

// IsTable reports whether format renders a table.
func IsTable(format Format) bool {
	switch format {
	case FormatTable, FormatWide, "":
		return true
	default:
		return false
	}
}

// Write formats data for w. Table formats render toTable when it is set;
// structured formats always encode data itself.
func Write(w io.Writer, format Format, data any, toTable func(wide bool) table.Data) error {
	formatter := NewFormatter(format)
	if IsTable(format) && toTable != nil {
		return formatter.Format(w, toTable(format == FormatWide))
	}
	return formatter.Format(w, data)
}
