package output_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/repurpose/internal/cmd/output"
	"github.com/agentstation/repurpose/internal/cmd/table"
)

type row struct {
	ID        string  `json:"id"`
	Positives int     `json:"positive_count"`
	Density   float64 `json:"density"`
	hidden    string
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"table", "JSON", "yaml", "wide", ""} {
		_, err := output.ParseFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := output.ParseFormat("xml")
	assert.Error(t, err)
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, output.FormatYAML, output.DetectFormat("YAML"))
}

func TestTableFormatterData(t *testing.T) {
	var buf bytes.Buffer
	err := output.NewFormatter(output.FormatTable).Format(&buf, table.Data{
		Headers: []string{"Drug", "Value"},
		Rows:    [][]string{{"DB00001", "1"}},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "DB00001")
	assert.Contains(t, strings.ToUpper(buf.String()), "DRUG")
}

func TestTableFormatterStructSlice(t *testing.T) {
	var buf bytes.Buffer
	err := output.NewFormatter(output.FormatTable).Format(&buf, []row{{ID: "C1", Positives: 2, Density: 0.5, hidden: "x"}})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "C1")
	assert.Contains(t, out, "0.5000")
	assert.NotContains(t, strings.ToUpper(out), "HIDDEN")
}

func TestTableFormatterSingleStructPointer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.NewFormatter(output.FormatTable).Format(&buf, &row{ID: "C2"}))
	assert.Contains(t, buf.String(), "C2")
}

func TestWrite(t *testing.T) {
	data := []row{{ID: "C1", Positives: 2}}
	toTable := func(wide bool) table.Data {
		return table.Data{Headers: []string{"Wide"}, Rows: [][]string{{map[bool]string{true: "yes", false: "no"}[wide]}}}
	}

	var buf bytes.Buffer
	require.NoError(t, output.Write(&buf, output.FormatWide, data, toTable))
	assert.Contains(t, buf.String(), "yes")

	buf.Reset()
	require.NoError(t, output.Write(&buf, output.FormatJSON, data, toTable))
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "C1", decoded[0]["id"])

	buf.Reset()
	require.NoError(t, output.Write(&buf, output.FormatYAML, data, toTable))
	assert.Contains(t, buf.String(), "- id: C1")
}
